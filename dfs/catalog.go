// Package dfs implements the Acorn DFS filing system: a flat, single-level
// catalogue of up to 31 entries split across two directory letters'
// worth of bookkeeping but addressed as one 512-byte structure (spec.md
// §4.6; original_source/acorn-dfs.c).
package dfs

import "acornfs/acorn"

const (
	catalogSize  = 0x200
	maxEntries   = 31
	entryStride  = 8
	nameBase     = 8
	detailOffset = 0x100

	offUsedBytes = 0x105
	offDiskInfo  = 0x106 // packed: boot option / high bits of total sector count
	offDiskInfoLo = 0x107
)

// decodeEntry implements ent2obj: obj.Name is "<dirletter>.<7-char name>",
// trimmed of trailing spaces (original_source/acorn-dfs.c ent2obj).
func decodeEntry(ent, detail []byte) *acorn.Object {
	obj := &acorn.Object{Attr: acorn.NewAttr()}
	obj.Attr.SetUserRead(true)
	obj.Attr.SetUserWrite(true)

	dirLetter := ent[7] & 0x7f
	if ent[7]&0x80 != 0 {
		obj.Attr.SetLocked(true)
	}

	name := make([]byte, 0, 9)
	name = append(name, dirLetter, '.')
	for i := 0; i < 7; i++ {
		c := ent[i]
		if c == 0 || c == ' ' {
			break
		}
		name = append(name, c)
	}
	obj.Name = string(name)

	b6 := detail[6]
	ub := b6 & 0x0c
	load := uint32(detail[0]) | uint32(detail[1])<<8
	if ub == 0x0c {
		load |= 0xffff0000
	} else {
		load |= uint32(ub) << 14
	}
	obj.LoadAddr = load

	ub = b6 & 0xc0
	exec := uint32(detail[2]) | uint32(detail[3])<<8
	if ub == 0xc0 {
		exec |= 0xffff0000
	} else {
		exec |= uint32(ub) << 10
	}
	obj.ExecAddr = exec

	obj.Length = uint32(detail[4]) | uint32(detail[5])<<8 | uint32(b6&0x30)<<12
	// DFS sector-high-bit packing (DESIGN.md Open Question decision 4):
	// the start sector's two high bits occupy bits 0..1 of the packed byte.
	obj.Sector = uint32(b6&0x03)<<8 | uint32(detail[7])
	return obj
}

// encodeEntry implements obj2ent: name is the 7-character payload (with
// any "X." directory-letter prefix already stripped by the caller),
// dirLetter is the single-byte directory the entry belongs to, and ssect
// is the allocated start sector.
func encodeEntry(ent, detail []byte, obj *acorn.Object, name string, dirLetter byte, ssect uint32) {
	if obj.Attr.Locked() {
		dirLetter |= 0x80
	}
	ent[7] = dirLetter
	i := 0
	for ; i < 7 && i < len(name); i++ {
		ent[i] = name[i]
	}
	for ; i < 7; i++ {
		ent[i] = ' '
	}

	detail[0] = byte(obj.LoadAddr)
	detail[1] = byte(obj.LoadAddr >> 8)
	detail[2] = byte(obj.ExecAddr)
	detail[3] = byte(obj.ExecAddr >> 8)
	detail[4] = byte(obj.Length)
	detail[5] = byte(obj.Length >> 8)
	detail[6] = byte(((obj.ExecAddr & 0x30000) >> 10) | ((obj.Length & 0x30000) >> 12) | ((obj.LoadAddr & 0x30000) >> 14) | ((ssect & 0x300) >> 8))
	detail[7] = byte(ssect)
}

// splitName separates an optional "X." directory-letter prefix from a
// DFS object name, defaulting to '$' (original_source/acorn-dfs.c
// dfs_save's dfs_dir handling).
func splitName(full string) (dirLetter byte, name string) {
	if len(full) > 1 && full[1] == '.' {
		return full[0], full[2:]
	}
	return '$', full
}

func sectors(bytes uint32) uint32 { return acorn.Sectors(bytes) }

// entryStartSector decodes just the start sector from an entry's 8-byte
// metadata (used by Check and by the backward gap search in Save).
func entryStartSector(detail []byte) uint32 {
	return uint32(detail[6]&0x03)<<8 | uint32(detail[7])
}

func entryLength(detail []byte) uint32 {
	return uint32(detail[4]) | uint32(detail[5])<<8 | uint32(detail[6]&0x30)<<12
}
