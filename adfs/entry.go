package adfs

import "acornfs/acorn"

// 26-byte ADFS directory entry layout (spec.md §3 "ADFS directory entry").
const (
	entrySize     = 26
	entryNameLen  = 10
	offLoadAddr   = 0x0a
	offExecAddr   = 0x0e
	offLength     = 0x12
	offSector     = 0x16
)

func get32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func put32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func get24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

func put24(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

// decodeEntry implements ent2obj: bytes 0..9 are the name with the high bit
// of each of bytes 0..8 encoding one attribute, terminated by 0 or 0x0D
// (spec.md §3; original_source/acorn-adfs.c ent2obj). Per spec.md's
// flagged correction, byte 7 -> OEXEC and byte 8 -> PRIV (not the other
// revision's byte-7-then-byte-8-overwrite bug).
func decodeEntry(ent []byte) *acorn.Object {
	obj := &acorn.Object{Attr: acorn.NewAttr()}

	name := make([]byte, 0, entryNameLen)
	for i := 0; i < entryNameLen; i++ {
		c := ent[i] & 0x7f
		if c == 0 || c == 0x0d {
			break
		}
		name = append(name, c)
	}
	obj.Name = string(name)

	obj.Attr.SetUserRead(ent[0]&0x80 != 0)
	obj.Attr.SetUserWrite(ent[1]&0x80 != 0)
	obj.Attr.SetLocked(ent[2]&0x80 != 0)
	obj.Attr.SetDir(ent[3]&0x80 != 0)
	obj.Attr.SetUserExec(ent[4]&0x80 != 0)
	obj.Attr.SetOtherRead(ent[5]&0x80 != 0)
	obj.Attr.SetOtherWrite(ent[6]&0x80 != 0)
	obj.Attr.SetOtherExec(ent[7]&0x80 != 0)
	obj.Attr.SetPrivate(ent[8]&0x80 != 0)

	obj.LoadAddr = get32(ent[offLoadAddr:])
	obj.ExecAddr = get32(ent[offExecAddr:])
	obj.Length = get32(ent[offLength:])
	obj.Sector = get24(ent[offSector:])
	return obj
}

// stripDirLetter discards a leading "X." DFS-directory-letter prefix from
// a name before it is compared against or written into an ADFS entry
// (original_source/acorn-adfs.c: both search() and dir_update() do this
// unconditionally, so a DFS-style "X.NAME" object saved through the ADFS
// backend stores only NAME).
func stripDirLetter(name string) string {
	if len(name) > 1 && name[1] == '.' {
		return name[2:]
	}
	return name
}

// encodeEntry implements dir_update's entry-filling half (the write is
// done by the caller once the whole directory buffer is ready). Per
// spec.md's flagged correction, load/exec/length are written as 4-byte
// little-endian (original_source/acorn-adfs.c adfs_put32 calls), not the
// 3-byte write the buggy revision used.
func encodeEntry(ent []byte, obj *acorn.Object) {
	name := stripDirLetter(obj.Name)

	e := 0
	for e < entryNameLen && e < len(name) {
		ch := name[e] & 0x7f
		if ch == 0 {
			break
		}
		ent[e] = ch
		e++
	}
	for e < entryNameLen {
		ent[e] = 0x0d
		e++
	}

	if obj.Attr.UserRead() {
		ent[0] |= 0x80
	}
	if obj.Attr.UserWrite() {
		ent[1] |= 0x80
	}
	if obj.Attr.Locked() {
		ent[2] |= 0x80
	}
	if obj.Attr.IsDir() {
		ent[3] |= 0x80
	}
	if obj.Attr.UserExec() {
		ent[4] |= 0x80
	}
	if obj.Attr.OtherRead() {
		ent[5] |= 0x80
	}
	if obj.Attr.OtherWrite() {
		ent[6] |= 0x80
	}
	if obj.Attr.OtherExec() {
		ent[7] |= 0x80
	}
	if obj.Attr.Private() {
		ent[8] |= 0x80
	}

	put32(ent[offLoadAddr:], obj.LoadAddr)
	put32(ent[offExecAddr:], obj.ExecAddr)
	put32(ent[offLength:], obj.Length)
	put24(ent[offSector:], obj.Sector)
}

// nameCmp implements name_cmp: a case-insensitive, terminator-aware
// ordering comparison over two raw 10-byte name fields, used by the
// consistency checker to verify I6 (original_source/acorn-adfs.c name_cmp).
func nameCmp(a, b []byte) int {
	for i := 0; i < entryNameLen; i++ {
		ac := a[i] & 0x5f
		bc := b[i] & 0x5f
		aEnd := ac == 0 || ac == 0x0d
		bEnd := bc == 0 || bc == 0x0d
		if aEnd && bEnd {
			return 0
		}
		if d := int(ac) - int(bc); d != 0 {
			return d
		}
	}
	return 0
}
