package dfs

import (
	"acornfs/acorn"
	"acornfs/wildmat"
)

func detailOff(nameOff int) int { return nameOff + detailOffset }

// Save finds free space for obj and writes both its entry and payload
// (spec.md §4.6 Save; original_source/acorn-dfs.c dfs_save). An existing
// entry of the same directory-letter-prefixed name is overwritten in
// place if it still fits in its current allocation; otherwise Save scans
// backward from the end of the catalogue's used sector range looking for
// a gap at least reqdSect sectors wide, preserving I7 (entries sorted by
// non-increasing start sector).
func (b *Backend) Save(obj *acorn.Object, dest *acorn.Object) error {
	dirLetter, name := splitName(obj.Name)
	if name == "" {
		return acorn.Err(acorn.KindInvalid)
	}

	dir := b.dir
	used := b.usedBytes()
	end := nameBase + used

	nameOff := end
	found := false
	for o := nameBase; o < end; o += entryStride {
		ent := dir[o : o+entryStride]
		if dirLetter == ent[7]&0x7f {
			found = true
			for i := 0; i < 7; i++ {
				var patCh byte
				if i < len(name) {
					patCh = name[i]
				}
				entCh := ent[i]
				if patCh == 0 && entCh == ' ' {
					break
				}
				if patCh&0x5f != entCh&0x5f {
					found = false
					break
				}
			}
		}
		if found {
			nameOff = o
			break
		}
	}

	reqdSect := sectors(obj.Length)
	startSect := uint32(2)
	spaceOff := -1

	if found {
		detail := dir[detailOff(nameOff) : detailOff(nameOff)+entryStride]
		curLen := entryLength(detail)
		if reqdSect <= sectors(curLen) {
			spaceOff = nameOff
			startSect = entryStartSector(detail)
		}
	} else if end >= nameBase+maxEntries*entryStride {
		return acorn.Err(acorn.KindDirFull)
	}

	if spaceOff < 0 {
		spaceOff = end
		for spaceOff > nameBase {
			spaceOff -= entryStride
			detail := dir[detailOff(spaceOff) : detailOff(spaceOff)+entryStride]
			thisStart := entryStartSector(detail)
			if thisStart-startSect >= reqdSect {
				spaceOff += entryStride
				break
			}
			thisLen := entryLength(detail)
			startSect = thisStart + sectors(thisLen)
		}
	}

	availSect := uint32(dir[offDiskInfo]&0x03)<<8 | uint32(dir[offDiskInfoLo])
	if availSect < 2 {
		return acorn.Err(acorn.KindNoSpace)
	}
	availSect -= 2
	if reqdSect > availSect-startSect {
		return acorn.Err(acorn.KindNoSpace)
	}

	payload := obj.Data
	if pad := reqdSect*acorn.SectSize - uint32(len(payload)); pad > 0 {
		payload = append(append([]byte(nil), payload...), make([]byte, pad)...)
	}
	if err := b.t.WriteSectors(startSect, payload); err != nil {
		return err
	}

	if spaceOff != nameOff {
		if nameOff > spaceOff {
			bytes := nameOff - spaceOff
			copy(dir[spaceOff+entryStride:], dir[spaceOff:spaceOff+bytes])
			copy(dir[detailOff(spaceOff)+entryStride:], dir[detailOff(spaceOff):detailOff(spaceOff)+bytes])
		} else {
			spaceOff -= entryStride
			bytes := spaceOff - nameOff
			copy(dir[nameOff:], dir[nameOff+entryStride:nameOff+entryStride+bytes])
			copy(dir[detailOff(nameOff):], dir[detailOff(nameOff)+entryStride:detailOff(nameOff)+entryStride+bytes])
		}
	}

	encodeEntry(dir[spaceOff:spaceOff+entryStride], dir[detailOff(spaceOff):detailOff(spaceOff)+entryStride], obj, name, dirLetter, startSect)
	if !found {
		dir[offUsedBytes] += entryStride
	}
	return b.t.WriteSectors(0, dir)
}

// Remove deletes every catalogue entry matching pattern, closing the gap
// each leaves behind (spec.md §4.6 Remove; original_source/acorn-dfs.c
// dfs_remove).
func (b *Backend) Remove(pattern string) error {
	dir := b.dir
	dirty := false

	o := nameBase
	end := nameBase + b.usedBytes()
	for o < end {
		ent := dir[o : o+entryStride]
		if !wildmat.MatchDFS(pattern, ent) {
			o += entryStride
			continue
		}
		bytes := end - o - entryStride
		copy(dir[o:], dir[o+entryStride:o+entryStride+bytes])
		dir[o+bytes] = 0
		copy(dir[detailOff(o):], dir[detailOff(o)+entryStride:detailOff(o)+entryStride+bytes])
		dir[offUsedBytes] -= entryStride
		end -= entryStride
		dirty = true
	}
	if !dirty {
		return nil
	}
	return b.t.WriteSectors(0, dir)
}
