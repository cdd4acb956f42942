package dfs

import "acornfs/acorn"

// Check validates I7: the used-byte count is a sane multiple of the entry
// stride, the recorded total sector count is plausible, and entries are
// sorted by strictly non-increasing start sector (spec.md §4.6, §4.7;
// original_source/acorn-dfs.c acorn_fs_dfs_check).
//
// Unlike the ADFS checker this never finds more than one problem per
// call: the source bails out on the first violation, and DFS has no
// free-space map or directory tree to cross-check against, so there is
// nothing left to accumulate (spec.md §7 notes ADFS as the only backend
// with multi-diagnostic Check).
func (b *Backend) Check(fsName string, sink acorn.Diagnostics) error {
	used := b.dir[offUsedBytes]
	if used&0x07 != 0 || int(used) > maxEntries*entryStride {
		sink.Printf("%s: invalid directory used count %d\n", fsName, used)
		return acorn.Err(acorn.KindCorrupt)
	}

	sects := uint32(b.dir[offDiskInfo]&0x07)<<8 | uint32(b.dir[offDiskInfoLo])
	if sects > 1280 {
		sink.Printf("%s: implausible total sector count %d\n", fsName, sects)
		return acorn.Err(acorn.KindCorrupt)
	}

	curStart := uint32(0xffffffff)
	end := nameBase + int(used)
	for o := nameBase; o < end; o += entryStride {
		detail := b.dir[detailOffset+o : detailOffset+o+entryStride]
		newStart := entryStartSector(detail)
		if newStart == 0 {
			sink.Printf("%s: impossible start sector (zero)\n", fsName)
			return acorn.Err(acorn.KindCorrupt)
		}
		if newStart > curStart {
			sink.Printf("%s: catalogue not sorted\n", fsName)
			return acorn.Err(acorn.KindCorrupt)
		}
		curStart = newStart
	}
	return nil
}
