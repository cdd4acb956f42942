package adfs

import (
	"sort"

	"github.com/hashicorp/go-multierror"

	"acornfs/acorn"
)

// extent is one contiguous run of sectors discovered while checking,
// tagged with a human-readable owner for diagnostics (original_source/
// acorn-adfs.c's "extent" list, reworked as a slice sorted once rather
// than kept sorted via linked-list insertion).
type extent struct {
	posn, size uint32
	name       string
}

const nameFree = "(free)"

// checkWalk recursively validates I1, I2 and I6 for dir and its
// descendants, reporting every diagnostic found to sink rather than
// stopping at the first, and appends one extent per object visited
// (original_source/acorn-adfs.c check_walk).
func checkWalk(b *Backend, fsName string, dir, parent *acorn.Object, path string, sink acorn.Diagnostics, used *[]extent) error {
	var result *multierror.Error

	if err := b.Load(dir); err != nil {
		sink.Printf("%s:%s: unable to load directory: %s\n", fsName, path, err)
		return err
	}
	if err := checkDir(dir); err != nil {
		sink.Printf("%s:%s: broken directory: Hugo/sequence\n", fsName, path)
		return err
	}

	ftr := len(dir.Data) - dirFtrSize
	footerName := dir.Data[ftr+1 : ftr+1+entryNameLen]
	if nameCmp(footerName, []byte(padName(dir.Name))) != 0 {
		sink.Printf("%s:%s: broken directory: name mismatch\n", fsName, path)
		result = multierror.Append(result, acorn.Err(acorn.KindBrokenDir))
	}

	ppos := get24(dir.Data[ftr+0x0b:])
	if ppos != parent.Sector {
		sink.Printf("%s:%s: broken directory: parent link incorrect\n", fsName, path)
		result = multierror.Append(result, acorn.Err(acorn.KindBrokenDir))
	}

	end := ftr
	var prev []byte
	for pos := dirHdrSize; pos < end; pos += dirEntSize {
		ent := dir.Data[pos : pos+dirEntSize]
		if ent[0] == 0 {
			break
		}
		if prev != nil && nameCmp(ent, prev) < 0 {
			sink.Printf("%s:%s: broken directory: filenames out of order\n", fsName, path)
			result = multierror.Append(result, acorn.Err(acorn.KindBrokenDir))
		}
		obj := decodeEntry(ent)
		entPath := path + "." + obj.Name

		*used = append(*used, extent{posn: obj.Sector, size: acorn.Sectors(obj.Length), name: entPath})

		if obj.Attr.IsDir() {
			if err := checkWalk(b, fsName, obj, dir, entPath, sink, used); err != nil {
				result = multierror.Append(result, err)
			}
		}
		prev = ent
	}

	return result.ErrorOrNil()
}

func padName(name string) string {
	buf := []byte("\r\r\r\r\r\r\r\r\r\r")
	copy(buf, name)
	return string(buf)
}

// Check validates the whole filesystem's structural invariants: the
// free-space map is sorted and non-overlapping (I4, I5), every directory
// satisfies I1/I2/I6, and the free extents, the root directory and the
// used extents found by walking from the root, taken in start-sector
// order, follow one another with no gap or overlap (spec.md §4.7;
// original_source/acorn-adfs.c adfs_check). The end of the last extent is
// not compared against the size of the disc.
func (b *Backend) Check(fsName string, sink acorn.Diagnostics) error {
	var result *multierror.Error

	if err := b.loadMap(); err != nil {
		return err
	}
	count := b.fsmap.count()
	if count == 0 {
		sink.Printf("%s: free space map empty\n", fsName)
		return acorn.Err(acorn.KindBadFsmap)
	}

	var all []extent
	prevPosn, prevSize := b.fsmap.entry(0)
	all = append(all, extent{posn: prevPosn, size: prevSize, name: nameFree})
	for ent := fsmapEntStride; ent < count; ent += fsmapEntStride {
		posn, size := b.fsmap.entry(ent)
		if posn < prevPosn {
			sink.Printf("%s: free space map out of order at entry %d\n", fsName, ent)
			result = multierror.Append(result, acorn.Err(acorn.KindBadFsmap))
			break
		}
		if prevPosn+prevSize > posn {
			sink.Printf("%s: free space map overlap at entry %d\n", fsName, ent)
			result = multierror.Append(result, acorn.Err(acorn.KindBadFsmap))
			break
		}
		all = append(all, extent{posn: posn, size: size, name: nameFree})
		prevPosn, prevSize = posn, size
	}

	root := b.Root()
	all = append(all, extent{posn: root.Sector, size: acorn.Sectors(root.Length), name: root.Name})
	if err := checkWalk(b, fsName, root, root, root.Name, sink, &all); err != nil {
		result = multierror.Append(result, err)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].posn != all[j].posn {
			return all[i].posn < all[j].posn
		}
		return all[i].size < all[j].size
	})
	for i := 1; i < len(all); i++ {
		cur, next := all[i-1], all[i]
		if delta := int64(cur.posn) + int64(cur.size) - int64(next.posn); delta != 0 {
			which := "gap"
			if delta > 0 {
				which = "overlap"
			}
			sink.Printf("%s: free/used space inconsistency: %s between %s and %s\n", fsName, which, cur.name, next.name)
			result = multierror.Append(result, acorn.Err(acorn.KindCorrupt))
		}
	}

	return result.ErrorOrNil()
}
