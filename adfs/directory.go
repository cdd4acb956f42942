package adfs

import (
	"strings"

	"acornfs/acorn"
	"acornfs/wildmat"
)

// checkDir validates I1: the "Hugo" sentinel at offset 1 and the repeated
// 5-byte sentinel at the end of the buffer (original_source/acorn-adfs.c
// check_dir).
func checkDir(dir *acorn.Object) error {
	data := dir.Data
	if string(data[1:5]) != "Hugo" {
		return acorn.Err(acorn.KindBrokenDir)
	}
	tail := len(data) - 6
	if string(data[0:5]) != string(data[tail:tail+5]) {
		return acorn.Err(acorn.KindBrokenDir)
	}
	return nil
}

// loadDir loads dir (if not already loaded) and validates it.
func (b *Backend) loadDir(dir *acorn.Object) error {
	if !dir.Attr.IsDir() {
		return acorn.Err(acorn.KindNotDir)
	}
	if dir.Data == nil {
		if err := b.Load(dir); err != nil {
			return err
		}
	}
	return checkDir(dir)
}

// search scans a loaded directory for name (which may itself be a
// multi-segment remainder, relying on the wildmat "." terminator trick to
// stop at the first boundary — see Find), returning the matched child and
// the byte offset of its entry. If no entry matches, slot is the byte
// offset where a new entry should be inserted, or -1 if the directory has
// no room left (original_source/acorn-adfs.c search).
func search(b *Backend, parent *acorn.Object, name string) (child *acorn.Object, slot int, err error) {
	if err := b.loadDir(parent); err != nil {
		return nil, -1, err
	}
	data := parent.Data
	end := len(data) - dirFtrSize
	// A new entry fits only while the last slot is still unused.
	room := data[end-dirEntSize] == 0

	if len(name) > 1 && name[1] == '.' {
		name = name[2:]
	}

	for pos := dirHdrSize; pos < end; pos += dirEntSize {
		ent := data[pos : pos+dirEntSize]
		if ent[0] == 0 {
			return nil, pos, acorn.Err(acorn.KindNotFound)
		}
		isDir := ent[3]&0x80 != 0
		r := wildmat.MatchADFS(name, ent, isDir)
		if r < 0 {
			if !room {
				return nil, -1, acorn.Err(acorn.KindNotFound)
			}
			return nil, pos, acorn.Err(acorn.KindNotFound)
		}
		if r == 0 {
			return decodeEntry(ent), pos, nil
		}
	}
	return nil, -1, acorn.Err(acorn.KindNotFound)
}

// Find resolves a dotted Acorn path. Each loop iteration searches one
// directory level using the *remaining* path, not a pre-truncated
// segment: the wildmat matcher's "candidate exhausted while pattern sees
// '.'" rule is what actually stops the comparison at the segment
// boundary, so truncating here would just duplicate that logic
// (original_source/acorn-adfs.c adfs_find).
func (b *Backend) Find(path string) (*acorn.Object, error) {
	if path == "$" {
		return b.Root(), nil
	}
	if strings.HasPrefix(path, "$.") {
		path = path[2:]
	}

	parent := b.Root()
	for {
		idx := strings.IndexByte(path, '.')
		if idx < 0 {
			break
		}
		child, _, err := search(b, parent, path)
		if err != nil {
			return nil, err
		}
		parent = child
		path = path[idx+1:]
	}
	child, _, err := search(b, parent, path)
	return child, err
}

// globDir is the recursive worker behind Glob (original_source/
// acorn-adfs.c glob_dir).
func globDir(b *Backend, dir *acorn.Object, pattern string, visit acorn.Visitor, path string) error {
	if pattern == "" {
		return nil
	}
	if err := b.loadDir(dir); err != nil {
		return err
	}
	data := dir.Data
	end := len(data) - dirFtrSize
	sep := strings.IndexByte(pattern, '.')

	for pos := dirHdrSize; pos < end; pos += dirEntSize {
		ent := data[pos : pos+dirEntSize]
		if ent[0] == 0 {
			break
		}
		isDir := ent[3]&0x80 != 0
		r := wildmat.MatchADFS(pattern, ent, isDir)
		if r < 0 {
			break
		}
		if r != 0 {
			continue
		}
		obj := decodeEntry(ent)
		childPath := obj.Name
		if path != "" {
			childPath = path + "." + obj.Name
		}
		if isDir && sep >= 0 {
			if err := globDir(b, obj, pattern[sep+1:], visit, childPath); err != nil {
				return err
			}
		} else if err := visit(obj, childPath); err != nil {
			return err
		}
	}
	return nil
}

// Glob matches pattern starting from start (root if nil), invoking visit
// in directory order for every match (spec.md §4.5; original_source/
// acorn-adfs.c adfs_glob).
func (b *Backend) Glob(start *acorn.Object, pattern string, visit acorn.Visitor) error {
	path := ""
	if start == nil {
		start = b.Root()
		if strings.HasPrefix(pattern, "$.") {
			pattern = pattern[2:]
		}
	} else {
		path = start.Name
	}
	return globDir(b, start, pattern, visit, path)
}

// walkDir is the recursive worker behind Walk (original_source/
// acorn-adfs.c walk_dir).
func walkDir(b *Backend, dir *acorn.Object, visit acorn.Visitor, path string) error {
	if err := b.loadDir(dir); err != nil {
		return err
	}
	data := dir.Data
	end := len(data) - dirFtrSize

	for pos := dirHdrSize; pos < end; pos += dirEntSize {
		ent := data[pos : pos+dirEntSize]
		if ent[0] == 0 {
			break
		}
		obj := decodeEntry(ent)
		childPath := obj.Name
		if path != "" {
			childPath = path + "." + obj.Name
		}
		if err := visit(obj, childPath); err != nil {
			return err
		}
		if obj.Attr.IsDir() {
			if err := walkDir(b, obj, visit, childPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// Walk performs a pre-order traversal from start (root if nil), invoking
// visit for every object reached (spec.md §4.5; original_source/
// acorn-adfs.c adfs_walk).
func (b *Backend) Walk(start *acorn.Object, visit acorn.Visitor) error {
	path := ""
	if start == nil {
		start = b.Root()
	} else {
		path = start.Name
	}
	return walkDir(b, start, visit, path)
}
