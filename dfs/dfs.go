package dfs

import (
	"acornfs/acorn"
	"acornfs/transport"
	"acornfs/wildmat"
)

// Backend is the DFS acorn.Filesystem implementation. The whole 512-byte
// catalogue is read once and kept in memory for the lifetime of the
// handle, matching the source's fs->priv caching (original_source/
// acorn-dfs.c: every operation reads straight from fs->priv, never
// re-reading sector 0/1).
type Backend struct {
	t   transport.Transport
	dir []byte
}

// New binds a DFS backend to a sector transport, loading its catalogue.
func New(t transport.Transport) (*Backend, error) {
	buf := make([]byte, catalogSize)
	if err := t.ReadSectors(0, buf); err != nil {
		return nil, err
	}
	return &Backend{t: t, dir: buf}, nil
}

func (b *Backend) ReadSectors(start uint32, buf []byte) error  { return b.t.ReadSectors(start, buf) }
func (b *Backend) WriteSectors(start uint32, buf []byte) error { return b.t.WriteSectors(start, buf) }

// Root fabricates the default-directory descriptor: DFS has no directory
// objects of its own, only the ten directory-letter prefixes, so Root
// stands in for "$" as the Save/Mkdir destination and Find/Glob/Walk
// starting point.
func (b *Backend) Root() *acorn.Object {
	root := &acorn.Object{Name: "$"}
	root.Attr.SetDir(true)
	return root
}

func (b *Backend) usedBytes() int { return int(b.dir[offUsedBytes]) }

func (b *Backend) forEachEntry(fn func(ent, detail []byte) error) error {
	end := nameBase + b.usedBytes()
	for o := nameBase; o < end; o += entryStride {
		ent := b.dir[o : o+entryStride]
		detail := b.dir[detailOffset+o : detailOffset+o+entryStride]
		if err := fn(ent, detail); err != nil {
			return err
		}
	}
	return nil
}

// Find resolves a "X.NAME" (or bare "NAME", defaulting to "$") pattern to
// the single matching object; a bare "$" resolves to Root (spec.md §4.6;
// original_source/acorn-dfs.c dfs_find).
func (b *Backend) Find(path string) (*acorn.Object, error) {
	if path == "$" {
		return b.Root(), nil
	}
	var found *acorn.Object
	err := b.forEachEntry(func(ent, detail []byte) error {
		if found != nil {
			return nil
		}
		if wildmat.MatchDFS(path, ent) {
			found = decodeEntry(ent, detail)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, acorn.Err(acorn.KindNotFound)
	}
	return found, nil
}

// Glob matches pattern against every catalogue entry, in on-disk order
// (start is ignored: DFS has nothing to descend into). Matches spec.md
// §4.6; original_source/acorn-dfs.c dfs_glob.
func (b *Backend) Glob(start *acorn.Object, pattern string, visit acorn.Visitor) error {
	return b.forEachEntry(func(ent, detail []byte) error {
		if !wildmat.MatchDFS(pattern, ent) {
			return nil
		}
		obj := decodeEntry(ent, detail)
		return visit(obj, obj.Name)
	})
}

// Walk visits every catalogue entry once, in on-disk order (start is
// ignored, same reasoning as Glob; original_source/acorn-dfs.c dfs_walk).
func (b *Backend) Walk(start *acorn.Object, visit acorn.Visitor) error {
	return b.forEachEntry(func(ent, detail []byte) error {
		obj := decodeEntry(ent, detail)
		return visit(obj, obj.Name)
	})
}

// Load reads obj's payload (original_source/acorn-dfs.c dfs_load).
func (b *Backend) Load(obj *acorn.Object) error {
	buf := make([]byte, sectors(obj.Length)*acorn.SectSize)
	if obj.Length == 0 {
		obj.Data = buf
		return nil
	}
	if err := b.t.ReadSectors(obj.Sector, buf); err != nil {
		return err
	}
	obj.Data = buf
	return nil
}

// Mkdir is not supported: DFS has no subdirectories, only directory-letter
// prefixes (spec.md §4.6; original_source/acorn-dfs.c dfs_mkdir returns
// ENOSYS).
func (b *Backend) Mkdir(name string, dest *acorn.Object) (*acorn.Object, error) {
	return nil, acorn.Err(acorn.KindNotSupported)
}

// SetTitle writes the 12-character disc title, split 8 bytes in sector 0
// and 4 bytes in sector 1 (original_source/acorn-dfs.c dfs_settitle).
func (b *Backend) SetTitle(title string) error {
	for i := 0; i < 12; i++ {
		c := byte(' ')
		if i < len(title) {
			c = title[i]
		}
		if i >= 8 {
			b.dir[0x100+i-8] = c
		} else {
			b.dir[i] = c
		}
	}
	return b.t.WriteSectors(0, b.dir)
}
