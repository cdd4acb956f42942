// Package adfs implements the Acorn ADFS ("old map") filing system: a
// hierarchical directory tree backed by a 512-byte free-space map
// (spec.md §4.4, §4.5; original_source/acorn-adfs.c).
package adfs

import (
	"acornfs/acorn"
	"acornfs/transport"
)

const (
	rootSector uint32 = 2
	dirSize           = 1280

	dirHdrSize = 0x05
	dirEntSize = entrySize // 26
	dirFtrSize = 0x35

	titleSectorOffset = 0xd9
	titleLen          = 19
)

// Backend is the ADFS acorn.Filesystem implementation. It is bound to a
// sector transport and lazily loads the free-space map on first use,
// mirroring the source's fs->priv caching (original_source/acorn-adfs.c
// load_fsmap).
type Backend struct {
	t     transport.Transport
	fsmap *freeSpaceMap
}

// New binds an ADFS backend to a sector transport.
func New(t transport.Transport) *Backend {
	return &Backend{t: t}
}

func (b *Backend) ReadSectors(start uint32, buf []byte) error  { return b.t.ReadSectors(start, buf) }
func (b *Backend) WriteSectors(start uint32, buf []byte) error { return b.t.WriteSectors(start, buf) }

// Root returns the fabricated root directory descriptor (spec.md §4.5
// "the root directory object is fabricated, not stored": name "$",
// sector 2, length 1280; original_source/acorn-adfs.c make_root).
func (b *Backend) Root() *acorn.Object {
	root := &acorn.Object{Name: "$", Length: dirSize, Sector: rootSector}
	root.Attr.SetDir(true)
	return root
}

// Load reads obj's payload: dirSize bytes for a directory, Length bytes
// rounded up to a whole number of sectors for a file (original_source/
// acorn-adfs.c adfs_load).
func (b *Backend) Load(obj *acorn.Object) error {
	n := obj.Length
	if obj.Attr.IsDir() {
		n = dirSize
	}
	buf := make([]byte, acorn.Sectors(n)*acorn.SectSize)
	if n == 0 {
		obj.Data = buf
		return nil
	}
	if err := b.t.ReadSectors(obj.Sector, buf); err != nil {
		return err
	}
	obj.Data = buf
	return nil
}

func (b *Backend) loadMap() error {
	if b.fsmap != nil {
		return nil
	}
	m, err := loadFreeSpaceMap(b.t)
	if err != nil {
		return err
	}
	b.fsmap = m
	return nil
}

// SetTitle overwrites the 19-byte volume title held at a fixed offset in
// the root directory's final sector (spec.md §4.5; original_source/
// acorn-adfs.c adfs_settitle).
func (b *Backend) SetTitle(title string) error {
	ssect := rootSector + dirSize/acorn.SectSize - 1
	buf := make([]byte, acorn.SectSize)
	if err := b.t.ReadSectors(ssect, buf); err != nil {
		return err
	}
	for i := 0; i < titleLen; i++ {
		if i < len(title) {
			buf[titleSectorOffset+i] = title[i]
		} else {
			buf[titleSectorOffset+i] = 0x0d
		}
	}
	return b.t.WriteSectors(ssect, buf)
}
