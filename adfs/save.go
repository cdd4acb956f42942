package adfs

import (
	"errors"

	"acornfs/acorn"
)

// dirMakeSlot opens up one 26-byte gap at slot by shifting every entry
// from slot onward up by one slot (original_source/acorn-adfs.c
// dir_makeslot).
func dirMakeSlot(parent *acorn.Object, slot int) {
	ftr := len(parent.Data) - dirFtrSize
	bytes := ftr - slot - dirEntSize
	copy(parent.Data[slot+dirEntSize:], parent.Data[slot:slot+bytes])
}

// dirUpdate writes obj's entry at slot in parent's buffer and persists
// the whole directory (original_source/acorn-adfs.c dir_update).
func (b *Backend) dirUpdate(parent, obj *acorn.Object, slot int) error {
	encodeEntry(parent.Data[slot:slot+dirEntSize], obj)
	return b.t.WriteSectors(parent.Sector, parent.Data)
}

// newDirBuffer builds a fresh, empty 1280-byte directory buffer for name,
// with its own-name and parent-link footer fields filled in so the
// consistency checker's name-match and parent-link invariants (I2, I6)
// hold for directories created via Mkdir — the source's adfs_mkdir only
// ever wrote the two "Hugo" sentinels and left the rest of the footer
// zeroed, which would make a freshly made directory immediately fail
// check_walk's own-name comparison.
func newDirBuffer(name string, parentSector uint32) []byte {
	data := make([]byte, dirSize)
	data[1] = 'H'
	data[2] = 'u'
	data[3] = 'g'
	data[4] = 'o'

	ftr := dirSize - dirFtrSize
	nameField := data[ftr+1 : ftr+1+entryNameLen]
	for i := range nameField {
		nameField[i] = 0x0d
	}
	copy(nameField, name)
	put24(data[ftr+0x0b:], parentSector)

	copy(data[ftr+0x2f:ftr+0x34], data[0:5])
	return data
}

// Save allocates space for obj and either overwrites an existing entry of
// the same name or inserts a new one, growing dest's entry table as
// needed (spec.md §4.5 Save; original_source/acorn-adfs.c adfs_save).
func (b *Backend) Save(obj *acorn.Object, dest *acorn.Object) error {
	if !dest.Attr.IsDir() {
		return acorn.Err(acorn.KindNotDir)
	}
	if err := b.loadMap(); err != nil {
		return err
	}

	existing, slot, err := search(b, dest, obj.Name)
	switch {
	case err == nil:
		if err := b.fsmap.release(existing); err != nil {
			return err
		}
		if err := b.fsmap.allocate(b.t, obj); err != nil {
			return err
		}
		if err := b.dirUpdate(dest, obj, slot); err != nil {
			return err
		}
	case errors.Is(err, acorn.Err(acorn.KindNotFound)):
		if slot < 0 {
			return acorn.Err(acorn.KindDirFull)
		}
		if err := b.fsmap.allocate(b.t, obj); err != nil {
			return err
		}
		dirMakeSlot(dest, slot)
		if err := b.dirUpdate(dest, obj, slot); err != nil {
			return err
		}
	default:
		return err
	}
	return b.fsmap.save(b.t)
}

// Mkdir creates an empty, locked, user-readable subdirectory named name
// inside dest, failing with KindExists if an entry of that name is
// already present (spec.md §4.5 Mkdir; original_source/acorn-adfs.c
// adfs_mkdir).
func (b *Backend) Mkdir(name string, dest *acorn.Object) (*acorn.Object, error) {
	if !dest.Attr.IsDir() {
		return nil, acorn.Err(acorn.KindNotDir)
	}
	if err := b.loadMap(); err != nil {
		return nil, err
	}

	_, slot, err := search(b, dest, name)
	if err == nil {
		return nil, acorn.Err(acorn.KindExists)
	}
	if !errors.Is(err, acorn.Err(acorn.KindNotFound)) {
		return nil, err
	}
	if slot < 0 {
		return nil, acorn.Err(acorn.KindDirFull)
	}

	child := &acorn.Object{Name: name, Length: dirSize}
	child.Attr.SetDir(true)
	child.Attr.SetLocked(true)
	child.Attr.SetUserRead(true)
	child.Data = newDirBuffer(name, dest.Sector)
	if err := b.fsmap.allocate(b.t, child); err != nil {
		return nil, err
	}

	dirMakeSlot(dest, slot)
	if err := b.dirUpdate(dest, child, slot); err != nil {
		return nil, err
	}
	return child, b.fsmap.save(b.t)
}

// Remove is not supported: the source never implements whole-object
// deletion for ADFS, only DFS's catalogue-compaction dfs_remove (spec.md
// §4.5, §4.6).
func (b *Backend) Remove(pattern string) error {
	return acorn.Err(acorn.KindNotSupported)
}
