package adfs

import (
	"acornfs/acorn"
	"acornfs/transport"
)

const (
	fsmapSize   = 0x200
	fsmapMaxEnt = 82

	fsmapSizesOff  = 0x100
	fsmapChk1Off   = 0x0ff
	fsmapChk2Off   = 0x1ff
	fsmapCountOff  = 0x1fe
	fsmapEntStride = 3
)

// freeSpaceMap is sector 0 of an ADFS image: two parallel 82x3-byte
// little-endian extent arrays (start sectors at offset 0, lengths at
// offset 0x100), a valid-byte count at 0x1fe, and a checksum of each half
// at 0xff/0x1ff (spec.md §4.4; original_source/acorn-adfs.c load_fsmap,
// checksum).
type freeSpaceMap struct {
	data []byte // fsmapSize bytes
}

// checksum implements the reverse-accumulate-with-carry algorithm over a
// 256-byte half of the map (original_source/acorn-adfs.c checksum).
func checksum(half []byte) byte {
	sum := 255
	carry := 0
	for i := 254; i >= 0; i-- {
		sum += int(half[i]) + carry
		carry = 0
		if sum >= 256 {
			sum &= 0xff
			carry = 1
		}
	}
	return byte(sum)
}

func loadFreeSpaceMap(t transport.Transport) (*freeSpaceMap, error) {
	buf := make([]byte, fsmapSize)
	if err := t.ReadSectors(0, buf); err != nil {
		return nil, err
	}
	if checksum(buf[:0x100]) != buf[fsmapChk1Off] || checksum(buf[0x100:0x200]) != buf[fsmapChk2Off] {
		return nil, acorn.Err(acorn.KindBadFsmap)
	}
	return &freeSpaceMap{data: buf}, nil
}

func (m *freeSpaceMap) save(t transport.Transport) error {
	m.data[fsmapChk1Off] = checksum(m.data[:0x100])
	m.data[fsmapChk2Off] = checksum(m.data[0x100:0x200])
	return t.WriteSectors(0, m.data)
}

func (m *freeSpaceMap) count() int { return int(m.data[fsmapCountOff]) }

func (m *freeSpaceMap) posns() []byte { return m.data[:fsmapSizesOff] }
func (m *freeSpaceMap) sizes() []byte { return m.data[fsmapSizesOff:fsmapChk2Off] }

func (m *freeSpaceMap) entry(i int) (posn, size uint32) {
	return get24(m.posns()[i:]), get24(m.sizes()[i:])
}

// release returns obj's sectors to the free space map, coalescing with an
// immediately-preceding free extent when possible, keeping the map sorted
// by start sector (spec.md §4.4 Release, I4; original_source/acorn-adfs.c
// map_free). Coalescing is backward-only, matching the source (DESIGN.md
// Open Question decision 6).
func (m *freeSpaceMap) release(obj *acorn.Object) error {
	posns, sizes := m.posns(), m.sizes()
	end := m.count()
	objSize := acorn.Sectors(obj.Length)

	ent := 0
	for ; ent < end; ent += fsmapEntStride {
		posn, size := m.entry(ent)
		if posn+size == obj.Sector {
			put24(sizes[ent:], size+objSize)
			return nil
		}
		if posn > obj.Sector {
			if end >= fsmapMaxEnt*fsmapEntStride {
				return acorn.Err(acorn.KindMapFull)
			}
			bytes := end - ent
			copy(posns[ent+fsmapEntStride:], posns[ent:ent+bytes])
			copy(sizes[ent+fsmapEntStride:], sizes[ent:ent+bytes])
			break
		}
	}
	if end >= fsmapMaxEnt*fsmapEntStride {
		return acorn.Err(acorn.KindMapFull)
	}
	put24(posns[ent:], obj.Sector)
	put24(sizes[ent:], objSize)
	m.data[fsmapCountOff] += fsmapEntStride
	return nil
}

// allocate finds the first free extent large enough for obj (first-fit,
// spec.md §4.4 Allocate), writes obj.Data to the chosen sectors, and
// shrinks or removes the extent (original_source/acorn-adfs.c
// alloc_write). obj.Sector is set to the allocated start sector.
func (m *freeSpaceMap) allocate(t transport.Transport, obj *acorn.Object) error {
	posns, sizes := m.posns(), m.sizes()
	end := m.count()
	objSize := acorn.Sectors(obj.Length)

	for ent := 0; ent < end; ent += fsmapEntStride {
		size := get24(sizes[ent:])
		if size < objSize {
			continue
		}
		posn := get24(posns[ent:])
		obj.Sector = posn
		if size == objSize {
			bytes := end - ent - fsmapEntStride
			copy(posns[ent:], posns[ent+fsmapEntStride:ent+fsmapEntStride+bytes])
			copy(sizes[ent:], sizes[ent+fsmapEntStride:ent+fsmapEntStride+bytes])
			m.data[fsmapCountOff] -= fsmapEntStride
		} else {
			put24(posns[ent:], posn+objSize)
			put24(sizes[ent:], size-objSize)
		}
		if objSize == 0 {
			return nil
		}
		buf := obj.Data
		if pad := objSize*acorn.SectSize - uint32(len(buf)); pad > 0 {
			buf = append(append([]byte(nil), buf...), make([]byte, pad)...)
		}
		return t.WriteSectors(posn, buf)
	}
	return acorn.Err(acorn.KindNoSpace)
}
