package transport

import "io"

// chunkSize bounds the temporary buffer used to de-interleave/interleave
// data, per spec.md §4.1 "Chunked at 256-byte boundaries to bound
// temporary storage".
const chunkSize = SectorSize

// Interleaved is the IDE-dump sector transport: sector N occupies
// 2*SectorSize bytes starting at N*2*SectorSize, every second (odd) byte
// ignored on read and written as zero (spec.md §4.1 "Interleaved").
type Interleaved struct {
	RW interface {
		io.ReaderAt
		io.WriterAt
	}
}

// NewInterleaved wraps rw as an interleaved sector transport.
func NewInterleaved(rw interface {
	io.ReaderAt
	io.WriterAt
}) *Interleaved {
	return &Interleaved{RW: rw}
}

func (t *Interleaved) ReadSectors(start uint32, buf []byte) error {
	if err := checkSize(buf); err != nil {
		return err
	}
	off := int64(start) * SectorSize * 2
	remaining := len(buf)
	dst := buf
	tmp := make([]byte, 2*chunkSize)
	for remaining > 0 {
		chunk := remaining
		if chunk > chunkSize {
			chunk = chunkSize
		}
		doubled := tmp[:chunk*2]
		n, err := io.ReadFull(io.NewSectionReader(t.RW, off, int64(len(doubled))), doubled)
		if n != len(doubled) {
			return classifyIOErr(err)
		}
		for i := 0; i < chunk; i++ {
			dst[i] = doubled[i*2]
		}
		dst = dst[chunk:]
		off += int64(chunk) * 2
		remaining -= chunk
	}
	return nil
}

func (t *Interleaved) WriteSectors(start uint32, buf []byte) error {
	if err := checkSize(buf); err != nil {
		return err
	}
	off := int64(start) * SectorSize * 2
	src := buf
	remaining := len(buf)
	tmp := make([]byte, 2*chunkSize)
	for remaining > 0 {
		chunk := remaining
		if chunk > chunkSize {
			chunk = chunkSize
		}
		doubled := tmp[:chunk*2]
		for i := 0; i < chunk; i++ {
			doubled[i*2] = src[i]
			doubled[i*2+1] = 0
		}
		if _, err := t.RW.WriteAt(doubled, off); err != nil {
			return classifyIOErr(err)
		}
		src = src[chunk:]
		off += int64(chunk) * 2
		remaining -= chunk
	}
	return nil
}
