package transport

import "io"

// Simple is the direct sector transport: sector N lives at byte offset
// N*SectorSize (spec.md §4.1 "Simple").
type Simple struct {
	RW interface {
		io.ReaderAt
		io.WriterAt
	}
}

// NewSimple wraps rw (typically *os.File, or a bytesextra-wrapped []byte
// in tests) as a simple sector transport.
func NewSimple(rw interface {
	io.ReaderAt
	io.WriterAt
}) *Simple {
	return &Simple{RW: rw}
}

func (s *Simple) ReadSectors(start uint32, buf []byte) error {
	if err := checkSize(buf); err != nil {
		return err
	}
	off := int64(start) * SectorSize
	n, err := io.ReadFull(io.NewSectionReader(s.RW, off, int64(len(buf))), buf)
	if n == len(buf) {
		return nil
	}
	return classifyIOErr(err)
}

func (s *Simple) WriteSectors(start uint32, buf []byte) error {
	if err := checkSize(buf); err != nil {
		return err
	}
	off := int64(start) * SectorSize
	if _, err := s.RW.WriteAt(buf, off); err != nil {
		return classifyIOErr(err)
	}
	return nil
}
