// Package transport implements the two fixed-sector-size wire formats a
// backing file can use: a direct "simple" layout and the "interleaved"
// layout left behind by 16-bit IDE disk dumps, where every logical byte is
// doubled by a trailing zero (spec.md §4.1, component 1).
package transport

import (
	"io"

	"acornfs/acorn"
)

// SectorSize is the fixed addressable unit both transports deal in.
const SectorSize = acorn.SectSize

// Transport reads and writes whole sectors. bytes passed to either method
// must be a multiple of SectorSize.
type Transport interface {
	ReadSectors(start uint32, buf []byte) error
	WriteSectors(start uint32, buf []byte) error
}

func checkSize(buf []byte) error {
	if len(buf)%SectorSize != 0 {
		return acorn.Wrapf(acorn.KindInvalid, nil, "buffer length %d is not a multiple of %d", len(buf), SectorSize)
	}
	return nil
}

// classifyIOErr maps an I/O failure to the acorn error taxonomy: a clean
// EOF/ErrUnexpectedEOF becomes KindBadEof (spec.md §4.1 "Fails with
// UnexpectedEof on short read"), anything else is wrapped as KindIO.
func classifyIOErr(err error) error {
	if err == nil {
		return nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return acorn.Wrap(acorn.KindBadEof, err, "short read on disc image")
	}
	return acorn.Wrap(acorn.KindIO, err, "disc image I/O failed")
}
