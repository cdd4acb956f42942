// Package opener probes a disk image to find out which backend understands
// it, locks the underlying file and registers the resulting handle (spec.md
// §4.2, component 2; original_source/acorn-fs.c acorn_fs_open).
package opener

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"acornfs/acorn"
	"acornfs/adfs"
	"acornfs/dfs"
	"acornfs/transport"
)

// Closer abstracts the file handle an opened image owns, so tests can open
// an in-memory image without anything to close.
type Closer interface {
	io.Closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// handle adapts a bound acorn.Filesystem plus its underlying file into the
// acorn.Handle the registry tracks (spec.md §4.8 component 7).
type handle struct {
	acorn.Filesystem
	path   string
	file   Closer
	locked bool
}

func (h *handle) Path() string { return h.path }

func (h *handle) Close() error {
	if h.locked {
		_ = unlock(h.file)
	}
	return h.file.Close()
}

// readerAtWriterAt is what both transport implementations need from the
// backing file.
type readerAtWriterAt interface {
	io.ReaderAt
	io.WriterAt
}

// checkADFS implements original_source/acorn-fs.c's check_adfs: it reads the
// "\0Hugo" sentinel (or, for the interleaved transport, its doubled form)
// at off1, compares it against pattern, then re-reads the same sentinel at
// off2 (the root directory's footer copy) and confirms the two agree,
// without fully decoding the directory.
func checkADFS(rw readerAtWriterAt, off1, off2 int64, pattern []byte, length int) error {
	id1 := make([]byte, length)
	if _, err := io.ReadFull(io.NewSectionReader(rw, off1, int64(length)), id1); err != nil {
		return acorn.Wrap(acorn.KindBadEof, err, "read adfs probe 1")
	}
	for i := 0; i < length-1; i++ {
		if id1[i+1] != pattern[i] {
			return acorn.Err(acorn.KindNotAcorn)
		}
	}
	id2 := make([]byte, length)
	if _, err := io.ReadFull(io.NewSectionReader(rw, off2, int64(length)), id2); err != nil {
		return acorn.Wrap(acorn.KindBadEof, err, "read adfs probe 2")
	}
	for i := 0; i < length; i++ {
		if id1[i] != id2[i] {
			return acorn.Err(acorn.KindBrokenDir)
		}
	}
	return nil
}

var interleavedPattern = []byte{0, 'H', 0, 'u', 0, 'g', 0, 'o', 0}

// probe picks the backend matching rw's contents, trying ADFS-simple, then
// ADFS-interleaved, then DFS, in that order, mirroring the fallthrough
// conditions of original_source/acorn-fs.c's acorn_fs_open exactly: ADFS-
// interleaved is only attempted after a KindNotAcorn from the simple probe,
// and DFS is only attempted after KindNotAcorn or KindBadEof from whichever
// ADFS probe ran last. Any other failure (a broken directory, a read
// error) is fatal and aborts the whole probe rather than falling through.
func probe(rw readerAtWriterAt) (acorn.Filesystem, error) {
	err := checkADFS(rw, 0x200, 0x6fa, []byte("Hugo"), 5)
	if err == nil {
		return adfs.New(transport.NewSimple(rw)), nil
	}
	if errors.Is(err, acorn.Err(acorn.KindNotAcorn)) {
		if err2 := checkADFS(rw, 0x400, 0xdf4, interleavedPattern, 10); err2 == nil {
			return adfs.New(transport.NewInterleaved(rw)), nil
		} else {
			err = err2
		}
	}
	if !errors.Is(err, acorn.Err(acorn.KindNotAcorn)) && !errors.Is(err, acorn.Err(acorn.KindBadEof)) {
		return nil, err
	}

	d, dErr := dfs.New(transport.NewSimple(rw))
	if dErr != nil {
		return nil, dErr
	}
	if chkErr := d.Check("", silentSink{}); chkErr != nil {
		return nil, acorn.Err(acorn.KindNotAcorn)
	}
	return d, nil
}

type silentSink struct{}

func (silentSink) Printf(string, ...interface{}) {}

// Open probes rw and, on success, registers and returns a Handle under
// path, deduplicating against an already-open handle for the same path
// (spec.md §4.2 steps 4-6). This entry point takes no lock and no Closer:
// it is used directly by tests driving an in-memory image. OpenFile is the
// production entry point that also locks and owns an *os.File.
func Open(reg *acorn.Registry, path string, rw readerAtWriterAt) (acorn.Handle, error) {
	if h, ok := reg.Lookup(path); ok {
		return h, nil
	}
	fs, err := probe(rw)
	if err != nil {
		return nil, err
	}
	h := &handle{Filesystem: fs, path: path, file: nopCloser{}}
	return reg.Register(path, h), nil
}

// OpenFile opens the image at path on disk, takes an advisory lock on it
// (non-blocking unless blocking is set, per spec.md §5) and probes/
// registers it (spec.md §4.2 steps 1-6; original_source/acorn-fs.c
// acorn_fs_open). path is canonicalized so repeated opens via different
// relative spellings still dedupe in reg.
func OpenFile(reg *acorn.Registry, path string, writable, blocking bool) (acorn.Handle, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, acorn.Wrap(acorn.KindIO, err, "resolve image path")
	}
	if h, ok := reg.Lookup(abs); ok {
		return h, nil
	}

	mode := os.O_RDONLY
	if writable {
		mode = os.O_RDWR
	}
	f, err := os.OpenFile(abs, mode, 0)
	if err != nil {
		return nil, acorn.Wrap(acorn.KindIO, err, "open image")
	}

	if err := lock(f, writable, blocking); err != nil {
		f.Close()
		return nil, err
	}

	fs, err := probe(f)
	if err != nil {
		_ = unlock(f)
		f.Close()
		return nil, err
	}

	h := &handle{Filesystem: fs, path: abs, file: f, locked: true}
	return reg.Register(abs, h), nil
}
