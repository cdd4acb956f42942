package dfs

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"acornfs/acorn"
	"acornfs/transport"
)

const testTotalSectors = 200

type testSink struct{ t *testing.T }

func (s testSink) Printf(format string, args ...interface{}) { s.t.Logf(format, args...) }

func newTestImage(t *testing.T) (*Backend, transport.Transport) {
	t.Helper()
	backing := make([]byte, testTotalSectors*acorn.SectSize)
	rw := bytesextra.NewReadWriteSeeker(backing)
	tr := transport.NewSimple(rw)

	dir := make([]byte, catalogSize)
	copy(dir[0:8], "TESTDISC")
	dir[offDiskInfo] = 0x00
	dir[offDiskInfoLo] = byte(testTotalSectors)

	file1 := &acorn.Object{Name: "FILE1", Length: 10}
	encodeEntry(dir[8:16], dir[detailOff(8):detailOff(8)+8], file1, "FILE1", '$', 50)
	file2 := &acorn.Object{Name: "FILE2", Length: 20}
	encodeEntry(dir[16:24], dir[detailOff(16):detailOff(16)+8], file2, "FILE2", '$', 20)
	dir[offUsedBytes] = 16

	require.NoError(t, tr.WriteSectors(0, dir))

	f1 := make([]byte, acorn.SectSize)
	copy(f1, "0123456789")
	require.NoError(t, tr.WriteSectors(50, f1))

	f2 := make([]byte, acorn.SectSize)
	copy(f2, "ABCDEFGHIJKLMNOPQRST")
	require.NoError(t, tr.WriteSectors(20, f2))

	b, err := New(tr)
	require.NoError(t, err)
	return b, tr
}

func TestDFSFind(t *testing.T) {
	b, _ := newTestImage(t)

	obj, err := b.Find("FILE1")
	require.NoError(t, err)
	require.Equal(t, "$.FILE1", obj.Name)
	require.Equal(t, uint32(10), obj.Length)
	require.Equal(t, uint32(50), obj.Sector)

	obj, err = b.Find("$.FILE2")
	require.NoError(t, err)
	require.Equal(t, uint32(20), obj.Sector)

	_, err = b.Find("NOPE")
	require.Error(t, err)

	_, err = b.Find("A.FILE1")
	require.Error(t, err)
}

func TestDFSGlobAndWalk(t *testing.T) {
	b, _ := newTestImage(t)

	var names []string
	require.NoError(t, b.Glob(nil, "*", func(obj *acorn.Object, path string) error {
		names = append(names, path)
		return nil
	}))
	require.Equal(t, []string{"$.FILE1", "$.FILE2"}, names)

	names = nil
	require.NoError(t, b.Walk(nil, func(obj *acorn.Object, path string) error {
		names = append(names, path)
		return nil
	}))
	require.Equal(t, []string{"$.FILE1", "$.FILE2"}, names)
}

func TestDFSCheckCleanCatalogue(t *testing.T) {
	b, _ := newTestImage(t)
	require.NoError(t, b.Check("test.ssd", testSink{t}))
}

func TestDFSMkdirNotSupported(t *testing.T) {
	b, _ := newTestImage(t)
	_, err := b.Mkdir("X", b.Root())
	require.ErrorIs(t, err, acorn.Err(acorn.KindNotSupported))
}

func TestDFSSaveNewFileThenRemove(t *testing.T) {
	b, _ := newTestImage(t)

	newFile := &acorn.Object{Name: "NEWONE", Length: 5, Data: []byte("hello")}
	require.NoError(t, b.Save(newFile, b.Root()))

	found, err := b.Find("NEWONE")
	require.NoError(t, err)
	require.Equal(t, uint32(5), found.Length)
	require.NoError(t, b.Check("test.ssd", testSink{t}))

	require.NoError(t, b.Remove("NEWONE"))
	_, err = b.Find("NEWONE")
	require.Error(t, err)
}

func TestDFSSaveOverwritesExistingEntry(t *testing.T) {
	b, _ := newTestImage(t)

	updated := &acorn.Object{Name: "FILE1", Length: 8, Data: []byte("ABCDEFGH")}
	require.NoError(t, b.Save(updated, b.Root()))

	found, err := b.Find("FILE1")
	require.NoError(t, err)
	require.Equal(t, uint32(8), found.Length)
	require.Equal(t, uint32(50), found.Sector)
}
