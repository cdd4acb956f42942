package adfs

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"acornfs/acorn"
	"acornfs/transport"
)

const testTotalSectors = 64

// addEntry writes obj into the first unused slot of a freshly built
// directory buffer. Unlike dirUpdate/dirMakeSlot it never shifts existing
// entries, since test fixtures are built with entries already in the
// final sorted order they need for I6.
func addEntry(dir []byte, obj *acorn.Object) {
	end := len(dir) - dirFtrSize
	for pos := dirHdrSize; pos < end; pos += dirEntSize {
		if dir[pos] == 0 {
			encodeEntry(dir[pos:pos+dirEntSize], obj)
			return
		}
	}
}

type testSink struct{ t *testing.T }

func (s testSink) Printf(format string, args ...interface{}) { s.t.Logf(format, args...) }

// newTestImage builds a minimal, fully self-consistent ADFS image:
// root ($) containing HELLO (a file) and SUBDIR (a directory containing
// WORLD), with every sector from 2 to 63 accounted for by either an
// object or the free-space map, as I5 requires.
func newTestImage(t *testing.T) (*Backend, transport.Transport) {
	t.Helper()
	backing := make([]byte, testTotalSectors*acorn.SectSize)
	rw := bytesextra.NewReadWriteSeeker(backing)
	tr := transport.NewSimple(rw)

	root := newDirBuffer("$", rootSector)
	addEntry(root, &acorn.Object{Name: "HELLO", Sector: 7, Length: 5})
	subAttr := acorn.NewAttr()
	subAttr.SetDir(true)
	addEntry(root, &acorn.Object{Name: "SUBDIR", Sector: 8, Length: dirSize, Attr: subAttr})
	require.NoError(t, tr.WriteSectors(rootSector, root))

	sub := newDirBuffer("SUBDIR", rootSector)
	addEntry(sub, &acorn.Object{Name: "WORLD", Sector: 13, Length: 6})
	require.NoError(t, tr.WriteSectors(8, sub))

	hello := make([]byte, acorn.SectSize)
	copy(hello, "HELLO")
	require.NoError(t, tr.WriteSectors(7, hello))

	world := make([]byte, acorn.SectSize)
	copy(world, "WORLD!")
	require.NoError(t, tr.WriteSectors(13, world))

	fsmap := make([]byte, fsmapSize)
	put24(fsmap[0:], 14)
	put24(fsmap[fsmapSizesOff:], testTotalSectors-14)
	fsmap[fsmapCountOff] = fsmapEntStride
	fsmap[fsmapChk1Off] = checksum(fsmap[:0x100])
	fsmap[fsmapChk2Off] = checksum(fsmap[0x100:0x200])
	require.NoError(t, tr.WriteSectors(0, fsmap))

	return New(tr), tr
}

func TestFindRootAndNested(t *testing.T) {
	b, _ := newTestImage(t)

	root, err := b.Find("$")
	require.NoError(t, err)
	require.Equal(t, "$", root.Name)
	require.True(t, root.Attr.IsDir())

	hello, err := b.Find("$.HELLO")
	require.NoError(t, err)
	require.Equal(t, uint32(5), hello.Length)
	require.False(t, hello.Attr.IsDir())

	world, err := b.Find("$.SUBDIR.WORLD")
	require.NoError(t, err)
	require.Equal(t, uint32(6), world.Length)

	_, err = b.Find("$.NOPE")
	require.Error(t, err)
}

func TestWalkVisitsEveryObjectPreOrder(t *testing.T) {
	b, _ := newTestImage(t)

	var paths []string
	require.NoError(t, b.Walk(nil, func(obj *acorn.Object, path string) error {
		paths = append(paths, path)
		return nil
	}))
	require.Equal(t, []string{"HELLO", "SUBDIR", "SUBDIR.WORLD"}, paths)
}

func TestGlobTopLevelStar(t *testing.T) {
	b, _ := newTestImage(t)

	var names []string
	require.NoError(t, b.Glob(nil, "*", func(obj *acorn.Object, path string) error {
		names = append(names, path)
		return nil
	}))
	require.Equal(t, []string{"HELLO", "SUBDIR"}, names)
}

func TestGlobDescendsOnDottedPattern(t *testing.T) {
	b, _ := newTestImage(t)

	var names []string
	require.NoError(t, b.Glob(nil, "SUBDIR.*", func(obj *acorn.Object, path string) error {
		names = append(names, path)
		return nil
	}))
	require.Equal(t, []string{"SUBDIR.WORLD"}, names)
}

// P8: a freshly-checked image reports zero diagnostics.
func TestCheckCleanImageReportsNoDiagnostics(t *testing.T) {
	b, _ := newTestImage(t)
	require.NoError(t, b.Check("test.adl", testSink{t}))
}

func TestMkdirThenSaveAndCheckStillClean(t *testing.T) {
	b, _ := newTestImage(t)

	root, err := b.Find("$")
	require.NoError(t, err)

	newDir, err := b.Mkdir("NEWDIR", root)
	require.NoError(t, err)
	require.True(t, newDir.Attr.IsDir())

	_, err = b.Mkdir("NEWDIR", root)
	require.ErrorIs(t, err, acorn.Err(acorn.KindExists))

	file := &acorn.Object{Name: "A", Length: 4, Data: []byte("data")}
	require.NoError(t, b.Save(file, newDir))

	found, err := b.Find("$.NEWDIR.A")
	require.NoError(t, err)
	require.Equal(t, uint32(4), found.Length)

	require.NoError(t, b.Check("test.adl", testSink{t}))
}

func TestSetTitle(t *testing.T) {
	b, _ := newTestImage(t)
	require.NoError(t, b.SetTitle("MYDISC"))

	ssect := rootSector + dirSize/acorn.SectSize - 1
	buf := make([]byte, acorn.SectSize)
	require.NoError(t, b.ReadSectors(ssect, buf))
	require.Equal(t, "MYDISC", string(buf[titleSectorOffset:titleSectorOffset+6]))
}
