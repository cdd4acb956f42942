package opener

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"acornfs/acorn"
	"acornfs/adfs"
	"acornfs/dfs"
)

func TestProbeSelectsDFSForPlainCatalogue(t *testing.T) {
	backing := make([]byte, 200*acorn.SectSize)
	copy(backing[0:8], "TESTDISC")
	backing[0x106] = 0x00
	backing[0x107] = 200
	rw := bytesextra.NewReadWriteSeeker(backing)

	reg := acorn.NewRegistry()
	h, err := Open(reg, "test.ssd", rw)
	require.NoError(t, err)
	require.Equal(t, "test.ssd", h.Path())

	_, isDFS := h.(*handle).Filesystem.(*dfs.Backend)
	require.True(t, isDFS)
}

func TestProbeSelectsADFSSimple(t *testing.T) {
	backing := make([]byte, 640*acorn.SectSize)
	root := make([]byte, 1280)
	root[1], root[2], root[3], root[4] = 'H', 'u', 'g', 'o'
	copy(root[1227+0x2f:1227+0x34], root[0:5])
	copy(backing[2*acorn.SectSize:], root)
	rw := bytesextra.NewReadWriteSeeker(backing)

	reg := acorn.NewRegistry()
	h, err := Open(reg, "test.adl", rw)
	require.NoError(t, err)

	_, isADFS := h.(*handle).Filesystem.(*adfs.Backend)
	require.True(t, isADFS)
}

func TestOpenDedupesByPath(t *testing.T) {
	backing := make([]byte, 200*acorn.SectSize)
	copy(backing[0:8], "TESTDISC")
	backing[0x106] = 0x00
	backing[0x107] = 200
	rw := bytesextra.NewReadWriteSeeker(backing)

	reg := acorn.NewRegistry()
	h1, err := Open(reg, "same.ssd", rw)
	require.NoError(t, err)
	h2, err := Open(reg, "same.ssd", rw)
	require.NoError(t, err)
	require.Same(t, h1, h2)
}
