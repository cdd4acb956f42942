package transport_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"acornfs/acorn"
	"acornfs/transport"
)

// P7: interleaved_read(interleaved_write(x)) == x, for an arbitrary
// N-sector payload.
func TestInterleaveRoundTrip(t *testing.T) {
	const sectors = 5
	backing := make([]byte, sectors*transport.SectorSize*2)
	rw := bytesextra.NewReadWriteSeeker(backing)
	tr := transport.NewInterleaved(rw)

	payload := make([]byte, sectors*transport.SectorSize)
	for i := range payload {
		payload[i] = byte(i*7 + 3)
	}

	require.NoError(t, tr.WriteSectors(0, payload))

	got := make([]byte, len(payload))
	require.NoError(t, tr.ReadSectors(0, got))

	if diff := cmp.Diff(payload, got); diff != "" {
		t.Fatalf("interleave round trip mismatch (-want +got):\n%s", diff)
	}

	// every odd byte in the backing store must be zero: that's the "every
	// logical byte doubled by a zero" contract (spec.md §4.1).
	for i := 1; i < len(backing); i += 2 {
		require.Equalf(t, byte(0), backing[i], "backing[%d] should be zero padding", i)
	}
}

func TestSimpleReadWrite(t *testing.T) {
	const sectors = 3
	backing := make([]byte, sectors*transport.SectorSize)
	rw := bytesextra.NewReadWriteSeeker(backing)
	tr := transport.NewSimple(rw)

	payload := []byte("WORLD!\n")
	buf := make([]byte, transport.SectorSize)
	copy(buf, payload)

	require.NoError(t, tr.WriteSectors(1, buf))

	got := make([]byte, transport.SectorSize)
	require.NoError(t, tr.ReadSectors(1, got))
	require.Equal(t, buf, got)
}

func TestSimpleShortReadIsBadEof(t *testing.T) {
	backing := make([]byte, transport.SectorSize) // only 1 sector available
	rw := bytesextra.NewReadWriteSeeker(backing)
	tr := transport.NewSimple(rw)

	buf := make([]byte, transport.SectorSize)
	err := tr.ReadSectors(1, buf) // sector 1 is past EOF
	require.ErrorIs(t, err, acorn.Err(acorn.KindBadEof))
}
