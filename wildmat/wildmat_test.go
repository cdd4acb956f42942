package wildmat_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"acornfs/wildmat"
)

func adfsCandidate(name string) []byte {
	buf := make([]byte, wildmat.ADFSMaxName)
	for i := range buf {
		buf[i] = 0x0d
	}
	copy(buf, name)
	return buf
}

// P6: for any sorted candidate list and any pattern, the matcher's
// stop-early signal must yield the same matched set as an exhaustive scan.
func TestADFSWildmatOrderingMatchesExhaustiveScan(t *testing.T) {
	names := []string{"ALPHA", "BETA", "CHARLIE", "DELTA", "ECHO", "FOXTROT", "GAMMA"}
	sort.Strings(names)

	patterns := []string{"*", "B*", "#HARLIE", "Z*", "*A", "DELTA"}

	for _, pattern := range patterns {
		var exhaustive []string
		for _, n := range names {
			if wildmat.MatchADFS(pattern, adfsCandidate(n), false) == 0 {
				exhaustive = append(exhaustive, n)
			}
		}

		var earlyExit []string
		for _, n := range names {
			r := wildmat.MatchADFS(pattern, adfsCandidate(n), false)
			if r == 0 {
				earlyExit = append(earlyExit, n)
			} else if r < 0 {
				break
			}
		}

		require.Equalf(t, exhaustive, earlyExit, "pattern %q", pattern)
	}
}

func TestADFSWildmatCaseInsensitive(t *testing.T) {
	require.Equal(t, 0, wildmat.MatchADFS("hello", adfsCandidate("HELLO"), false))
	require.Equal(t, 0, wildmat.MatchADFS("HELLO", adfsCandidate("hello"), false))
}

func TestADFSWildmatStarStopsAtDotForDirectory(t *testing.T) {
	// "*" should match a directory name and stop there, enabling
	// path-segmented globbing.
	require.Equal(t, 0, wildmat.MatchADFS("*.WORLD", adfsCandidate("SUBDIR"), true))
}

func TestADFSWildmatHash(t *testing.T) {
	require.Equal(t, 0, wildmat.MatchADFS("#ELLO", adfsCandidate("HELLO"), false))
	require.NotEqual(t, 0, wildmat.MatchADFS("#ELLX", adfsCandidate("HELLO"), false))
}

func dfsCandidate(name string, dirLetter byte) []byte {
	buf := make([]byte, 8)
	for i := range buf[:7] {
		buf[i] = ' '
	}
	copy(buf, name)
	buf[7] = dirLetter
	return buf
}

func TestDFSWildmatDefaultDirectory(t *testing.T) {
	require.True(t, wildmat.MatchDFS("HELLO", dfsCandidate("HELLO", '$')))
	require.False(t, wildmat.MatchDFS("HELLO", dfsCandidate("HELLO", 'A')))
}

func TestDFSWildmatExplicitDirectory(t *testing.T) {
	require.True(t, wildmat.MatchDFS("A.HELLO", dfsCandidate("HELLO", 'A')))
	require.False(t, wildmat.MatchDFS("A.HELLO", dfsCandidate("HELLO", 'B')))
}

func TestDFSWildmatWildcardDirectory(t *testing.T) {
	require.True(t, wildmat.MatchDFS("*.HELLO", dfsCandidate("HELLO", 'Z')))
}
