package hostbridge

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestToHostAndToAcornRoundTrip(t *testing.T) {
	require.Equal(t, "NAME#1", ToHost("NAME?1"))
	require.Equal(t, "NAME?1", ToAcorn("NAME#1"))
	require.Equal(t, "PLAIN", ToHost("PLAIN"))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "HELLOWORL", Truncate("HELLOWORLD", 9))
	require.Equal(t, "HI", Truncate("HI", 9))
}

func TestReadInfMinimalFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "HELLO.inf", []byte("HELLO FFFF1900\n"), 0644))

	info, err := ReadInf(fs, "HELLO.inf")
	require.NoError(t, err)
	require.Equal(t, "HELLO", info.Name)
	require.Equal(t, uint32(0xFFFF1900), info.LoadAddr)
	require.Equal(t, uint32(0xFFFF1900), info.ExecAddr)
	require.False(t, info.Locked)
}

func TestReadInfAllFieldsAndLockedShorthand(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "HELLO.inf", []byte("HELLO FFFF1900 FFFF8023 7 L\n"), 0644))

	info, err := ReadInf(fs, "HELLO.inf")
	require.NoError(t, err)
	require.Equal(t, uint32(0xFFFF8023), info.ExecAddr)
	require.Equal(t, uint32(7), info.Length)
	require.True(t, info.Locked)
}

func TestWriteInfThenReadInfRoundTrips(t *testing.T) {
	fs := afero.NewMemMapFs()
	info := &Info{Name: "WORLD", LoadAddr: 0xFFFF2000, ExecAddr: 0xFFFF2000, Length: 12, Locked: true}
	require.NoError(t, WriteInf(fs, "WORLD.inf", info))

	got, err := ReadInf(fs, "WORLD.inf")
	require.NoError(t, err)
	require.Equal(t, info.Name, got.Name)
	require.Equal(t, info.LoadAddr, got.LoadAddr)
	require.Equal(t, info.Length, got.Length)
	require.True(t, got.Locked)
}

func TestIsAcornWild(t *testing.T) {
	require.True(t, IsAcornWild("disc.adf:$.DIR.*"))
	require.True(t, IsAcornWild("disc.adf:$.DIR.#"))
	require.False(t, IsAcornWild("disc.adf:$.DIR.HELLO"))
	require.False(t, IsAcornWild("no-colon-here"))
}
