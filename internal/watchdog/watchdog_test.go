package watchdog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDevice_PulseAndMagicClose(t *testing.T) {
	// A regular file stands in for the character device.
	path := filepath.Join(t.TempDir(), "watchdog")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	d, err := OpenDevice(path)
	require.NoError(t, err)

	require.NoError(t, d.Pulse())
	require.NoError(t, d.Pulse())
	require.NoError(t, d.Close())
	require.NoError(t, d.Close(), "second close is a no-op")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 'V'}, got)

	require.Error(t, d.Pulse())
}

func TestOpenDevice_Missing(t *testing.T) {
	_, err := OpenDevice(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)

	_, err = OpenDevice("")
	require.Error(t, err)
}

func TestFuncAndNop(t *testing.T) {
	n := 0
	var p Pulser = Func(func() error { n++; return nil })
	require.NoError(t, p.Pulse())
	require.Equal(t, 1, n)

	require.NoError(t, Nop{}.Pulse())
}
