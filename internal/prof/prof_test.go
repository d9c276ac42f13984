package prof_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"nova/internal/prof"
)

func TestHeapProfileWrittenOnStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem.pprof")
	s, err := prof.Start(prof.Options{MemProfile: path})
	require.NoError(t, err)
	require.NoError(t, s.Stop())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestStartFailsOnBadPath(t *testing.T) {
	_, err := prof.Start(prof.Options{CPUProfile: filepath.Join(t.TempDir(), "missing", "cpu.pprof")})
	require.Error(t, err)
}

func TestNilSessionStop(t *testing.T) {
	var s *prof.Session
	require.NoError(t, s.Stop())
	require.False(t, prof.Options{}.Enabled())
}
