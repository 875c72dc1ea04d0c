package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files should not remain")
	assert.Equal(t, "report.txt", entries[0].Name())
}

func TestWriteFileAtomicInvalidDir(t *testing.T) {
	t.Parallel()

	err := WriteFileAtomic("/nonexistent/dir/report.txt", []byte("data"), 0o644)
	assert.Error(t, err)
}

func TestWriteJSONAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	report := struct {
		Strategy string  `json:"strategy"`
		Rounds   int     `json:"rounds"`
		Edge     float64 `json:"house_edge"`
	}{"chart", 1000, 0.0061}

	require.NoError(t, WriteJSONAtomic(path, report, 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"strategy":"chart","rounds":1000,"house_edge":0.0061}`, string(data))
	assert.Equal(t, byte('\n'), data[len(data)-1])
}

func TestWriteJSONAtomicUnsupportedValue(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	err := WriteJSONAtomic(path, map[string]any{"ch": make(chan int)}, 0o644)
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
