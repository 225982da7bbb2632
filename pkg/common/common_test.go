package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDint64(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		assert.Positive(t, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.yml")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Join(dir, "absent.yml")))
}

func TestMakeDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	MakeDir(dir)
	assert.True(t, FileExists(dir))
	// idempotent
	MakeDir(dir)
	assert.True(t, FileExists(dir))
}

func TestIfEmptyStr(t *testing.T) {
	assert.Equal(t, "postgres", IfEmptyStr("", "postgres"))
	assert.Equal(t, "mysql", IfEmptyStr("mysql", "postgres"))
}
