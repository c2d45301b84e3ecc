package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	f, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Set("profile", `{"name":"Alex"}`))
	require.NoError(t, f.Set("schema-version", "2"))

	reopened, err := NewFile(path)
	require.NoError(t, err)

	v, ok, err := reopened.Get("profile")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"Alex"}`, v)

	keys, err := reopened.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"profile", "schema-version"}, keys)
}

func TestFileDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	f, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Set("roadmap", "{}"))
	require.NoError(t, f.Delete("roadmap"))
	require.NoError(t, f.Delete("roadmap"), "deleting an absent key is a no-op")

	_, ok, err := f.Get("roadmap")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")

	f, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Set("profile", "{}"))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileRejectsCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFile(path)
	assert.Error(t, err)
}
