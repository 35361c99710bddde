package snapshot

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	return NewFileStore(path, slog.Default()), path
}

func TestFileStore_Load_AbsentFile(t *testing.T) {
	store, _ := newStore(t)

	set, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestFileStore_Load_CorruptFile(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	set, err := store.Load()
	require.NoError(t, err, "corrupt snapshot degrades to empty, not error")
	assert.Empty(t, set)
}

func TestFileStore_Load_UnreadablePath(t *testing.T) {
	// Path pointing at a directory: ReadFile fails with a non-ENOENT
	// error. Still degrades to empty so the run proceeds.
	store := NewFileStore(t.TempDir(), slog.Default())

	set, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestFileStore_Load_WrongShape(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"signatures":["a"]}`), 0o644))

	set, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestFileStore_SaveLoadRoundtrip(t *testing.T) {
	store, path := newStore(t)
	sigs := []string{"row|one", "row|two", "row|two"}

	require.NoError(t, store.Save(sigs))

	// Pretty-printed JSON array on disk.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"row|one\"")

	set, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, set, 2)
	assert.Contains(t, set, "row|one")
	assert.Contains(t, set, "row|two")
}

func TestFileStore_Save_ReplacesWholesale(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Save([]string{"old"}))
	require.NoError(t, store.Save([]string{"new"}))

	set, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, set, 1)
	assert.Contains(t, set, "new")
	assert.NotContains(t, set, "old")
}
