package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/pomo/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newFileStore(t *testing.T) (*Store, *FileBackend) {
	t.Helper()
	backend := NewFileBackend(filepath.Join(t.TempDir(), "data"), nil)
	return New(backend, nil), backend
}

func TestLoadList_MissingFileIsEmpty(t *testing.T) {
	s, _ := newFileStore(t)
	got := LoadList[record](context.Background(), s, CollectionSessions)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadList_CorruptFileIsEmpty(t *testing.T) {
	s, backend := newFileStore(t)
	path := backend.Path(CollectionTasks)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got := LoadList[record](context.Background(), s, CollectionTasks)
	assert.Empty(t, got)
}

func TestSaveList_CreatesDirectoryAndRoundTrips(t *testing.T) {
	s, backend := newFileStore(t)
	ctx := context.Background()
	in := []record{{"a", 1}, {"b", 2}, {"c", 3}}

	require.NoError(t, SaveList(ctx, s, CollectionTasks, in))
	assert.FileExists(t, backend.Path(CollectionTasks))

	out := LoadList[record](ctx, s, CollectionTasks)
	assert.Equal(t, in, out)
}

func TestSaveList_NilIsStoredAsEmptyArray(t *testing.T) {
	s, backend := newFileStore(t)
	require.NoError(t, SaveList[record](context.Background(), s, CollectionSessions, nil))

	data, err := os.ReadFile(backend.Path(CollectionSessions))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSave_WriteFailureIsReturned(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// The data directory path is a regular file, so MkdirAll fails.
	s := New(NewFileBackend(filepath.Join(blocker, "data"), nil), nil)
	err := SaveList(context.Background(), s, CollectionTasks, []record{{"a", 1}})
	assert.Error(t, err)
}

func TestLoad_LeavesTargetUntouchedOnCorruptData(t *testing.T) {
	s, backend := newFileStore(t)
	path := backend.Path(CollectionTasks)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "x", "count": "three"}`), 0o644))

	target := record{Name: "keep", Count: 9}
	ok := s.Load(context.Background(), CollectionTasks, &target)
	assert.False(t, ok)
	assert.Equal(t, record{Name: "keep", Count: 9}, target)
}

func TestFileBackend_PathOverride(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "elsewhere", "my-tasks.json")
	backend := NewFileBackend("data", map[string]string{CollectionTasks: custom})
	assert.Equal(t, custom, backend.Path(CollectionTasks))
	assert.Equal(t, filepath.Join("data", "sessions.json"), backend.Path(CollectionSessions))
}

func TestSQLiteBackend_RoundTripAndJournal(t *testing.T) {
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	backend := NewSQLiteBackend(database)
	s := New(backend, nil)
	ctx := context.Background()

	assert.Empty(t, LoadList[record](ctx, s, CollectionSessions))

	require.NoError(t, SaveList(ctx, s, CollectionSessions, []record{{"a", 1}}))
	require.NoError(t, SaveList(ctx, s, CollectionSessions, []record{{"a", 1}, {"b", 2}}))

	out := LoadList[record](ctx, s, CollectionSessions)
	assert.Equal(t, []record{{"a", 1}, {"b", 2}}, out)

	n, err := backend.WriteCount(ctx, CollectionSessions)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWriteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "snap.json")
	require.NoError(t, WriteSnapshot(path, map[string]int{"total": 2}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total": 2}`, string(data))
}
