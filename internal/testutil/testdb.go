package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/pomo/internal/db"
	"github.com/alexanderramin/pomo/internal/store"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewFileStore returns a Store over a fresh temp data directory and the
// backend so tests can inspect file paths.
func NewFileStore(t *testing.T) (*store.Store, *store.FileBackend) {
	t.Helper()
	backend := store.NewFileBackend(filepath.Join(t.TempDir(), "data"), nil)
	return store.New(backend, nil), backend
}

// NewSQLiteStore returns a Store over an in-memory SQLite backend.
func NewSQLiteStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(store.NewSQLiteBackend(NewTestDB(t)), nil)
}
