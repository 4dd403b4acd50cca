package db_test

import (
	"path/filepath"
	"testing"

	"github.com/alexanderramin/pomo/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_AppliesAllMigrations(t *testing.T) {
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	version, err := db.SchemaVersion(database)
	require.NoError(t, err)
	assert.Equal(t, 3, version)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pomo.db")

	first, err := db.OpenDB(path)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO collections (name, body, updated_at) VALUES ('tasks', '[]', 'now')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := db.OpenDB(path)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, db.Migrate(second))
	var count int
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM collections`).Scan(&count))
	assert.Equal(t, 1, count, "reopening must keep existing rows")
}
