package testutil

import (
	"database/sql"
	"embed"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

//go:embed migrations/*.sql
var testMigrationsFS embed.FS

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Every pooled connection to ":memory:" would get its own empty database.
	db.SetMaxOpenConns(1)

	entries, err := testMigrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	for _, entry := range entries {
		sqlBytes, err := testMigrationsFS.ReadFile("migrations/" + entry.Name())
		require.NoError(t, err, "failed to read migration %s", entry.Name())

		_, err = db.Exec(string(sqlBytes))
		require.NoError(t, err, "failed to apply migration %s", entry.Name())
	}

	return db
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
