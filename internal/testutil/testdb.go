package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/coursedraft/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory history database that is closed
// when the test ends.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "opening in-memory history db")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW wraps database in the production unit of work.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// CountSaveLog returns how many save records are stored.
func CountSaveLog(t testing.TB, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM save_log`).Scan(&n))
	return n
}
