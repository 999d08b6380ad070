package sqlite

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDB_dsn(t *testing.T) {
	t.Parallel()

	db := NewDB(t.TempDir() + "/test.db")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	// A connection opened outside the pool gets the same pragmas.
	conn, err := sql.Open("sqlite3", db.dsn())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var foreignKeys, busyTimeout int
	require.NoError(t, conn.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	require.NoError(t, conn.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	require.Equal(t, 1, foreignKeys)
	require.Equal(t, 5000, busyTimeout)
}
