// Package testutil provides shared helpers for tests that need a real
// database. The store is an on-disk SQLite file in the test's temp
// directory, so no external service or environment variable is required.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"triplogs/internal/repo"
)

// NewDB opens a fresh SQLite database in t.TempDir() and applies all
// embedded migrations. Every call returns an isolated database, so tests
// never observe each other's writes. The connection is closed automatically
// when the test (and all its subtests) finish.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "triplogs-test.db")
	conn, err := repo.Open(path)
	if err != nil {
		t.Fatalf("testutil.NewDB: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}
