// Package repo contains all database access logic for the Trip Logs API.
// Each collection has its own file with an interface and a SQLite
// implementation. No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"triplogs/migrations"
)

// db is the minimal interface satisfied by both *sql.DB and *sql.Tx.
// Repos accept this interface instead of *sql.DB directly, so the same
// implementation can run inside a transaction — the restore path and the
// vehicle-delete cascade bind every repo to one tx to get all-or-nothing
// semantics, and tests get free per-test isolation the same way.
type db interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open opens (creating if necessary) the SQLite database at path and applies
// all pending migrations. The connection pool is capped at one connection:
// SQLite allows a single writer, and serializing all access through one
// connection avoids SQLITE_BUSY errors without a retry loop.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("repo.Open: create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repo.Open: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("repo.Open: ping: %w", err)
	}

	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// Migrate applies all pending embedded migrations to conn.
func Migrate(conn *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, conn, migrations.FS)
	if err != nil {
		return fmt.Errorf("repo.Migrate: create goose provider: %w", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		return fmt.Errorf("repo.Migrate: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction, committing when fn returns nil and
// rolling back otherwise.
func WithTx(ctx context.Context, conn *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repo.WithTx: begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repo.WithTx: commit: %w", err)
	}
	return nil
}

// Date and timestamp columns are TEXT; these helpers keep the encoding in
// one place. Dates are calendar dates ("2006-01-02"), timestamps RFC3339.

const dateLayout = "2006-01-02"

// now returns the timestamp written into created_at/updated_at columns.
// Truncated to microseconds so values survive the RFC3339 round-trip intact.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func encodeDate(t time.Time) string {
	return t.Format(dateLayout)
}

func decodeDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
