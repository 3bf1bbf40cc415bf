// Package testdb opens a migrated sqlite database for package tests.
package testdb

import (
	"context"
	"path/filepath"
	"testing"

	"libraryservice/util/database"
)

const params = "?_busy_timeout=5000&_txlock=immediate&_foreign_keys=1"

// New returns a fresh database in t.TempDir with the schema applied.
// It is closed when the test ends.
func New(t *testing.T) *database.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "library.db") + params
	if err := database.MigrateUp(database.DriverSQLite, dsn); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	db, err := database.New(context.Background(), database.Config{
		Driver: database.DriverSQLite,
		DSN:    dsn,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// MustExec runs a fixture statement written with '?' placeholders.
func MustExec(t *testing.T, db *database.DB, query string, args ...any) int64 {
	t.Helper()

	res, err := db.ExecContext(context.Background(), db.Rebind(query), args...)
	if err != nil {
		t.Fatalf("exec fixture: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}
