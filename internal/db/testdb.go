package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// NewTestDB creates a fresh migrated SQLite database in a temp directory.
// A file is used instead of :memory: so that every pooled connection and
// the migrator see the same database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.sqlite3")
	if err := Migrate(path); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
