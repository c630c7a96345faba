package db

import (
	"context"
	"path/filepath"
	"testing"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"bso.sqlite3", "bso.sqlite3?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"},
		{"file:bso.sqlite3?mode=rwc", "file:bso.sqlite3?mode=rwc&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"},
	}
	for _, tt := range tests {
		if got := dsn(tt.path); got != tt.want {
			t.Errorf("dsn(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bso.sqlite3")

	if err := Migrate(path); err != nil {
		t.Fatalf("first Migrate: %v", err)
	}
	if err := Migrate(path); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	version, dirty, err := SchemaVersion(path)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("expected clean version 1, got %d (dirty=%v)", version, dirty)
	}
}

func TestSchemaVersionOfEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.sqlite3")

	version, dirty, err := SchemaVersion(path)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != 0 || dirty {
		t.Errorf("expected version 0, got %d (dirty=%v)", version, dirty)
	}
}

func TestNewTestDBHasBlanksTable(t *testing.T) {
	database := NewTestDB(t)

	var n int
	err := database.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'blanks'`,
	).Scan(&n)
	if err != nil {
		t.Fatalf("querying sqlite_master: %v", err)
	}
	if n != 1 {
		t.Errorf("expected blanks table, found %d", n)
	}
}
