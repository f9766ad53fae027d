package sqlitemigrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "migrate.db")
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return sqlDB
}

func TestApplyRunsMigrationsInOrder(t *testing.T) {
	sqlDB := openTestDB(t)

	migrationFS := fstest.MapFS{
		"0001_create.sql": &fstest.MapFile{Data: []byte(
			"-- +migrate Up\nCREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT);\n-- +migrate Down\nDROP TABLE widgets;\n",
		)},
		"0002_alter.sql": &fstest.MapFile{Data: []byte(
			"-- +migrate Up\nALTER TABLE widgets ADD COLUMN color TEXT;\n",
		)},
	}

	if err := Apply(sqlDB, migrationFS); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if _, err := sqlDB.Exec(`INSERT INTO widgets (name, color) VALUES ('a', 'red')`); err != nil {
		t.Fatalf("insert after migrations: %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	sqlDB := openTestDB(t)

	migrationFS := fstest.MapFS{
		"0001_create.sql": &fstest.MapFile{Data: []byte(
			"-- +migrate Up\nCREATE TABLE widgets (id INTEGER PRIMARY KEY);\n",
		)},
	}

	if err := Apply(sqlDB, migrationFS); err != nil {
		t.Fatalf("first Apply() error = %v", err)
	}
	if err := Apply(sqlDB, migrationFS); err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}

	var count int
	row := sqlDB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("applied migrations = %d, want 1", count)
	}
}

func TestApplyRequiresDB(t *testing.T) {
	if err := Apply(nil, fstest.MapFS{}); err == nil {
		t.Fatal("Apply(nil) error = nil, want error")
	}
}
