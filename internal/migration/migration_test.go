package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func TestApplyMigrationsFreshDatabase(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testFS(map[string]string{
		"001_create_things.sql": "CREATE TABLE things (id TEXT PRIMARY KEY);",
		"002_add_names.sql":     "ALTER TABLE things ADD COLUMN name TEXT;",
	}))

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() returned unexpected error: %v", err)
	}
	if applied != 2 {
		t.Errorf("ApplyMigrations() = %d, want 2", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion() returned unexpected error: %v", err)
	}
	if version != 2 {
		t.Errorf("CurrentVersion() = %d, want 2", version)
	}

	// Re-running is a no-op.
	applied, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() returned unexpected error: %v", err)
	}
	if applied != 0 {
		t.Errorf("second ApplyMigrations() = %d, want 0", applied)
	}
}

func TestApplyMigrationsRollsBackOnFailure(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testFS(map[string]string{
		"001_ok.sql":     "CREATE TABLE things (id TEXT PRIMARY KEY);",
		"002_broken.sql": "THIS IS NOT SQL;",
	}))

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("ApplyMigrations() should fail on broken SQL")
	}
	if applied != 1 {
		t.Errorf("ApplyMigrations() applied = %d, want 1 before the failure", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion() returned unexpected error: %v", err)
	}
	if version != 1 {
		t.Errorf("CurrentVersion() = %d, want 1 after failed migration was rolled back", version)
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	db := openTestDB(t)

	tests := []struct {
		name string
		file string
	}{
		{"no version prefix", "initial.sql"},
		{"non-numeric version", "abc_initial.sql"},
		{"zero version", "000_initial.sql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(db, testFS(map[string]string{tt.file: "SELECT 1;"}))
			if _, err := runner.ReadMigrationFiles(); err == nil {
				t.Errorf("ReadMigrationFiles() with %q should fail", tt.file)
			}
		})
	}
}

func TestReadMigrationFilesRejectsDuplicateVersions(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testFS(map[string]string{
		"001_a.sql": "SELECT 1;",
		"001_b.sql": "SELECT 1;",
	}))

	_, err := runner.ReadMigrationFiles()
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("ReadMigrationFiles() error = %v, want duplicate version error", err)
	}
}

func TestValidateVersionRejectsNewerSchema(t *testing.T) {
	db := openTestDB(t)
	fsys := testFS(map[string]string{
		"001_initial.sql": "CREATE TABLE things (id TEXT PRIMARY KEY);",
	})

	runner := NewRunner(db, fsys)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations() returned unexpected error: %v", err)
	}

	// Simulate a cache written by a newer release.
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("failed to bump version: %v", err)
	}

	if err := runner.ValidateVersion(); err == nil {
		t.Error("ValidateVersion() should reject a schema newer than supported")
	}
}
