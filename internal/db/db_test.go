package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Verify tables exist.
	for _, table := range []string{"preferences", "load_events"} {
		var count int
		err := d.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
	v, err := d.Version()
	if err != nil {
		t.Fatalf("Version() error: %v", err)
	}
	if v != len(migrations) {
		t.Errorf("Version() = %d, want %d", v, len(migrations))
	}
}

func TestOpenFile(t *testing.T) {
	// Reopening the same file keeps data and does not re-run migrations.
	path := filepath.Join(t.TempDir(), "nested", "showcase.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()

	if d.Path() != path {
		t.Errorf("Path() = %q, want %q", d.Path(), path)
	}
	if _, err := d.Exec(`INSERT INTO preferences (client_id, key, value) VALUES ('c', 'theme', 'dark')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	d.Close()

	d, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer d.Close()
	var value string
	if err := d.QueryRow(`SELECT value FROM preferences WHERE client_id = 'c' AND key = 'theme'`).Scan(&value); err != nil {
		t.Fatalf("select: %v", err)
	}
	if value != "dark" {
		t.Errorf("value = %q, want dark", value)
	}
}

func TestLoadEventOutcomeConstraint(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	_, err = d.Exec(`INSERT INTO load_events (session_id, component_id, path, outcome) VALUES ('s', 'c', '/c.html', 'bogus')`)
	if err == nil {
		t.Fatal("expected CHECK constraint failure")
	}
}
