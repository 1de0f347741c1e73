package db

import (
	"reflect"
	"testing"
	"testing/fstest"
)

func TestMigrationNamesSortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0002_b.sql":   {Data: []byte("SELECT 2;")},
		"migrations/0001_a.sql":   {Data: []byte("SELECT 1;")},
		"migrations/README.md":    {Data: []byte("docs")},
		"migrations/nested/x.sql": {Data: []byte("SELECT 3;")},
	}

	names, err := migrationNames(fsys, "migrations")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"0001_a.sql", "0002_b.sql"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	names, err := migrationNames(migrationFiles, "migrations")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(names) < 2 {
		t.Fatalf("expected guest_list and guestbook migrations, got %v", names)
	}
	if names[0] != "0001_guest_list.sql" {
		t.Fatalf("expected guest_list migration first, got %s", names[0])
	}
}
