package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/redactyl/credsweep/internal/types"
)

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	// initial load should return empty DB and error
	db, err := Load(dir)
	if err == nil {
		t.Fatalf("expected error for missing index")
	}
	if db.Entries == nil {
		t.Fatalf("expected entries map initialized")
	}
	db.Record("deadbeefdeadbeef", "dump_20260101_000000.json")
	if err := Save(dir, db); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
		t.Fatalf("index file not written: %v", err)
	}
	db2, err := Load(dir)
	if err != nil {
		t.Fatalf("load after save: %v", err)
	}
	if got := db2.Seen("deadbeefdeadbeef"); len(got) != 1 || got[0] != "dump_20260101_000000.json" {
		t.Fatalf("unexpected entry: %q", got)
	}
}

func TestRecord_IgnoresRepeats(t *testing.T) {
	db := DB{Entries: map[string][]string{}}
	db.Record("d", "a.json")
	db.Record("d", "a.json")
	db.Record("d", "b.json")
	if got := db.Seen("d"); len(got) != 2 || got[1] != "b.json" {
		t.Fatalf("unexpected entries: %q", got)
	}
	if got := db.Seen("other"); len(got) != 0 {
		t.Fatalf("expected nothing for unknown digest, got %q", got)
	}
}

func TestSave_NilEntries(t *testing.T) {
	if err := Save(t.TempDir(), DB{}); err == nil {
		t.Fatal("expected error for nil entries")
	}
}

func TestSave_WriteError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")
	err := Save(root, DB{Entries: map[string][]string{"d": {"a.json"}}})
	var ioErr *types.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if ioErr.Path != filepath.Join(root, FileName) {
		t.Fatalf("unexpected path %q", ioErr.Path)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	db, err := Load(dir)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if db.Entries == nil {
		t.Fatal("expected usable empty DB on error")
	}
}
