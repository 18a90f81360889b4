package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redactyl/credsweep/internal/types"
)

// FileName is the scan index kept in the output root.
const FileName = ".scan_index.json"

type DB struct {
	// Document digest (xxhash64 hex) -> report file names, oldest first
	Entries map[string][]string `json:"entries"`
}

func defaultPath(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads the index under root. A missing or unreadable index returns an
// empty DB together with the error.
func Load(root string) (DB, error) {
	var db DB
	p := defaultPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return DB{Entries: map[string][]string{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string][]string{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string][]string{}
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	p := defaultPath(root)
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scan index: %w", err)
	}
	if err := os.WriteFile(p, b, 0644); err != nil {
		return &types.IOError{Op: "write scan index", Path: p, Err: err}
	}
	return nil
}

// Seen returns the reports previously produced for digest.
func (db DB) Seen(digest string) []string {
	return db.Entries[digest]
}

// Record adds report under digest, ignoring repeats.
func (db DB) Record(digest, report string) {
	for _, r := range db.Entries[digest] {
		if r == report {
			return
		}
	}
	db.Entries[digest] = append(db.Entries[digest], report)
}
