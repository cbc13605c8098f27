package pebble

import (
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// DefaultPebbleOptions returns the options used to open the chain database.
func DefaultPebbleOptions(cache *pebble.Cache) *pebble.Options {
	return &pebble.Options{
		Cache:              cache,
		FormatMajorVersion: pebble.FormatNewest,
		// the chain database is small; one memtable is plenty
		MemTableSize:                1 << 22,
		MemTableStopWritesThreshold: 4,
	}
}

// OpenDefaultPebbleDB opens (creating if needed) the pebble database at the given directory.
func OpenDefaultPebbleDB(dir string) (*pebble.DB, error) {
	cache := pebble.NewCache(1 << 20)
	defer cache.Unref()

	db, err := pebble.Open(dir, DefaultPebbleOptions(cache))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return db, nil
}

// OpenInMemoryPebbleDB opens a pebble database backed by an in-memory filesystem.
// Used by tests and tooling dry runs.
func OpenInMemoryPebbleDB() (*pebble.DB, error) {
	cache := pebble.NewCache(1 << 20)
	defer cache.Unref()

	opts := DefaultPebbleOptions(cache)
	opts.FS = vfs.NewMem()
	db, err := pebble.Open("", opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory db: %w", err)
	}
	return db, nil
}
