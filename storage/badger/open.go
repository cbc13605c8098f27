package badger

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"
)

// OpenBadgerDB opens (creating if needed) the badger database at the given directory.
func OpenBadgerDB(dir string) (*badger.DB, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("could not open badger db: %w", err)
	}
	return db, nil
}
