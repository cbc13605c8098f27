package dbtest

import (
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/storage/operation/bops"
	"github.com/onflow/flow-qrinfo/storage/operation/pops"
	"github.com/onflow/flow-qrinfo/utils/unittest"
)

// helper types and functions
type WithWriter func(func(storage.Writer) error) error

// RunWithDB runs the test function once against a badger database and once
// against a pebble database, as subtests.
func RunWithDB(t *testing.T, fn func(t *testing.T, db storage.DB)) {
	t.Run("BadgerStorage", func(t *testing.T) {
		unittest.RunWithBadgerDB(t, func(db *badger.DB) {
			fn(t, bops.ToDB(db))
		})
	})

	t.Run("PebbleStorage", func(t *testing.T) {
		unittest.RunWithPebbleDB(t, func(db *pebble.DB) {
			fn(t, pops.ToDB(db))
		})
	})
}

// RunWithStorages runs the test function against both backends, handing it
// the database's reader and a function that commits writes in one batch.
func RunWithStorages(t *testing.T, fn func(*testing.T, storage.Reader, WithWriter)) {
	RunWithDB(t, func(t *testing.T, db storage.DB) {
		withWriter := func(writing func(storage.Writer) error) error {
			return db.WithReaderBatchWriter(storage.OnlyWriter(writing))
		}
		fn(t, db.Reader(), withWriter)
	})
}
