package bops

import (
	"errors"
	"io"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flow-qrinfo/module/irrecoverable"
	"github.com/onflow/flow-qrinfo/storage"
)

type dbReader struct {
	db *badger.DB
}

var _ storage.Reader = (*dbReader)(nil)

type noopCloser struct{}

var _ io.Closer = (*noopCloser)(nil)

func (noopCloser) Close() error { return nil }

// Get returns a copy of the committed value of the key, badger values are only
// valid within the read transaction.
func (b dbReader) Get(key []byte) ([]byte, io.Closer, error) {
	tx := b.db.NewTransaction(false)
	defer tx.Discard()

	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil, storage.ErrNotFound
		}
		return nil, nil, irrecoverable.NewExceptionf("could not read key %x: %w", key, err)
	}

	value, err := item.ValueCopy(nil)
	if err != nil {
		return nil, nil, irrecoverable.NewExceptionf("could not load value: %w", err)
	}

	return value, noopCloser{}, nil
}
