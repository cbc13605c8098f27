package pops

import (
	"errors"
	"io"

	"github.com/cockroachdb/pebble"

	"github.com/onflow/flow-qrinfo/module/irrecoverable"
	"github.com/onflow/flow-qrinfo/storage"
)

type dbReader struct {
	db *pebble.DB
}

var _ storage.Reader = (*dbReader)(nil)

// Get returns the committed value of the key. The value is only valid until
// the returned closer is closed.
func (r dbReader) Get(key []byte) ([]byte, io.Closer, error) {
	value, closer, err := r.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, nil, irrecoverable.NewExceptionf("could not read key %x: %w", key, err)
	}
	return value, closer, nil
}
