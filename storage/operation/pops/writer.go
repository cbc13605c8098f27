package pops

import (
	"github.com/cockroachdb/pebble"

	"github.com/onflow/flow-qrinfo/module/irrecoverable"
	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/storage/operation"
)

// batchWriter buffers writes in a pebble batch. Reads through GlobalReader
// see only committed state.
type batchWriter struct {
	operation.Callbacks
	reader dbReader
	batch  *pebble.Batch
	closed bool
}

var _ operation.Batch = (*batchWriter)(nil)

func newBatchWriter(db *pebble.DB) *batchWriter {
	return &batchWriter{
		reader: dbReader{db: db},
		batch:  db.NewBatch(),
	}
}

func (b *batchWriter) GlobalReader() storage.Reader { return b.reader }

func (b *batchWriter) Writer() storage.Writer { return b }

func (b *batchWriter) Set(key, value []byte) error {
	return b.batch.Set(key, value, nil)
}

func (b *batchWriter) Delete(key []byte) error {
	return b.batch.Delete(key, nil)
}

func (b *batchWriter) Commit() error {
	err := b.batch.Commit(pebble.Sync)
	if err != nil {
		return irrecoverable.NewExceptionf("could not commit pebble batch: %w", err)
	}
	return nil
}

func (b *batchWriter) Discard() {
	if b.closed {
		return
	}
	b.closed = true
	_ = b.batch.Close()
}

// WithReaderBatchWriter runs fn on a new batch and commits it if fn succeeds.
func WithReaderBatchWriter(db *pebble.DB, fn func(storage.ReaderBatchWriter) error) error {
	return operation.WithBatch(newBatchWriter(db), fn)
}
