package bops

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flow-qrinfo/module/irrecoverable"
	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/storage/operation"
)

// batchWriter buffers writes in a badger WriteBatch. A WriteBatch must be
// either flushed or cancelled exactly once.
type batchWriter struct {
	operation.Callbacks
	reader dbReader
	batch  *badger.WriteBatch
	done   bool
}

var _ operation.Batch = (*batchWriter)(nil)

func newBatchWriter(db *badger.DB) *batchWriter {
	return &batchWriter{
		reader: dbReader{db: db},
		batch:  db.NewWriteBatch(),
	}
}

func (b *batchWriter) GlobalReader() storage.Reader { return b.reader }

func (b *batchWriter) Writer() storage.Writer { return b }

// Set copies its arguments, badger keeps references to them until the flush.
func (b *batchWriter) Set(key, value []byte) error {
	return b.batch.Set(append([]byte(nil), key...), append([]byte(nil), value...))
}

func (b *batchWriter) Delete(key []byte) error {
	return b.batch.Delete(append([]byte(nil), key...))
}

func (b *batchWriter) Commit() error {
	b.done = true
	err := b.batch.Flush()
	if err != nil {
		return irrecoverable.NewExceptionf("could not flush badger batch: %w", err)
	}
	return nil
}

func (b *batchWriter) Discard() {
	if b.done {
		return
	}
	b.done = true
	b.batch.Cancel()
}

// WithReaderBatchWriter runs fn on a new batch and commits it if fn succeeds.
func WithReaderBatchWriter(db *badger.DB, fn func(storage.ReaderBatchWriter) error) error {
	return operation.WithBatch(newBatchWriter(db), fn)
}
