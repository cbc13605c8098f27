package operation

import (
	"sync"

	"github.com/onflow/flow-qrinfo/storage"
)

// Callbacks collects the functions to notify once a write batch was committed
// or abandoned. Embedding it provides AddCallback of storage.ReaderBatchWriter.
type Callbacks struct {
	mu        sync.Mutex
	callbacks []func(error)
	notified  bool
}

func (c *Callbacks) AddCallback(callback func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callbacks = append(c.callbacks, callback)
}

// NotifyCallbacks calls every registered callback, in registration order,
// with the outcome of the batch. Only the first call has an effect.
func (c *Callbacks) NotifyCallbacks(err error) {
	c.mu.Lock()
	if c.notified {
		c.mu.Unlock()
		return
	}
	c.notified = true
	callbacks := c.callbacks
	c.callbacks = nil
	c.mu.Unlock()

	for _, callback := range callbacks {
		callback(err)
	}
}

// Batch is a pending set of writes of one database engine.
type Batch interface {
	storage.ReaderBatchWriter
	// Commit atomically applies the pending writes.
	Commit() error
	// Discard releases the batch. It is a no-op after Commit.
	Discard()
	NotifyCallbacks(err error)
}

// WithBatch runs fn on the batch and commits the writes if fn succeeds. The
// batch callbacks are notified exactly once with the outcome, also when fn
// fails, so that anything they release (such as cache reservations) is freed.
func WithBatch(batch Batch, fn func(storage.ReaderBatchWriter) error) error {
	defer batch.Discard()

	err := fn(batch)
	if err == nil {
		err = batch.Commit()
	}
	batch.NotifyCallbacks(err)
	return err
}
