package storage

import (
	"io"
)

// Reader is an interface for reading from a storage backend.
type Reader interface {
	// Get gets the value for the given key. It returns ErrNotFound if the DB
	// does not contain the key.
	// other errors are exceptions
	//
	// The caller should not modify the contents of the returned slice, but it is
	// safe to modify the contents of the argument after Get returns. The
	// returned slice will remain valid until the returned Closer is closed.
	// When err == nil, the caller MUST call closer.Close() or a memory leak will occur.
	Get(key []byte) (value []byte, closer io.Closer, err error)
}

// Writer is an interface for batch writing to a storage backend.
// One Writer instance cannot be used concurrently by multiple goroutines.
type Writer interface {
	// Set sets the value for the given key. It overwrites any previous value
	// for that key; a DB is not a multi-map.
	//
	// It is safe to modify the contents of the arguments after Set returns.
	// No errors expected during normal operation
	Set(k, v []byte) error

	// Delete deletes the value for the given key. Deletes are blind and will
	// succeed even if the given key does not exist.
	//
	// It is safe to modify the contents of the arguments after Delete returns.
	// No errors expected during normal operation
	Delete(key []byte) error
}

// ReaderBatchWriter is an interface for reading and writing to a storage backend.
// It is useful for performing a related sequence of reads and writes, after which you would like
// to modify some non-database state if the sequence completed successfully (via AddCallback).
// If you are not using AddCallback, avoid using ReaderBatchWriter: use Reader and Writer directly.
type ReaderBatchWriter interface {
	// GlobalReader returns a database-backed reader which reads the latest committed global database state ("read-committed isolation").
	// This reader will not read writes written to ReaderBatchWriter.Writer until the write batch is committed.
	GlobalReader() Reader

	// Writer returns a writer associated with a batch of writes. The batch is pending until it is committed.
	// When we `Write` into the batch, that write operation is added to the pending batch, but not committed.
	// The commit operation is atomic w.r.t. the batch; either all writes are applied to the database, or no writes are.
	Writer() Writer

	// AddCallback adds a callback to execute after the batch has been flush
	// regardless the batch update is succeeded or failed.
	// The error parameter is the error returned by the batch update.
	AddCallback(func(error))
}

// DB is an interface for a database store that provides a reader and a writer.
type DB interface {
	// Reader returns a database-backed reader which reads the latest
	// committed global database state
	Reader() Reader

	// WithReaderBatchWriter creates a batch writer and allows the caller to perform
	// atomic batch updates to the database.
	// Any error returned are considered fatal and the batch is not committed.
	WithReaderBatchWriter(func(ReaderBatchWriter) error) error

	io.Closer
}

// OnlyWriter is an adapter to convert a function that takes a Writer
// to a function that takes a ReaderBatchWriter.
func OnlyWriter(fn func(Writer) error) func(ReaderBatchWriter) error {
	return func(rw ReaderBatchWriter) error {
		return fn(rw.Writer())
	}
}
