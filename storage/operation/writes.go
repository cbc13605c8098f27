package operation

import (
	"fmt"

	"github.com/onflow/flow-qrinfo/module/irrecoverable"
	"github.com/onflow/flow-qrinfo/storage"
)

// UpsertByKey will encode the given entity and upsert the resulting
// binary data under the provided key.
// If the key already exists, the value will be overwritten.
// Error returns:
//   - generic error in case of unexpected failure from the database layer or
//     encoding failure.
func UpsertByKey(w storage.Writer, key []byte, val interface{}) error {
	value, err := encodeEntity(val)
	if err != nil {
		return err
	}

	err = w.Set(key, value)
	if err != nil {
		return irrecoverable.NewExceptionf("failed to store data: %w", err)
	}

	return nil
}

// InsertByKey will encode the given entity and insert it under the provided
// key, unless the key already exists in the committed database state.
// Error returns:
//   - [storage.ErrAlreadyExists] if the key already exists in the database.
//   - generic error in case of unexpected failure from the database layer or
//     encoding failure.
func InsertByKey(rw storage.ReaderBatchWriter, key []byte, val interface{}) error {
	exists, err := KeyExists(rw.GlobalReader(), key)
	if err != nil {
		return fmt.Errorf("could not check key %x: %w", key, err)
	}
	if exists {
		return storage.ErrAlreadyExists
	}
	return UpsertByKey(rw.Writer(), key, val)
}

// RemoveByKey removes the entity with the given key, if it exists. If it doesn't
// exist, this is a no-op.
// Error returns:
// * generic error in case of unexpected database error
func RemoveByKey(w storage.Writer, key []byte) error {
	err := w.Delete(key)
	if err != nil {
		return irrecoverable.NewExceptionf("could not delete item: %w", err)
	}
	return nil
}
