package operation

import (
	"errors"

	"github.com/onflow/flow-qrinfo/module/irrecoverable"
	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/utils/merr"
)

// KeyExists returns true if a value is stored under the key.
// No errors are expected during normal operation.
func KeyExists(r storage.Reader, key []byte) (bool, error) {
	_, closer, err := r.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, irrecoverable.NewExceptionf("could not check key %x: %w", key, err)
	}
	err = closer.Close()
	if err != nil {
		return true, irrecoverable.NewExceptionf("could not release value of key %x: %w", key, err)
	}
	return true, nil
}

// RetrieveByKey decodes the value stored under the key into entity, which must
// be a pointer.
// Error returns:
//   - [storage.ErrNotFound] if nothing is stored under the key
//   - exception if the database fails or the value cannot be decoded
func RetrieveByKey(r storage.Reader, key []byte, entity interface{}) (errToReturn error) {
	value, closer, err := r.Get(key)
	if err != nil {
		return err
	}
	defer func() {
		errToReturn = merr.CloseAndMergeError(closer, errToReturn)
	}()

	return decodeValue(value, entity)
}
