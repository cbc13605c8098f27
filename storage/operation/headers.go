package operation

import (
	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/storage"
)

// InsertHeader stores the header under its ID.
// Error returns:
//   - [storage.ErrAlreadyExists] if a header with the given ID is already stored
func InsertHeader(rw storage.ReaderBatchWriter, headerID flow.Identifier, header *flow.Header) error {
	return InsertByKey(rw, MakePrefix(codeHeader, headerID), header)
}

func RetrieveHeader(r storage.Reader, blockID flow.Identifier, header *flow.Header) error {
	return RetrieveByKey(r, MakePrefix(codeHeader, blockID), header)
}

// BlockExists checks whether the block exists in the database.
// No errors are expected during normal operation.
func BlockExists(r storage.Reader, blockID flow.Identifier) (bool, error) {
	return KeyExists(r, MakePrefix(codeHeader, blockID))
}

// IndexBlockHeight indexes the block as the active chain's block at the given
// height, replacing any previous entry (reorgs re-index heights).
func IndexBlockHeight(w storage.Writer, height uint64, blockID flow.Identifier) error {
	return UpsertByKey(w, MakePrefix(codeHeightToBlock, height), blockID)
}

// RemoveBlockHeight removes the active chain's entry at the given height.
func RemoveBlockHeight(w storage.Writer, height uint64) error {
	return RemoveByKey(w, MakePrefix(codeHeightToBlock, height))
}

// LookupBlockHeight retrieves the ID of the active chain's block at the given height.
// Error returns:
//   - [storage.ErrNotFound] if the active chain has no block at this height
func LookupBlockHeight(r storage.Reader, height uint64, blockID *flow.Identifier) error {
	return RetrieveByKey(r, MakePrefix(codeHeightToBlock, height), blockID)
}
