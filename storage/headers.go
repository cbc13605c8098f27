package storage

import (
	"github.com/jordanschalm/lockctx"

	"github.com/onflow/flow-qrinfo/model/flow"
)

// Headers represents persistent storage for block headers and the height
// index of the active chain.
type Headers interface {
	// BatchStore stores the header in the given batch. It requires the caller
	// to hold LockChainState until the batch is committed.
	// Expected errors during normal operations:
	//   - storage.ErrAlreadyExists if a header with the same ID is already stored
	BatchStore(lctx lockctx.Proof, rw ReaderBatchWriter, header *flow.Header) error

	// BatchIndexHeight indexes the block as the active chain's block at the given
	// height, replacing any previous entry. It requires the caller to hold
	// LockChainState until the batch is committed.
	// No errors are expected during normal operation.
	BatchIndexHeight(lctx lockctx.Proof, rw ReaderBatchWriter, height uint64, blockID flow.Identifier) error

	// BatchRemoveHeight removes the active chain's entry at the given height.
	// It requires the caller to hold LockChainState until the batch is committed.
	// No errors are expected during normal operation.
	BatchRemoveHeight(lctx lockctx.Proof, rw ReaderBatchWriter, height uint64) error

	// ByBlockID returns the header with the given ID. It is available for blocks
	// on the active chain and on side forks.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if no block is known with the given ID
	ByBlockID(blockID flow.Identifier) (*flow.Header, error)

	// BlockIDByHeight returns the ID of the block on the active chain at the given height.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if the active chain has no block at the given height
	BlockIDByHeight(height uint64) (flow.Identifier, error)

	// Exists returns true if a header with the given ID has been stored.
	// No errors are expected during normal operation.
	Exists(blockID flow.Identifier) (bool, error)
}
