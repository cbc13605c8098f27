package storage

import (
	"github.com/jordanschalm/lockctx"

	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/model/llmq"
)

// QuorumSnapshots stores the quorum membership snapshots taken at cycle
// boundary blocks. All operations are safe for concurrent use and require the
// caller to hold LockChainState.
type QuorumSnapshots interface {
	// Store persists the snapshot of the given quorum type at the given block
	// and caches it. An existing entry for the same key is overwritten.
	// No errors are expected during normal operation.
	Store(lctx lockctx.Proof, quorumType llmq.QuorumType, blockID flow.Identifier, snapshot *llmq.Snapshot) error

	// ByBlockID returns the snapshot of the given quorum type at the given block.
	// The returned snapshot is a copy owned by the caller.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if no snapshot was stored for the key
	ByBlockID(lctx lockctx.Proof, quorumType llmq.QuorumType, blockID flow.Identifier) (*llmq.Snapshot, error)
}
