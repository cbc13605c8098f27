package chain

import (
	"github.com/onflow/flow-qrinfo/model/flow"
)

// View is a read-only view of the block tree and its active chain.
//
// A View does not synchronize a sequence of calls: callers that need
// several lookups to observe one consistent chain must hold
// storage.LockChainState across them.
//
// Not-found conditions are reported as errors wrapping storage.ErrNotFound.
type View interface {
	// Genesis returns the genesis header.
	Genesis() (*flow.Header, error)

	// Tip returns the header of the active chain's tip.
	Tip() (*flow.Header, error)

	// ByBlockID returns the header of any known block, on the active chain or not.
	ByBlockID(blockID flow.Identifier) (*flow.Header, error)

	// Contains returns true if the block is part of the active chain.
	// No errors are expected during normal operation.
	Contains(header *flow.Header) (bool, error)

	// AncestorAtHeight returns the ancestor of the given block at the given
	// height. A block is its own ancestor at its own height.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if height is above the block's height
	AncestorAtHeight(header *flow.Header, height uint64) (*flow.Header, error)
}
