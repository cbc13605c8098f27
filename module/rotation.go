package module

import (
	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/model/llmq"
)

// MNListDiffBuilder computes incremental masternode list diffs between two
// blocks. The diff from flow.ZeroID is the full list at the target block.
type MNListDiffBuilder interface {
	// BuildDiff returns the diff transforming the masternode list at
	// baseBlockID into the list at blockID.
	BuildDiff(baseBlockID flow.Identifier, blockID flow.Identifier) (*llmq.MNListDiff, error)
}

// CycleParameters provides the DKG cycle length of quorum types.
type CycleParameters interface {
	// CycleLength returns the number of blocks between two DKG sessions of the
	// given quorum type. It is always positive when no error is returned.
	CycleLength(quorumType llmq.QuorumType) (uint64, error)
}
