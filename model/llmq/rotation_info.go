package llmq

import (
	"github.com/onflow/flow-qrinfo/model/flow"
)

// MaxBaseBlocks is the maximum number of base blocks a client may supply in a
// rotation info request.
const MaxBaseBlocks = 4

// MNListDiff is an incremental masternode list diff between two blocks. Its
// payload is produced and interpreted by the diff builder.
type MNListDiff struct {
	BaseBlockID flow.Identifier `json:"baseBlockHash"`
	BlockID     flow.Identifier `json:"blockHash"`
	Payload     []byte          `json:"payload"`
}

// GetRotationInfo is a client request for the rotation info of the quorum
// cycle containing BlockRequestHash.
type GetRotationInfo struct {
	BaseBlockHashesNb uint32 `json:"baseBlockHashesNb"`
	// BaseBlockHashes are blocks the client already has masternode list state for.
	BaseBlockHashes  []flow.Identifier `json:"baseBlockHashes"`
	BlockRequestHash flow.Identifier   `json:"blockRequestHash"`
}

// RotationInfo is the answer to a GetRotationInfo request.
type RotationInfo struct {
	// CreationHeight is the height of the first block of the requested cycle.
	CreationHeight uint64 `json:"creationHeight"`

	QuorumSnapshotAtHMinusC  Snapshot `json:"quorumSnapshotAtHMinusC"`
	QuorumSnapshotAtHMinus2C Snapshot `json:"quorumSnapshotAtHMinus2C"`
	QuorumSnapshotAtHMinus3C Snapshot `json:"quorumSnapshotAtHMinus3C"`

	MnListDiffTip        MNListDiff `json:"mnListDiffTip"`
	MnListDiffAtHMinusC  MNListDiff `json:"mnListDiffAtHMinusC"`
	MnListDiffAtHMinus2C MNListDiff `json:"mnListDiffAtHMinus2C"`
	MnListDiffAtHMinus3C MNListDiff `json:"mnListDiffAtHMinus3C"`
}
