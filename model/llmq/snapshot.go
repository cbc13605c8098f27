package llmq

import (
	"fmt"
	"slices"

	"golang.org/x/crypto/sha3"

	"github.com/onflow/flow-qrinfo/model/flow"
)

// SkipListMode describes how the skip list of a Snapshot is interpreted.
type SkipListMode int32

const (
	// NoSkipping means the skip list is empty and every candidate was eligible.
	NoSkipping SkipListMode = 0
	// SkipEntries means the skip list holds the candidates that were skipped.
	SkipEntries SkipListMode = 1
	// NoSkippingEntries means the skip list holds the candidates that were not skipped.
	NoSkippingEntries SkipListMode = 2
	// AllSkipped means every candidate was skipped.
	AllSkipped SkipListMode = 3
)

func (m SkipListMode) Valid() bool {
	return m >= NoSkipping && m <= AllSkipped
}

func (m SkipListMode) String() string {
	switch m {
	case NoSkipping:
		return "no_skipping"
	case SkipEntries:
		return "skip_entries"
	case NoSkippingEntries:
		return "no_skipping_entries"
	case AllSkipped:
		return "all_skipped"
	default:
		return fmt.Sprintf("unknown_%d", int32(m))
	}
}

// Snapshot is the membership state of one quorum type's candidate list at a
// cycle boundary block. Snapshots are write-once: they are never modified
// after being stored.
type Snapshot struct {
	// ActiveQuorumMembers holds one flag per candidate, in candidate list order.
	ActiveQuorumMembers []bool       `json:"activeQuorumMembers"`
	MnSkipListMode      SkipListMode `json:"mnSkipListMode"`
	// MnSkipList holds indices into the candidate list.
	MnSkipList []int32 `json:"mnSkipList"`
}

// Validate checks the snapshot against the size of the candidate list at the
// snapshot's block.
func (s *Snapshot) Validate(candidates uint) error {
	if !s.MnSkipListMode.Valid() {
		return fmt.Errorf("invalid skip list mode %d", s.MnSkipListMode)
	}
	if uint(len(s.ActiveQuorumMembers)) != candidates {
		return fmt.Errorf("expected %d active member flags, got %d", candidates, len(s.ActiveQuorumMembers))
	}
	for i, index := range s.MnSkipList {
		if index < 0 || uint(index) >= candidates {
			return fmt.Errorf("skip list entry %d out of range: %d not in [0, %d)", i, index, candidates)
		}
	}
	if s.MnSkipListMode == NoSkipping && len(s.MnSkipList) > 0 {
		return fmt.Errorf("skip list must be empty in mode %v", s.MnSkipListMode)
	}
	return nil
}

// Copy returns a deep copy of the snapshot.
func (s *Snapshot) Copy() *Snapshot {
	return &Snapshot{
		ActiveQuorumMembers: slices.Clone(s.ActiveQuorumMembers),
		MnSkipListMode:      s.MnSkipListMode,
		MnSkipList:          slices.Clone(s.MnSkipList),
	}
}

// SnapshotKey returns the key under which the snapshot of the given quorum
// type at the given block is cached and persisted.
func SnapshotKey(quorumType QuorumType, blockID flow.Identifier) flow.Identifier {
	hasher := sha3.New256()
	_, _ = hasher.Write([]byte{byte(quorumType)})
	_, _ = hasher.Write(blockID[:])
	return flow.HashToID(hasher.Sum(nil))
}
