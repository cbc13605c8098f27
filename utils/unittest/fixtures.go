package unittest

import (
	"crypto/rand"
	"slices"

	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/model/llmq"
)

func IdentifierFixture() flow.Identifier {
	var id flow.Identifier
	_, _ = rand.Read(id[:])
	return id
}

func IdentifierListFixture(n int) []flow.Identifier {
	list := make([]flow.Identifier, n)
	for i := 0; i < n; i++ {
		list[i] = IdentifierFixture()
	}
	return list
}

// GenesisFixture returns the regtest genesis header.
func GenesisFixture() *flow.Header {
	return flow.Genesis(flow.Regtest)
}

func HeaderWithParentFixture(parent *flow.Header) *flow.Header {
	return &flow.Header{
		ChainID:   parent.ChainID,
		ParentID:  parent.ID(),
		Height:    parent.Height + 1,
		Timestamp: parent.Timestamp + 150_000,
	}
}

// HeaderChainFixture returns a chain of n headers extending the given parent,
// in ascending height order.
func HeaderChainFixture(parent *flow.Header, n int) []*flow.Header {
	headers := make([]*flow.Header, 0, n)
	for i := 0; i < n; i++ {
		parent = HeaderWithParentFixture(parent)
		headers = append(headers, parent)
	}
	return headers
}

// ForkFixture returns a chain of n headers extending the given parent, whose
// blocks differ from any chain built by HeaderChainFixture on the same parent.
func ForkFixture(parent *flow.Header, n int) []*flow.Header {
	headers := make([]*flow.Header, 0, n)
	for i := 0; i < n; i++ {
		header := HeaderWithParentFixture(parent)
		header.Timestamp++
		parent = header
		headers = append(headers, parent)
	}
	return headers
}

// SnapshotFixture returns a valid snapshot over the given number of candidates,
// with every other candidate active and the first candidate skipped.
func SnapshotFixture(candidates int) *llmq.Snapshot {
	active := make([]bool, candidates)
	for i := range active {
		active[i] = i%2 == 0
	}
	return &llmq.Snapshot{
		ActiveQuorumMembers: active,
		MnSkipListMode:      llmq.SkipEntries,
		MnSkipList:          []int32{0},
	}
}

func MNListDiffFixture(baseBlockID, blockID flow.Identifier) *llmq.MNListDiff {
	return &llmq.MNListDiff{
		BaseBlockID: baseBlockID,
		BlockID:     blockID,
		Payload:     slices.Concat(baseBlockID[:], blockID[:]),
	}
}
