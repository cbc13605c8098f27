package rotation_test

import (
	"testing"

	"github.com/jordanschalm/lockctx"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-qrinfo/engine/access/rotation"
	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/model/llmq"
	"github.com/onflow/flow-qrinfo/module/metrics"
	modulemock "github.com/onflow/flow-qrinfo/module/mock"
	"github.com/onflow/flow-qrinfo/state/chain/persistent"
	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/storage/operation/dbtest"
	"github.com/onflow/flow-qrinfo/storage/store"
	"github.com/onflow/flow-qrinfo/utils/unittest"
)

const (
	testQuorumType  = llmq.TypeTestDIP0024
	testCycleLength = uint64(24)
)

// chainFixture is a persisted regtest chain with quorum snapshots stored at
// every cycle boundary of the active chain.
type chainFixture struct {
	lockManager lockctx.Manager
	state       *persistent.State
	snapshots   *store.QuorumSnapshots
	diffs       *modulemock.MNListDiffBuilder
	genesis     *flow.Header
	// blocks holds the active chain, indexed by height
	blocks []*flow.Header
	stored map[flow.Identifier]*llmq.Snapshot
}

// runWithChain builds an active chain up to the given tip height and runs f.
func runWithChain(t *testing.T, tipHeight int, f func(t *testing.T, fix *chainFixture)) {
	dbtest.RunWithDB(t, func(t *testing.T, db storage.DB) {
		collector := metrics.NewNoopCollector()
		headers := store.NewHeaders(collector, db, flow.Regtest)
		fix := &chainFixture{
			lockManager: storage.NewTestingLockManager(),
			state:       persistent.NewState(unittest.Logger(), db, headers),
			snapshots:   store.NewQuorumSnapshots(collector, db),
			diffs:       modulemock.NewMNListDiffBuilder(t),
			genesis:     unittest.GenesisFixture(),
			stored:      make(map[flow.Identifier]*llmq.Snapshot),
		}
		fix.blocks = append([]*flow.Header{fix.genesis}, unittest.HeaderChainFixture(fix.genesis, tipHeight)...)

		fix.withChainLock(t, func(lctx lockctx.Context) {
			require.NoError(t, fix.state.Bootstrap(lctx, fix.genesis))
			for _, block := range fix.blocks[1:] {
				require.NoError(t, fix.state.Extend(lctx, block))
			}
			for height := uint64(0); height < uint64(len(fix.blocks)); height += testCycleLength {
				fix.storeSnapshot(t, lctx, fix.blocks[height])
			}
		})

		fix.diffs.On("BuildDiff", mock.Anything, mock.Anything).Return(
			func(baseBlockID, blockID flow.Identifier) (*llmq.MNListDiff, error) {
				return unittest.MNListDiffFixture(baseBlockID, blockID), nil
			}).Maybe()

		f(t, fix)
	})
}

func (fix *chainFixture) withChainLock(t *testing.T, f func(lctx lockctx.Context)) {
	require.NoError(t, unittest.WithLock(t, fix.lockManager, storage.LockChainState, func(lctx lockctx.Context) error {
		f(lctx)
		return nil
	}))
}

func (fix *chainFixture) storeSnapshot(t *testing.T, lctx lockctx.Proof, block *flow.Header) {
	snapshot := unittest.SnapshotFixture(int(block.Height%7) + 3)
	require.NoError(t, fix.snapshots.Store(lctx, testQuorumType, block.ID(), snapshot))
	fix.stored[block.ID()] = snapshot
}

func (fix *chainFixture) builder(t *testing.T) *rotation.Builder {
	params := modulemock.NewCycleParameters(t)
	params.On("CycleLength", testQuorumType).Return(testCycleLength, nil).Once()

	builder, err := rotation.NewBuilder(unittest.Logger(), fix.state, fix.snapshots, fix.diffs, params, testQuorumType)
	require.NoError(t, err)
	return builder
}

func (fix *chainFixture) build(t *testing.T, req *llmq.GetRotationInfo) (*llmq.RotationInfo, error) {
	builder := fix.builder(t)
	var (
		info *llmq.RotationInfo
		err  error
	)
	fix.withChainLock(t, func(lctx lockctx.Context) {
		info, err = builder.Build(lctx, req)
	})
	return info, err
}

func request(target *flow.Header, baseBlocks ...*flow.Header) *llmq.GetRotationInfo {
	hashes := make([]flow.Identifier, 0, len(baseBlocks))
	for _, base := range baseBlocks {
		hashes = append(hashes, base.ID())
	}
	return &llmq.GetRotationInfo{
		BaseBlockHashesNb: uint32(len(hashes)),
		BaseBlockHashes:   hashes,
		BlockRequestHash:  target.ID(),
	}
}
