package rotation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jordanschalm/lockctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-qrinfo/engine/access/rotation"
	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/model/llmq"
	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/utils/unittest"
)

// With a cycle length of 24 and a target at height 100, the cycle starts at
// 96 and the previous cycles at 72, 48 and 24.
func TestBuild_Scenario(t *testing.T) {
	runWithChain(t, 100, func(t *testing.T, fix *chainFixture) {
		tip := fix.blocks[100]
		info, err := fix.build(t, request(tip))
		require.NoError(t, err)

		assert.Equal(t, uint64(96), info.CreationHeight)
		assert.Zero(t, info.CreationHeight%testCycleLength)

		// without base blocks, every diff is anchored at genesis
		genesisID := fix.genesis.ID()
		assert.Equal(t, *unittest.MNListDiffFixture(genesisID, tip.ID()), info.MnListDiffTip)
		assert.Equal(t, *unittest.MNListDiffFixture(genesisID, fix.blocks[72].ID()), info.MnListDiffAtHMinusC)
		assert.Equal(t, *unittest.MNListDiffFixture(genesisID, fix.blocks[48].ID()), info.MnListDiffAtHMinus2C)
		assert.Equal(t, *unittest.MNListDiffFixture(genesisID, fix.blocks[24].ID()), info.MnListDiffAtHMinus3C)

		assert.Equal(t, *fix.stored[fix.blocks[72].ID()], info.QuorumSnapshotAtHMinusC)
		assert.Equal(t, *fix.stored[fix.blocks[48].ID()], info.QuorumSnapshotAtHMinus2C)
		assert.Equal(t, *fix.stored[fix.blocks[24].ID()], info.QuorumSnapshotAtHMinus3C)
	})
}

// Repeated requests on an unchanged chain produce identical responses, whether
// the snapshots come from the database or the cache.
func TestBuild_Deterministic(t *testing.T) {
	runWithChain(t, 100, func(t *testing.T, fix *chainFixture) {
		req := request(fix.blocks[90], fix.blocks[10], fix.blocks[60])

		first, err := fix.build(t, req)
		require.NoError(t, err)
		second, err := fix.build(t, req)
		require.NoError(t, err)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("responses differ (-first +second):\n%s", diff)
		}
	})
}

// Every target within a cycle resolves to the same cycle blocks.
func TestBuild_TargetWithinCycle(t *testing.T) {
	runWithChain(t, 100, func(t *testing.T, fix *chainFixture) {
		for _, height := range []int{96, 97, 100} {
			info, err := fix.build(t, request(fix.blocks[height]))
			require.NoError(t, err)
			assert.Equal(t, uint64(96), info.CreationHeight, "target height %d", height)
			assert.Equal(t, fix.blocks[72].ID(), info.MnListDiffAtHMinusC.BlockID)
		}

		info, err := fix.build(t, request(fix.blocks[95]))
		require.NoError(t, err)
		assert.Equal(t, uint64(72), info.CreationHeight)
		assert.Equal(t, fix.blocks[0].ID(), info.MnListDiffAtHMinus3C.BlockID)
	})
}

func TestBuild_Anchors(t *testing.T) {
	runWithChain(t, 100, func(t *testing.T, fix *chainFixture) {
		tip := fix.blocks[100]

		t.Run("highest base block at or below each height", func(t *testing.T) {
			// supplied out of order; they are sorted by height
			info, err := fix.build(t, request(tip, fix.blocks[50], fix.blocks[10], fix.blocks[24]))
			require.NoError(t, err)

			assert.Equal(t, fix.blocks[50].ID(), info.MnListDiffTip.BaseBlockID)
			assert.Equal(t, fix.blocks[50].ID(), info.MnListDiffAtHMinusC.BaseBlockID)
			assert.Equal(t, fix.blocks[24].ID(), info.MnListDiffAtHMinus2C.BaseBlockID)
			// a base block at exactly the height qualifies
			assert.Equal(t, fix.blocks[24].ID(), info.MnListDiffAtHMinus3C.BaseBlockID)
		})

		t.Run("no base block below the height", func(t *testing.T) {
			info, err := fix.build(t, request(tip, fix.blocks[30]))
			require.NoError(t, err)

			assert.Equal(t, fix.blocks[30].ID(), info.MnListDiffTip.BaseBlockID)
			assert.Equal(t, fix.blocks[30].ID(), info.MnListDiffAtHMinusC.BaseBlockID)
			assert.Equal(t, fix.blocks[30].ID(), info.MnListDiffAtHMinus2C.BaseBlockID)
			assert.Equal(t, flow.ZeroID, info.MnListDiffAtHMinus3C.BaseBlockID)
		})

		t.Run("maximum number of base blocks", func(t *testing.T) {
			info, err := fix.build(t, request(tip, fix.blocks[1], fix.blocks[2], fix.blocks[3], fix.blocks[99]))
			require.NoError(t, err)
			assert.Equal(t, fix.blocks[99].ID(), info.MnListDiffTip.BaseBlockID)
			assert.Equal(t, fix.blocks[3].ID(), info.MnListDiffAtHMinus3C.BaseBlockID)
		})
	})
}

// Ancestor resolution fails exactly when a cycle-aligned height would lie before genesis.
func TestBuild_GenesisBoundary(t *testing.T) {
	runWithChain(t, 100, func(t *testing.T, fix *chainFixture) {
		cases := []struct {
			targetHeight int
			position     rotation.Position
		}{
			{targetHeight: 23, position: rotation.PositionHMinusC},
			{targetHeight: 47, position: rotation.PositionHMinus2C},
			{targetHeight: 71, position: rotation.PositionHMinus3C},
		}
		for _, c := range cases {
			_, err := fix.build(t, request(fix.blocks[c.targetHeight]))
			require.True(t, rotation.IsAncestorNotFoundError(err), "target height %d: %v", c.targetHeight, err)

			var ancestorErr rotation.AncestorNotFoundError
			require.ErrorAs(t, err, &ancestorErr)
			assert.Equal(t, c.position, ancestorErr.Position, "target height %d", c.targetHeight)
		}

		// the first target for which all three previous cycles exist
		info, err := fix.build(t, request(fix.blocks[72]))
		require.NoError(t, err)
		assert.Equal(t, uint64(72), info.CreationHeight)
		assert.Equal(t, fix.genesis.ID(), info.MnListDiffAtHMinus3C.BlockID)
	})
}

// Below 24 blocks, even a target at the tip has no previous cycle.
func TestBuild_ShortChain(t *testing.T) {
	runWithChain(t, 20, func(t *testing.T, fix *chainFixture) {
		_, err := fix.build(t, request(fix.blocks[20]))
		var ancestorErr rotation.AncestorNotFoundError
		require.ErrorAs(t, err, &ancestorErr)
		assert.Equal(t, rotation.PositionHMinusC, ancestorErr.Position)
	})
}

func TestBuild_SnapshotNotFound(t *testing.T) {
	runWithChain(t, 100, func(t *testing.T, fix *chainFixture) {
		// extend the chain past the next boundary without storing its snapshot
		extension := unittest.HeaderChainFixture(fix.blocks[100], 50)
		fix.withChainLock(t, func(lctx lockctx.Context) {
			for _, block := range extension {
				require.NoError(t, fix.state.Extend(lctx, block))
			}
		})

		// target in the cycle starting at 144 needs the snapshot at 120, which is missing
		target := extension[len(extension)-1]
		_, err := fix.build(t, request(target))
		var snapshotErr rotation.SnapshotNotFoundError
		require.ErrorAs(t, err, &snapshotErr)
		assert.Equal(t, rotation.PositionHMinusC, snapshotErr.Position)
		assert.Equal(t, uint64(120), snapshotErr.Height)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.Equal(t, extension[19].ID(), snapshotErr.BlockID)

		// storing it unblocks the request
		fix.withChainLock(t, func(lctx lockctx.Context) {
			fix.storeSnapshot(t, lctx, extension[19])
		})
		info, err := fix.build(t, request(target))
		require.NoError(t, err)
		assert.Equal(t, uint64(144), info.CreationHeight)
		assert.Equal(t, *fix.stored[extension[19].ID()], info.QuorumSnapshotAtHMinusC)
	})
}

func TestBuild_RequestErrors(t *testing.T) {
	runWithChain(t, 100, func(t *testing.T, fix *chainFixture) {
		tip := fix.blocks[100]

		t.Run("too many base blocks", func(t *testing.T) {
			req := request(tip, fix.blocks[1], fix.blocks[2], fix.blocks[3], fix.blocks[4], fix.blocks[5])
			_, err := fix.build(t, req)
			require.ErrorIs(t, err, rotation.ErrInvalidRequest)
		})

		t.Run("count does not match hashes", func(t *testing.T) {
			req := request(tip, fix.blocks[1], fix.blocks[2], fix.blocks[3])
			req.BaseBlockHashesNb = 2
			_, err := fix.build(t, req)
			require.ErrorIs(t, err, rotation.ErrRequestMismatch)
		})

		t.Run("unknown base block", func(t *testing.T) {
			req := request(tip, fix.blocks[1])
			req.BaseBlockHashes = append(req.BaseBlockHashes, unittest.IdentifierFixture())
			req.BaseBlockHashesNb = 2
			_, err := fix.build(t, req)
			require.ErrorIs(t, err, rotation.ErrBlockNotFound)
		})

		t.Run("unknown target", func(t *testing.T) {
			req := request(tip)
			req.BlockRequestHash = unittest.IdentifierFixture()
			_, err := fix.build(t, req)
			require.ErrorIs(t, err, rotation.ErrBlockNotFound)
		})

		t.Run("base block off the active chain", func(t *testing.T) {
			fork := unittest.ForkFixture(fix.blocks[90], 2)
			fix.withChainLock(t, func(lctx lockctx.Context) {
				for _, block := range fork {
					require.NoError(t, fix.state.Extend(lctx, block))
				}
			})
			_, err := fix.build(t, request(tip, fork[1]))
			require.ErrorIs(t, err, rotation.ErrBlockNotInActiveChain)
		})
	})
}

// H follows the target's fork, H-C follows the tip's ancestry and H-2C, H-3C
// follow the ancestry of H-C.
func TestBuild_ForkedTarget(t *testing.T) {
	runWithChain(t, 100, func(t *testing.T, fix *chainFixture) {
		// side fork from height 60 up to height 100
		fork := unittest.ForkFixture(fix.blocks[60], 40)
		fix.withChainLock(t, func(lctx lockctx.Context) {
			for _, block := range fork {
				require.NoError(t, fix.state.Extend(lctx, block))
			}
		})
		forkAt := func(height int) *flow.Header {
			return fork[height-61]
		}

		tip := fix.blocks[100]
		target := forkAt(100)
		cycle, err := rotation.ResolveCycleBlocks(fix.state, tip, target, testCycleLength)
		require.NoError(t, err)
		assert.Equal(t, forkAt(96), cycle.H)
		assert.Equal(t, fix.blocks[72], cycle.HMinusC)
		assert.Equal(t, fix.blocks[48], cycle.HMinus2C)
		assert.Equal(t, fix.blocks[24], cycle.HMinus3C)

		info, err := fix.build(t, request(target))
		require.NoError(t, err)
		assert.Equal(t, uint64(96), info.CreationHeight)
		assert.Equal(t, fix.blocks[72].ID(), info.MnListDiffAtHMinusC.BlockID)

		// after a reorg onto the fork, H-C follows the fork
		fix.withChainLock(t, func(lctx lockctx.Context) {
			require.NoError(t, fix.state.SetTip(lctx, target.ID()))
		})
		cycle, err = rotation.ResolveCycleBlocks(fix.state, target, target, testCycleLength)
		require.NoError(t, err)
		assert.Equal(t, forkAt(72), cycle.HMinusC)
		assert.Equal(t, fix.blocks[48], cycle.HMinus2C)

		// no snapshot was stored for the fork's boundary block
		_, err = fix.build(t, request(target))
		var snapshotErr rotation.SnapshotNotFoundError
		require.ErrorAs(t, err, &snapshotErr)
		assert.Equal(t, rotation.PositionHMinusC, snapshotErr.Position)
		assert.Equal(t, forkAt(72).ID(), snapshotErr.BlockID)
	})
}

func TestBuild_RequiresChainLock(t *testing.T) {
	runWithChain(t, 30, func(t *testing.T, fix *chainFixture) {
		builder := fix.builder(t)
		lctx := fix.lockManager.NewContext()
		defer lctx.Release()

		_, err := builder.Build(lctx, request(fix.blocks[30]))
		require.Error(t, err)
		require.NotErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestBuild_QuorumTypeIsFixed(t *testing.T) {
	runWithChain(t, 100, func(t *testing.T, fix *chainFixture) {
		builder := fix.builder(t)
		assert.Equal(t, testQuorumType, builder.QuorumType())
		assert.Equal(t, testCycleLength, builder.CycleLength())

		// snapshots of other quorum types are not served
		fix.withChainLock(t, func(lctx lockctx.Context) {
			other := unittest.SnapshotFixture(5)
			require.NoError(t, fix.snapshots.Store(lctx, llmq.TypeTest, fix.blocks[72].ID(), other))

			info, err := builder.Build(lctx, request(fix.blocks[100]))
			require.NoError(t, err)
			assert.Equal(t, *fix.stored[fix.blocks[72].ID()], info.QuorumSnapshotAtHMinusC)
		})
	})
}
