package rotation

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/jordanschalm/lockctx"
	"github.com/rs/zerolog"

	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/model/llmq"
	"github.com/onflow/flow-qrinfo/module"
	"github.com/onflow/flow-qrinfo/state/chain"
	"github.com/onflow/flow-qrinfo/storage"
)

// Builder assembles rotation info responses for one quorum type: the type used
// for instant-send quorums. It holds no mutable state and can serve concurrent
// requests.
type Builder struct {
	log         zerolog.Logger
	view        chain.View
	snapshots   storage.QuorumSnapshots
	diffs       module.MNListDiffBuilder
	quorumType  llmq.QuorumType
	cycleLength uint64
}

// NewBuilder returns a builder for the given quorum type. The cycle length of
// the quorum type is resolved once, here.
func NewBuilder(
	log zerolog.Logger,
	view chain.View,
	snapshots storage.QuorumSnapshots,
	diffs module.MNListDiffBuilder,
	params module.CycleParameters,
	quorumType llmq.QuorumType,
) (*Builder, error) {
	cycleLength, err := params.CycleLength(quorumType)
	if err != nil {
		return nil, fmt.Errorf("could not get cycle length of quorum type %v: %w", quorumType, err)
	}
	if cycleLength == 0 {
		return nil, fmt.Errorf("quorum type %v has no DKG cycle", quorumType)
	}

	return &Builder{
		log: log.With().
			Str("component", "rotation_info_builder").
			Str("quorum_type", quorumType.String()).
			Logger(),
		view:        view,
		snapshots:   snapshots,
		diffs:       diffs,
		quorumType:  quorumType,
		cycleLength: cycleLength,
	}, nil
}

// QuorumType returns the quorum type the builder serves.
func (b *Builder) QuorumType() llmq.QuorumType {
	return b.quorumType
}

// CycleLength returns the DKG cycle length of the builder's quorum type.
func (b *Builder) CycleLength() uint64 {
	return b.cycleLength
}

// Build assembles the rotation info of the quorum cycle containing the
// requested block. The caller must hold storage.LockChainState for the whole
// call, so that all chain lookups observe the same chain.
//
// Expected errors during normal operations:
//   - ErrInvalidRequest if more than llmq.MaxBaseBlocks base blocks are requested
//   - ErrRequestMismatch if the base block count differs from the number of hashes
//   - ErrGenesisNotFound, ErrTipNotFound if the chain is not bootstrapped
//   - ErrBlockNotFound if a base block or the requested block is unknown
//   - ErrBlockNotInActiveChain if a base block is not on the active chain
//   - AncestorNotFoundError if a cycle-aligned block cannot be resolved
//   - SnapshotNotFoundError if a quorum snapshot is missing
//   - DiffBuildError if the diff builder fails
func (b *Builder) Build(lctx lockctx.Proof, req *llmq.GetRotationInfo) (*llmq.RotationInfo, error) {
	if !lctx.HoldsLock(storage.LockChainState) {
		return nil, fmt.Errorf("missing required lock: %s", storage.LockChainState)
	}

	if req.BaseBlockHashesNb > llmq.MaxBaseBlocks {
		return nil, fmt.Errorf("%w: %d base blocks requested, at most %d allowed", ErrInvalidRequest, req.BaseBlockHashesNb, llmq.MaxBaseBlocks)
	}
	if int(req.BaseBlockHashesNb) != len(req.BaseBlockHashes) {
		return nil, fmt.Errorf("%w: count %d, got %d hashes", ErrRequestMismatch, req.BaseBlockHashesNb, len(req.BaseBlockHashes))
	}

	baseBlocks, err := b.resolveBaseBlocks(req.BaseBlockHashes)
	if err != nil {
		return nil, err
	}

	tip, err := b.view.Tip()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrTipNotFound, err)
		}
		return nil, fmt.Errorf("could not retrieve chain tip: %w", err)
	}

	// base blocks are sorted, the last one is the closest to the tip
	tipDiff, err := b.buildDiff(baseBlocks[len(baseBlocks)-1].ID(), tip.ID())
	if err != nil {
		return nil, err
	}

	target, err := b.view.ByBlockID(req.BlockRequestHash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: requested block %v: %w", ErrBlockNotFound, req.BlockRequestHash, err)
		}
		return nil, fmt.Errorf("could not retrieve requested block %v: %w", req.BlockRequestHash, err)
	}

	cycle, err := ResolveCycleBlocks(b.view, tip, target, b.cycleLength)
	if err != nil {
		return nil, err
	}

	info := &llmq.RotationInfo{
		CreationHeight: cycle.H.Height,
		MnListDiffTip:  *tipDiff,
	}

	quorumDiffs := []*llmq.MNListDiff{&info.MnListDiffAtHMinusC, &info.MnListDiffAtHMinus2C, &info.MnListDiffAtHMinus3C}
	quorumSnapshots := []*llmq.Snapshot{&info.QuorumSnapshotAtHMinusC, &info.QuorumSnapshotAtHMinus2C, &info.QuorumSnapshotAtHMinus3C}
	for i, position := range []Position{PositionHMinusC, PositionHMinus2C, PositionHMinus3C} {
		block := cycle.At(position)
		blockID := block.ID()

		diff, err := b.buildDiff(LastBaseBlockID(baseBlocks, block), blockID)
		if err != nil {
			return nil, err
		}

		snapshot, err := b.snapshots.ByBlockID(lctx, b.quorumType, blockID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, NewSnapshotNotFoundError(position, block.Height, blockID)
			}
			return nil, fmt.Errorf("could not retrieve quorum snapshot at %v: %w", position, err)
		}

		*quorumDiffs[i] = *diff
		*quorumSnapshots[i] = *snapshot
	}

	b.log.Debug().
		Uint64("target_height", target.Height).
		Uint64("creation_height", info.CreationHeight).
		Uint64("tip_height", tip.Height).
		Int("base_blocks", len(req.BaseBlockHashes)).
		Msg("rotation info built")

	return info, nil
}

// resolveBaseBlocks returns the headers of the requested base blocks, sorted by
// ascending height. Without base blocks, the genesis block is the only base block.
func (b *Builder) resolveBaseBlocks(hashes []flow.Identifier) ([]*flow.Header, error) {
	if len(hashes) == 0 {
		genesis, err := b.view.Genesis()
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%w: %w", ErrGenesisNotFound, err)
			}
			return nil, fmt.Errorf("could not retrieve genesis: %w", err)
		}
		return []*flow.Header{genesis}, nil
	}

	baseBlocks := make([]*flow.Header, 0, len(hashes))
	for _, blockID := range hashes {
		header, err := b.view.ByBlockID(blockID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%w: base block %v: %w", ErrBlockNotFound, blockID, err)
			}
			return nil, fmt.Errorf("could not retrieve base block %v: %w", blockID, err)
		}

		contained, err := b.view.Contains(header)
		if err != nil {
			return nil, fmt.Errorf("could not check base block %v: %w", blockID, err)
		}
		if !contained {
			return nil, fmt.Errorf("%w: base block %v at height %d", ErrBlockNotInActiveChain, blockID, header.Height)
		}

		baseBlocks = append(baseBlocks, header)
	}

	slices.SortStableFunc(baseBlocks, func(x, y *flow.Header) int {
		return cmp.Compare(x.Height, y.Height)
	})
	return baseBlocks, nil
}

func (b *Builder) buildDiff(baseBlockID, blockID flow.Identifier) (*llmq.MNListDiff, error) {
	diff, err := b.diffs.BuildDiff(baseBlockID, blockID)
	if err != nil {
		return nil, NewDiffBuildError(baseBlockID, blockID, err)
	}
	return diff, nil
}

// LastBaseBlockID returns the ID of the highest base block at or below the
// given block's height, or flow.ZeroID if there is none. The base blocks must
// be sorted by ascending height.
func LastBaseBlockID(baseBlocks []*flow.Header, header *flow.Header) flow.Identifier {
	anchor := flow.ZeroID
	for _, base := range baseBlocks {
		if base.Height > header.Height {
			break
		}
		anchor = base.ID()
	}
	return anchor
}

// CycleBlocks are the cycle-aligned blocks of a rotation info response.
type CycleBlocks struct {
	H        *flow.Header
	HMinusC  *flow.Header
	HMinus2C *flow.Header
	HMinus3C *flow.Header
}

// At returns the block at the given position.
func (c CycleBlocks) At(position Position) *flow.Header {
	switch position {
	case PositionH:
		return c.H
	case PositionHMinusC:
		return c.HMinusC
	case PositionHMinus2C:
		return c.HMinus2C
	case PositionHMinus3C:
		return c.HMinus3C
	default:
		return nil
	}
}

// ResolveCycleBlocks resolves the first block H of the target's DKG cycle and
// the first blocks of the three preceding cycles.
//
// H is the target's ancestor at the cycle-aligned height. H-C is resolved on the
// tip's ancestry, H-2C and H-3C on the ancestry of H-C.
//
// Expected errors during normal operations:
//   - AncestorNotFoundError if a block cannot be resolved, including heights
//     that would lie before genesis
func ResolveCycleBlocks(view chain.View, tip, target *flow.Header, cycleLength uint64) (CycleBlocks, error) {
	var cycle CycleBlocks
	if cycleLength == 0 {
		return cycle, fmt.Errorf("cycle length must be positive")
	}

	var err error
	cycle.H, err = ancestorAt(view, target, target.Height-target.Height%cycleLength, PositionH)
	if err != nil {
		return cycle, err
	}

	creationHeight := cycle.H.Height
	heightAt := func(cycles uint64, position Position) (uint64, error) {
		offset := cycles * cycleLength
		if creationHeight < offset {
			return 0, NewAncestorNotFoundError(position, 0,
				fmt.Errorf("height %d - %d is below genesis: %w", creationHeight, offset, storage.ErrNotFound))
		}
		return creationHeight - offset, nil
	}

	height, err := heightAt(1, PositionHMinusC)
	if err != nil {
		return cycle, err
	}
	cycle.HMinusC, err = ancestorAt(view, tip, height, PositionHMinusC)
	if err != nil {
		return cycle, err
	}

	height, err = heightAt(2, PositionHMinus2C)
	if err != nil {
		return cycle, err
	}
	cycle.HMinus2C, err = ancestorAt(view, cycle.HMinusC, height, PositionHMinus2C)
	if err != nil {
		return cycle, err
	}

	height, err = heightAt(3, PositionHMinus3C)
	if err != nil {
		return cycle, err
	}
	cycle.HMinus3C, err = ancestorAt(view, cycle.HMinusC, height, PositionHMinus3C)
	if err != nil {
		return cycle, err
	}

	return cycle, nil
}

func ancestorAt(view chain.View, header *flow.Header, height uint64, position Position) (*flow.Header, error) {
	ancestor, err := view.AncestorAtHeight(header, height)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, NewAncestorNotFoundError(position, height, err)
		}
		return nil, fmt.Errorf("could not resolve ancestor at %v (height %d): %w", position, height, err)
	}
	return ancestor, nil
}
