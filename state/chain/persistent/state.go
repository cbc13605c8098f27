package persistent

import (
	"errors"
	"fmt"

	"github.com/jordanschalm/lockctx"
	"github.com/rs/zerolog"

	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/state"
	"github.com/onflow/flow-qrinfo/state/chain"
	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/storage/operation"
)

// State is the block tree persisted in the database. The active chain is
// tracked by the chain tip and a height index covering every block from
// genesis to the tip.
//
// Writes require the caller to hold storage.LockChainState until they return.
type State struct {
	log     zerolog.Logger
	db      storage.DB
	headers storage.Headers
}

var _ chain.View = (*State)(nil)

func NewState(log zerolog.Logger, db storage.DB, headers storage.Headers) *State {
	return &State{
		log:     log.With().Str("component", "chain_state").Logger(),
		db:      db,
		headers: headers,
	}
}

// Bootstrap initializes an empty state with the genesis block, which becomes
// the tip of the active chain.
// Expected errors during normal operations:
//   - storage.ErrAlreadyExists if the state was already bootstrapped
func (s *State) Bootstrap(lctx lockctx.Proof, genesis *flow.Header) error {
	if !lctx.HoldsLock(storage.LockChainState) {
		return fmt.Errorf("missing required lock: %s", storage.LockChainState)
	}
	if genesis.Height != 0 || genesis.ParentID != flow.ZeroID {
		return fmt.Errorf("genesis must have height 0 and no parent (height %d, parent %v)", genesis.Height, genesis.ParentID)
	}

	genesisID := genesis.ID()
	err := s.db.WithReaderBatchWriter(func(rw storage.ReaderBatchWriter) error {
		err := operation.InsertGenesisBlockID(rw, genesisID)
		if err != nil {
			return fmt.Errorf("could not insert genesis block ID: %w", err)
		}
		err = s.headers.BatchStore(lctx, rw, genesis)
		if err != nil {
			return fmt.Errorf("could not store genesis header: %w", err)
		}
		err = s.headers.BatchIndexHeight(lctx, rw, 0, genesisID)
		if err != nil {
			return fmt.Errorf("could not index genesis height: %w", err)
		}
		return operation.UpdateChainTip(rw.Writer(), genesisID)
	})
	if err != nil {
		return fmt.Errorf("could not bootstrap chain state: %w", err)
	}

	s.log.Info().Str("genesis_id", genesisID.String()).Str("chain", genesis.ChainID.String()).Msg("chain state bootstrapped")
	return nil
}

// Extend adds a child of a known block to the block tree. If the parent is
// the current tip, the new block becomes the tip of the active chain;
// otherwise it is stored on a side fork.
// Expected errors during normal operations:
//   - state.UnknownBlockError (wrapping storage.ErrNotFound) if the parent is unknown
//   - state.InvalidExtensionError if the height does not follow the parent's or
//     the chain differs from the parent's
//   - state.OutdatedExtensionError if the block is already stored
func (s *State) Extend(lctx lockctx.Proof, header *flow.Header) error {
	if !lctx.HoldsLock(storage.LockChainState) {
		return fmt.Errorf("missing required lock: %s", storage.LockChainState)
	}

	parent, err := s.headers.ByBlockID(header.ParentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return state.WrapAsUnknownBlockError(header.ParentID, err)
		}
		return fmt.Errorf("could not retrieve parent: %w", err)
	}
	if header.ChainID != parent.ChainID {
		return state.NewInvalidExtensionErrorf(header, "chain %v differs from parent chain %v", header.ChainID, parent.ChainID)
	}
	if header.Height != parent.Height+1 {
		return state.NewInvalidExtensionErrorf(header, "height does not follow parent height %d", parent.Height)
	}

	tipID, err := s.tipID()
	if err != nil {
		return err
	}

	blockID := header.ID()
	extendsTip := header.ParentID == tipID
	err = s.db.WithReaderBatchWriter(func(rw storage.ReaderBatchWriter) error {
		err := s.headers.BatchStore(lctx, rw, header)
		if err != nil {
			return err
		}
		if !extendsTip {
			return nil
		}
		err = s.headers.BatchIndexHeight(lctx, rw, header.Height, blockID)
		if err != nil {
			return fmt.Errorf("could not index block height: %w", err)
		}
		return operation.UpdateChainTip(rw.Writer(), blockID)
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return state.NewOutdatedExtensionError(blockID, err)
		}
		return fmt.Errorf("could not extend chain state: %w", err)
	}

	s.log.Debug().
		Uint64("height", header.Height).
		Str("block_id", blockID.String()).
		Bool("tip", extendsTip).
		Msg("chain state extended")
	return nil
}

// SetTip makes the given known block the tip of the active chain, re-indexing
// the heights of the branch leading to it (a reorg). The new tip may be lower
// than the old one.
// Expected errors during normal operations:
//   - state.UnknownBlockError (wrapping storage.ErrNotFound) if the block is unknown
func (s *State) SetTip(lctx lockctx.Proof, blockID flow.Identifier) error {
	if !lctx.HoldsLock(storage.LockChainState) {
		return fmt.Errorf("missing required lock: %s", storage.LockChainState)
	}

	newTip, err := s.headers.ByBlockID(blockID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return state.WrapAsUnknownBlockError(blockID, err)
		}
		return fmt.Errorf("could not retrieve new tip: %w", err)
	}
	oldTip, err := s.Tip()
	if err != nil {
		return err
	}
	if oldTip.ID() == blockID {
		return nil
	}

	err = s.db.WithReaderBatchWriter(func(rw storage.ReaderBatchWriter) error {
		// index the new branch above the fork point, which is already on the active chain
		err := state.TraverseForward(s.headers, blockID, func(header *flow.Header) (bool, error) {
			contained, err := s.Contains(header)
			return !contained, err
		}, func(header *flow.Header) error {
			return s.headers.BatchIndexHeight(lctx, rw, header.Height, header.ID())
		})
		if err != nil {
			return fmt.Errorf("could not index new branch: %w", err)
		}

		// the old branch above the new tip leaves the active chain
		for height := newTip.Height + 1; height <= oldTip.Height; height++ {
			err = s.headers.BatchRemoveHeight(lctx, rw, height)
			if err != nil {
				return fmt.Errorf("could not remove height %d: %w", height, err)
			}
		}
		return operation.UpdateChainTip(rw.Writer(), blockID)
	})
	if err != nil {
		return fmt.Errorf("could not set chain tip: %w", err)
	}

	s.log.Info().
		Uint64("old_height", oldTip.Height).
		Uint64("new_height", newTip.Height).
		Str("new_tip", blockID.String()).
		Msg("chain tip changed")
	return nil
}

func (s *State) Genesis() (*flow.Header, error) {
	var genesisID flow.Identifier
	err := operation.RetrieveGenesisBlockID(s.db.Reader(), &genesisID)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve genesis block ID: %w", err)
	}
	return s.headers.ByBlockID(genesisID)
}

func (s *State) Tip() (*flow.Header, error) {
	tipID, err := s.tipID()
	if err != nil {
		return nil, err
	}
	return s.headers.ByBlockID(tipID)
}

func (s *State) tipID() (flow.Identifier, error) {
	var tipID flow.Identifier
	err := operation.RetrieveChainTip(s.db.Reader(), &tipID)
	if err != nil {
		return flow.ZeroID, fmt.Errorf("could not retrieve chain tip: %w", err)
	}
	return tipID, nil
}

func (s *State) ByBlockID(blockID flow.Identifier) (*flow.Header, error) {
	return s.headers.ByBlockID(blockID)
}

func (s *State) Contains(header *flow.Header) (bool, error) {
	blockID, err := s.headers.BlockIDByHeight(header.Height)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not look up active chain at height %d: %w", header.Height, err)
	}
	return blockID == header.ID(), nil
}

// AncestorAtHeight walks the parent links until it either reaches the
// requested height or joins the active chain, where the height index
// answers directly.
func (s *State) AncestorAtHeight(header *flow.Header, height uint64) (*flow.Header, error) {
	if height > header.Height {
		return nil, fmt.Errorf("no ancestor of block at height %d above it at height %d: %w", header.Height, height, storage.ErrNotFound)
	}

	current := header
	for current.Height > height {
		contained, err := s.Contains(current)
		if err != nil {
			return nil, err
		}
		if contained {
			ancestorID, err := s.headers.BlockIDByHeight(height)
			if err != nil {
				return nil, fmt.Errorf("could not look up active chain at height %d: %w", height, err)
			}
			return s.headers.ByBlockID(ancestorID)
		}

		parent, err := s.headers.ByBlockID(current.ParentID)
		if err != nil {
			return nil, fmt.Errorf("could not retrieve parent of block at height %d: %w", current.Height, err)
		}
		current = parent
	}
	return current, nil
}
