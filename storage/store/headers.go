package store

import (
	"fmt"

	"github.com/jordanschalm/lockctx"

	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/module"
	"github.com/onflow/flow-qrinfo/module/metrics"
	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/storage/operation"
)

// Headers implements header storage around a DB, with the active chain's
// height index.
type Headers struct {
	db storage.DB
	// cache is essentially an in-memory map from `Header.ID()` -> `Header`
	cache       *Cache[flow.Identifier, *flow.Header]
	heightCache *Cache[uint64, flow.Identifier]
	chainID     flow.ChainID
}

var _ storage.Headers = (*Headers)(nil)

// NewHeaders creates a Headers instance, which stores block headers.
// It supports storing, caching and retrieving by block ID and the additionally indexed by header height.
func NewHeaders(collector module.CacheMetrics, db storage.DB, chainID flow.ChainID) *Headers {
	storeWithLock := func(lctx lockctx.Proof, rw storage.ReaderBatchWriter, blockID flow.Identifier, header *flow.Header) error {
		if !lctx.HoldsLock(storage.LockChainState) {
			return fmt.Errorf("missing required lock: %s", storage.LockChainState)
		}
		if header.ChainID != chainID {
			return fmt.Errorf("expected chain ID %v, got %v", chainID, header.ChainID)
		}
		return operation.InsertHeader(rw, blockID, header)
	}

	retrieve := func(r storage.Reader, blockID flow.Identifier) (*flow.Header, error) {
		var header flow.Header
		err := operation.RetrieveHeader(r, blockID, &header)
		if err != nil {
			return nil, err
		}
		if header.ChainID != chainID {
			return nil, fmt.Errorf("expected chain ID '%v', got '%v'", chainID, header.ChainID)
		}
		return &header, nil
	}

	retrieveHeight := func(r storage.Reader, height uint64) (flow.Identifier, error) {
		var id flow.Identifier
		err := operation.LookupBlockHeight(r, height, &id)
		return id, err
	}

	h := &Headers{
		db: db,
		cache: newCache(collector, metrics.ResourceHeader,
			withLimit[flow.Identifier, *flow.Header](4*DefaultCacheSize),
			withStoreWithLock(storeWithLock),
			withRetrieve(retrieve)),

		heightCache: newCache(collector, metrics.ResourceBlockHeight,
			withLimit[uint64, flow.Identifier](4*DefaultCacheSize),
			withRetrieve(retrieveHeight)),

		chainID: chainID,
	}

	return h
}

// BatchStore adds the header to the batch, keyed by its ID.
//
// CAUTION: the caller must hold [storage.LockChainState] until the batch is committed.
//
// It returns [storage.ErrAlreadyExists] if the header already exists, i.e. we only insert a new header once.
// No other errors are expected during normal operation.
func (h *Headers) BatchStore(lctx lockctx.Proof, rw storage.ReaderBatchWriter, header *flow.Header) error {
	return h.cache.PutWithLockTx(lctx, rw, header.ID(), header)
}

// BatchIndexHeight points the height index at the given block. The height
// cache is invalidated up front and refreshed once the batch is committed.
// No errors are expected during normal operation.
func (h *Headers) BatchIndexHeight(lctx lockctx.Proof, rw storage.ReaderBatchWriter, height uint64, blockID flow.Identifier) error {
	if !lctx.HoldsLock(storage.LockChainState) {
		return fmt.Errorf("missing required lock: %s", storage.LockChainState)
	}
	h.heightCache.Remove(height)
	rw.AddCallback(func(err error) {
		if err == nil {
			h.heightCache.Insert(height, blockID)
		}
	})
	return operation.IndexBlockHeight(rw.Writer(), height, blockID)
}

// BatchRemoveHeight removes the height index entry.
// No errors are expected during normal operation.
func (h *Headers) BatchRemoveHeight(lctx lockctx.Proof, rw storage.ReaderBatchWriter, height uint64) error {
	if !lctx.HoldsLock(storage.LockChainState) {
		return fmt.Errorf("missing required lock: %s", storage.LockChainState)
	}
	h.heightCache.Remove(height)
	rw.AddCallback(func(error) {
		h.heightCache.Remove(height)
	})
	return operation.RemoveBlockHeight(rw.Writer(), height)
}

// ByBlockID returns the header with the given ID. It is available for blocks
// on the active chain and on side forks.
// Error returns:
//   - [storage.ErrNotFound] if no block header with the given ID exists
func (h *Headers) ByBlockID(blockID flow.Identifier) (*flow.Header, error) {
	return h.cache.Get(h.db.Reader(), blockID)
}

// BlockIDByHeight returns the ID of the active chain's block at the given height.
// Expected errors during normal operations:
//   - [storage.ErrNotFound] if the active chain has no block at given height
func (h *Headers) BlockIDByHeight(height uint64) (flow.Identifier, error) {
	blockID, err := h.heightCache.Get(h.db.Reader(), height)
	if err != nil {
		return flow.ZeroID, fmt.Errorf("could not lookup block id by height %d: %w", height, err)
	}
	return blockID, nil
}

// Exists returns true if a header with the given ID has been stored.
// No errors are expected during normal operation.
func (h *Headers) Exists(blockID flow.Identifier) (bool, error) {
	// if the block is in the cache, return true
	if ok := h.cache.IsCached(blockID); ok {
		return ok, nil
	}
	// otherwise, check the database
	exists, err := operation.BlockExists(h.db.Reader(), blockID)
	if err != nil {
		return false, fmt.Errorf("could not check existence: %w", err)
	}
	return exists, nil
}
