package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jordanschalm/lockctx"

	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/model/llmq"
	"github.com/onflow/flow-qrinfo/module"
	"github.com/onflow/flow-qrinfo/module/metrics"
	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/storage/operation"
)

// QuorumSnapshots is a read-through cache of quorum snapshots in front of the
// database. Entries are never evicted: snapshots only exist for cycle boundary
// blocks, so the set grows by a handful of entries per cycle.
//
// A single mutex serializes all operations, including the database I/O they
// perform. Callers must hold [storage.LockChainState], which is always acquired
// before the mutex.
type QuorumSnapshots struct {
	db        storage.DB
	collector module.CacheMetrics

	mu    sync.Mutex
	cache map[flow.Identifier]*llmq.Snapshot // keyed by llmq.SnapshotKey
}

var _ storage.QuorumSnapshots = (*QuorumSnapshots)(nil)

func NewQuorumSnapshots(collector module.CacheMetrics, db storage.DB) *QuorumSnapshots {
	s := &QuorumSnapshots{
		db:        db,
		collector: collector,
		cache:     make(map[flow.Identifier]*llmq.Snapshot),
	}
	s.collector.CacheEntries(metrics.ResourceQuorumSnapshot, 0)
	return s
}

// Store persists the snapshot and then caches it, replacing any previous entry
// for the same quorum type and block. The caller keeps ownership of snapshot.
// No errors are expected during normal operation.
func (s *QuorumSnapshots) Store(lctx lockctx.Proof, quorumType llmq.QuorumType, blockID flow.Identifier, snapshot *llmq.Snapshot) error {
	if !lctx.HoldsLock(storage.LockChainState) {
		return fmt.Errorf("missing required lock: %s", storage.LockChainState)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := llmq.SnapshotKey(quorumType, blockID)
	err := s.db.WithReaderBatchWriter(storage.OnlyWriter(func(w storage.Writer) error {
		return operation.UpsertQuorumSnapshot(w, key, snapshot)
	}))
	if err != nil {
		return fmt.Errorf("could not persist quorum snapshot (type %v, block %v): %w", quorumType, blockID, err)
	}

	s.cache[key] = snapshot.Copy()
	s.collector.CacheEntries(metrics.ResourceQuorumSnapshot, uint(len(s.cache)))
	return nil
}

// ByBlockID returns a copy of the snapshot of the given quorum type at the
// given block. A snapshot found in the database is added to the cache; an
// absent one is not.
// Expected errors during normal operations:
//   - [storage.ErrNotFound] if no snapshot was stored for the quorum type and block
func (s *QuorumSnapshots) ByBlockID(lctx lockctx.Proof, quorumType llmq.QuorumType, blockID flow.Identifier) (*llmq.Snapshot, error) {
	if !lctx.HoldsLock(storage.LockChainState) {
		return nil, fmt.Errorf("missing required lock: %s", storage.LockChainState)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := llmq.SnapshotKey(quorumType, blockID)
	if cached, ok := s.cache[key]; ok {
		s.collector.CacheHit(metrics.ResourceQuorumSnapshot)
		return cached.Copy(), nil
	}

	var snapshot llmq.Snapshot
	err := operation.RetrieveQuorumSnapshot(s.db.Reader(), key, &snapshot)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.collector.CacheNotFound(metrics.ResourceQuorumSnapshot)
		}
		return nil, fmt.Errorf("could not retrieve quorum snapshot (type %v, block %v): %w", quorumType, blockID, err)
	}
	s.collector.CacheMiss(metrics.ResourceQuorumSnapshot)

	s.cache[key] = &snapshot
	s.collector.CacheEntries(metrics.ResourceQuorumSnapshot, uint(len(s.cache)))
	return snapshot.Copy(), nil
}
