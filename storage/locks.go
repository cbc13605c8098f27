package storage

import (
	"go.uber.org/atomic"

	"github.com/jordanschalm/lockctx"
)

// LockChainState is the chain-consistency lock. It protects the shape of the
// chain (genesis, tip and the active chain's height index) against concurrent
// modification. Readers performing several dependent chain lookups, like the
// rotation info builder, hold it for the whole sequence. Quorum snapshots are
// read and written under it as well.
//
// Lock order: LockChainState, then mutexes internal to storage components
// (e.g. the quorum snapshot cache), then the locks of the database engine.
// Components never call back into code that acquires a named lock while holding
// their own mutex. Their methods take a lockctx.Proof of the chain lock instead
// of acquiring it, so a component mutex is always taken after the chain lock.
const LockChainState = "lock_chain_state"

// Locks lists all named locks of the storage layer.
func Locks() []string {
	return []string{LockChainState}
}

// lockPolicy has no edges: a lock context holds at most one named lock.
func lockPolicy() lockctx.Policy {
	return lockctx.NewDAGPolicyBuilder().Build()
}

var lockManagerCreated = atomic.NewBool(false)

// MakeSingletonLockManager returns the process-wide lock manager. All components
// must share it, so a second call panics.
func MakeSingletonLockManager() lockctx.Manager {
	if !lockManagerCreated.CompareAndSwap(false, true) {
		panic("lock manager already created: MakeSingletonLockManager must be called once per process")
	}
	return lockctx.NewManager(Locks(), lockPolicy())
}

// NewTestingLockManager returns an independent lock manager for tests.
func NewTestingLockManager() lockctx.Manager {
	return lockctx.NewManager(Locks(), lockPolicy())
}
