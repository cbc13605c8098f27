package unittest

import (
	"testing"

	"github.com/jordanschalm/lockctx"
	"github.com/stretchr/testify/require"
)

// WithLock acquires the named lock for the duration of fn and releases it afterwards.
// The test fails if the lock cannot be acquired.
func WithLock(t testing.TB, manager lockctx.Manager, lockID string, fn func(lctx lockctx.Context) error) error {
	t.Helper()
	lctx := manager.NewContext()
	defer lctx.Release()
	require.NoError(t, lctx.AcquireLock(lockID))
	return fn(lctx)
}

// WithLocks acquires the named locks in the given order for the duration of fn.
func WithLocks(t testing.TB, manager lockctx.Manager, lockIDs []string, fn func(lctx lockctx.Context) error) error {
	t.Helper()
	lctx := manager.NewContext()
	defer lctx.Release()
	for _, lockID := range lockIDs {
		require.NoError(t, lctx.AcquireLock(lockID))
	}
	return fn(lctx)
}
