package unittest

import (
	"os"
	"testing"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/require"
)

// RequireReturnsBefore fails the test if f does not return within timeout.
func RequireReturnsBefore(t testing.TB, f func(), timeout time.Duration, msgAndArgs ...interface{}) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		f()
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		require.FailNow(t, "function did not return in time", msgAndArgs...)
	}
}

// RunWithTempDir runs f with a fresh directory that is removed afterwards.
func RunWithTempDir(t testing.TB, f func(dir string)) {
	dir, err := os.MkdirTemp("", "qrinfo-test-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	f(dir)
}

// RunWithBadgerDB runs f with a badger database in a temporary directory.
func RunWithBadgerDB(t testing.TB, f func(*badger.DB)) {
	RunWithTempDir(t, func(dir string) {
		opts := badger.DefaultOptions(dir).
			WithKeepL0InMemory(true).
			WithLogger(nil)
		db, err := badger.Open(opts)
		require.NoError(t, err)
		defer db.Close()
		f(db)
	})
}

// RunWithPebbleDB runs f with a pebble database in a temporary directory.
func RunWithPebbleDB(t testing.TB, f func(*pebble.DB)) {
	RunWithTempDir(t, func(dir string) {
		db, err := pebble.Open(dir, &pebble.Options{})
		require.NoError(t, err)
		defer db.Close()
		f(db)
	})
}
