package common

import (
	"testing"

	"github.com/jordanschalm/lockctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/model/llmq"
	"github.com/onflow/flow-qrinfo/module/metrics"
	"github.com/onflow/flow-qrinfo/state/chain/persistent"
	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/storage/store"
	"github.com/onflow/flow-qrinfo/utils/unittest"
)

func TestOpenDB_UnknownEngine(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		_, err := OpenDB(dir, "leveldb")
		require.Error(t, err)
	})
}

// The chain written through one handle is visible after reopening the
// directory with the same engine.
func TestOpenDB_Reopen(t *testing.T) {
	for _, engine := range []string{EnginePebble, EngineBadger} {
		t.Run(engine, func(t *testing.T) {
			unittest.RunWithTempDir(t, func(dir string) {
				genesis := unittest.GenesisFixture()
				chain := unittest.HeaderChainFixture(genesis, 3)
				lockManager := storage.NewTestingLockManager()

				db, err := OpenDB(dir, engine)
				require.NoError(t, err)
				state := openState(db)
				err = unittest.WithLock(t, lockManager, storage.LockChainState, func(lctx lockctx.Context) error {
					if err := state.Bootstrap(lctx, genesis); err != nil {
						return err
					}
					for _, header := range chain {
						if err := state.Extend(lctx, header); err != nil {
							return err
						}
					}
					return nil
				})
				require.NoError(t, err)
				require.NoError(t, db.Close())

				db, err = OpenDB(dir, engine)
				require.NoError(t, err)
				defer db.Close()

				tip, err := openState(db).Tip()
				require.NoError(t, err)
				require.Equal(t, chain[len(chain)-1].ID(), tip.ID())
			})
		})
	}
}

// With cache metrics enabled, the snapshot store reports to the registry
// exposed on Storages.
func TestNewStorages_CacheMetrics(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		storages, err := NewStorages(unittest.Logger(), StorageConfig{
			Dir:          dir,
			Engine:       EngineBadger,
			Chain:        flow.Regtest,
			CacheMetrics: true,
		})
		require.NoError(t, err)
		defer storages.DB.Close()
		require.NotNil(t, storages.Metrics)

		err = unittest.WithLock(t, storage.NewTestingLockManager(), storage.LockChainState, func(lctx lockctx.Context) error {
			_, err := storages.Snapshots.ByBlockID(lctx, llmq.TypeTestDIP0024, unittest.IdentifierFixture())
			return err
		})
		require.ErrorIs(t, err, storage.ErrNotFound)

		families, err := storages.Metrics.Gather()
		require.NoError(t, err)
		notFounds := 0.0
		for _, family := range families {
			if family.GetName() != "storage_cache_notfounds_total" {
				continue
			}
			for _, m := range family.GetMetric() {
				for _, label := range m.GetLabel() {
					if label.GetName() == metrics.LabelResource && label.GetValue() == metrics.ResourceQuorumSnapshot {
						notFounds += m.GetCounter().GetValue()
					}
				}
			}
		}
		assert.Equal(t, 1.0, notFounds)
		assert.NoError(t, storages.LogCacheMetrics(unittest.Logger()))
	})
}

func TestNewStorages_NoCacheMetrics(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		storages, err := NewStorages(unittest.Logger(), StorageConfig{
			Dir:    dir,
			Engine: EnginePebble,
			Chain:  flow.Regtest,
		})
		require.NoError(t, err)
		defer storages.DB.Close()

		assert.Nil(t, storages.Metrics)
		assert.NoError(t, storages.LogCacheMetrics(unittest.Logger()))
	})
}

func TestNewStorages_UnknownChain(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		_, err := NewStorages(unittest.Logger(), StorageConfig{
			Dir:    dir,
			Engine: EnginePebble,
			Chain:  flow.ChainID("flow-emulator"),
		})
		require.Error(t, err)
	})
}

func openState(db storage.DB) *persistent.State {
	headers := store.NewHeaders(metrics.NewNoopCollector(), db, flow.Regtest)
	return persistent.NewState(unittest.Logger(), db, headers)
}
