package common

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/model/llmq"
	"github.com/onflow/flow-qrinfo/module"
	"github.com/onflow/flow-qrinfo/module/metrics"
	"github.com/onflow/flow-qrinfo/state/chain/persistent"
	"github.com/onflow/flow-qrinfo/storage"
	storagebadger "github.com/onflow/flow-qrinfo/storage/badger"
	"github.com/onflow/flow-qrinfo/storage/operation/bops"
	"github.com/onflow/flow-qrinfo/storage/operation/pops"
	storagepebble "github.com/onflow/flow-qrinfo/storage/pebble"
	"github.com/onflow/flow-qrinfo/storage/store"
)

const (
	EnginePebble = "pebble"
	EngineBadger = "badger"
)

// InitStorageFlags registers the persistent flags selecting the database and chain.
func InitStorageFlags(flags *pflag.FlagSet) {
	flags.String("datadir", "/var/qrinfo/data", "directory of the chain database")
	flags.String("db-engine", EnginePebble, "database engine (pebble or badger)")
	flags.String("chain", flow.Mainnet.String(), "chain of the database (mainnet, testnet, devnet or regtest)")
	flags.Bool("cache-metrics", false, "collect storage cache metrics and log them when the command finishes")
}

// StorageConfig selects the database opened by NewStorages.
type StorageConfig struct {
	Dir          string
	Engine       string
	Chain        flow.ChainID
	CacheMetrics bool
}

// Storages bundles the components opened on the chain database.
type Storages struct {
	DB        storage.DB
	Consensus *llmq.Consensus
	Headers   *store.Headers
	State     *persistent.State
	Snapshots *store.QuorumSnapshots

	// Metrics is nil unless cache metrics were requested.
	Metrics *prometheus.Registry
}

// OpenDB opens the database at dir with the given engine.
func OpenDB(dir string, engine string) (storage.DB, error) {
	switch engine {
	case EnginePebble:
		db, err := storagepebble.OpenDefaultPebbleDB(dir)
		if err != nil {
			return nil, err
		}
		return pops.ToDB(db), nil
	case EngineBadger:
		db, err := storagebadger.OpenBadgerDB(dir)
		if err != nil {
			return nil, err
		}
		return bops.ToDB(db), nil
	default:
		return nil, fmt.Errorf("unknown database engine %q", engine)
	}
}

// InitStorages opens the database configured by the storage flags (or their
// environment variables) and the stores on top of it.
func InitStorages(log zerolog.Logger) (*Storages, error) {
	return NewStorages(log, StorageConfig{
		Dir:          viper.GetString("datadir"),
		Engine:       viper.GetString("db-engine"),
		Chain:        flow.ChainID(viper.GetString("chain")),
		CacheMetrics: viper.GetBool("cache-metrics"),
	})
}

func NewStorages(log zerolog.Logger, cfg StorageConfig) (*Storages, error) {
	consensus, err := llmq.ConsensusForChain(cfg.Chain)
	if err != nil {
		return nil, err
	}

	db, err := OpenDB(cfg.Dir, cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	var registry *prometheus.Registry
	var collector module.CacheMetrics = metrics.NewNoopCollector()
	if cfg.CacheMetrics {
		registry = prometheus.NewRegistry()
		collector = metrics.NewCacheCollector(cfg.Chain, registry)
	}

	headers := store.NewHeaders(collector, db, cfg.Chain)
	return &Storages{
		DB:        db,
		Consensus: consensus,
		Headers:   headers,
		State:     persistent.NewState(log, db, headers),
		Snapshots: store.NewQuorumSnapshots(collector, db),
		Metrics:   registry,
	}, nil
}

// LogCacheMetrics logs every collected cache metric. It is a no-op when cache
// metrics are disabled.
func (s *Storages) LogCacheMetrics(log zerolog.Logger) error {
	if s.Metrics == nil {
		return nil
	}
	families, err := s.Metrics.Gather()
	if err != nil {
		return fmt.Errorf("could not gather cache metrics: %w", err)
	}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			event := log.Info().Str("metric", family.GetName())
			for _, label := range m.GetLabel() {
				event = event.Str(label.GetName(), label.GetValue())
			}
			value := m.GetCounter().GetValue()
			if m.GetGauge() != nil {
				value = m.GetGauge().GetValue()
			}
			event.Float64("value", value).Msg("cache metric")
		}
	}
	return nil
}
