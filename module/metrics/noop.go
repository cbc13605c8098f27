package metrics

import (
	"time"

	"github.com/onflow/flow-qrinfo/module"
)

type NoopCollector struct{}

var _ module.CacheMetrics = (*NoopCollector)(nil)
var _ module.RotationInfoMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) CacheEntries(resource string, entries uint) {}
func (nc *NoopCollector) CacheHit(resource string)                   {}
func (nc *NoopCollector) CacheNotFound(resource string)              {}
func (nc *NoopCollector) CacheMiss(resource string)                  {}
func (nc *NoopCollector) RotationInfoBuilt(duration time.Duration)   {}
func (nc *NoopCollector) RotationInfoFailed(reason string)           {}
