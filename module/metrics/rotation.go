package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/onflow/flow-qrinfo/module"
)

type RotationCollector struct {
	buildDuration prometheus.Histogram
	failures      *prometheus.CounterVec
}

var _ module.RotationInfoMetrics = (*RotationCollector)(nil)

func NewRotationCollector(registerer prometheus.Registerer) *RotationCollector {
	rc := &RotationCollector{
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespaceAccess,
			Subsystem: subsystemRotationInfo,
			Name:      "build_duration_seconds",
			Help:      "time taken to build a quorum rotation info response",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceAccess,
			Subsystem: subsystemRotationInfo,
			Name:      "failures_total",
			Help:      "number of quorum rotation info requests that failed, by reason",
		}, []string{LabelReason}),
	}

	registerer.MustRegister(rc.buildDuration, rc.failures)

	return rc
}

func (rc *RotationCollector) RotationInfoBuilt(duration time.Duration) {
	rc.buildDuration.Observe(duration.Seconds())
}

func (rc *RotationCollector) RotationInfoFailed(reason string) {
	rc.failures.With(prometheus.Labels{LabelReason: reason}).Inc()
}
