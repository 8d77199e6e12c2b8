package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	collectionReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tipsplit",
			Subsystem: "loader",
			Name:      "reads_total",
			Help:      "Collection reads issued by loaders.",
		},
		[]string{"collection", "outcome"},
	)
	collectionReadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tipsplit",
			Subsystem: "loader",
			Name:      "read_duration_seconds",
			Help:      "Collection read duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"collection", "outcome"},
	)
	decodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tipsplit",
			Subsystem: "loader",
			Name:      "decode_failures_total",
			Help:      "Documents skipped because they failed to decode.",
		},
		[]string{"collection"},
	)
	rpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tipsplit",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total RPC requests.",
		},
		[]string{"procedure", "code"},
	)
	rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tipsplit",
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "RPC duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"procedure", "code"},
	)
)

// Read outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(collectionReads, collectionReadDuration, decodeFailures, rpcRequests, rpcDuration)
	})
}

func RecordCollectionRead(collection, outcome string, duration time.Duration) {
	RegisterMetrics()
	collectionReads.WithLabelValues(collection, outcome).Inc()
	collectionReadDuration.WithLabelValues(collection, outcome).Observe(duration.Seconds())
}

func RecordDecodeFailures(collection string, n int) {
	if n == 0 {
		return
	}
	RegisterMetrics()
	decodeFailures.WithLabelValues(collection).Add(float64(n))
}

func RecordRPC(procedure, code string, duration time.Duration) {
	RegisterMetrics()
	rpcRequests.WithLabelValues(procedure, code).Inc()
	rpcDuration.WithLabelValues(procedure, code).Observe(duration.Seconds())
}
