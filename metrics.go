package authkit

import (
	"sync/atomic"
	"time"
)

// MetricID identifies a specific counter or histogram in the in-process
// metrics system.
type MetricID uint16

const (
	MetricLoginSuccess MetricID = iota
	MetricLoginFailure
	MetricLoginUnavailable
	MetricProviderLoginStarted
	MetricProviderLoginSuccess
	MetricProviderLoginIncomplete
	MetricRefreshSuccess
	MetricRefreshRejected
	MetricRefreshUnavailable
	MetricRegisterSuccess
	MetricRegisterFailure
	MetricPasswordResetRequest
	MetricPasswordResetFailure
	MetricLogout
	MetricSessionExpired
	MetricDecodeFailure
	MetricGuardAllowed
	MetricGuardDeniedUnauthenticated
	MetricGuardDeniedForbidden
	MetricInterceptUnauthorized
	MetricInterceptForbidden
	MetricInterceptNotFound
	MetricLoginLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

// Histogram bucket upper bounds in milliseconds; the last bucket is +Inf.
var histBucketBoundsMs = [histBucketCount - 1]int64{5, 10, 25, 50, 100, 250, 500}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

// Metrics holds atomic counters and an optional login-latency histogram.
// All write paths are allocation-free; Snapshot deep-copies for exporters.
type Metrics struct {
	histEnabled bool
	counters    [metricIDCount]paddedCounter
	latency     metricHistogram
}

// NewMetrics returns nil when metrics are disabled; a nil *Metrics is safe
// to call.
func NewMetrics(cfg MetricsConfig) *Metrics {
	if cfg.Disabled {
		return nil
	}
	return &Metrics{histEnabled: cfg.EnableLatencyHistograms}
}

func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records a latency sample into the histogram for id. Only
// [MetricLoginLatency] carries a histogram today.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.histEnabled || id != MetricLoginLatency {
		return
	}

	ms := d.Milliseconds()
	bucket := histBucketCount - 1
	for i, bound := range histBucketBoundsMs {
		if ms <= bound {
			bucket = i
			break
		}
	}
	atomic.AddUint64(&m.latency.buckets[bucket], 1)
}

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	snapshot := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, metricIDCount),
		Histograms: make(map[MetricID][]uint64, 1),
	}
	if m == nil {
		return snapshot
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		if id == MetricLoginLatency {
			continue
		}
		snapshot.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.histEnabled {
		buckets := make([]uint64, histBucketCount)
		for i := range m.latency.buckets {
			buckets[i] = atomic.LoadUint64(&m.latency.buckets[i])
		}
		snapshot.Histograms[MetricLoginLatency] = buckets
	}

	return snapshot
}
