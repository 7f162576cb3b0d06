package metrics

import (
	"sync/atomic"
	"time"
)

// MetricID identifies a specific counter or histogram slot.
type MetricID uint16

const (
	// MetricDispatchSuccess counts dispatches whose final response was 2xx/3xx.
	MetricDispatchSuccess MetricID = iota
	// MetricDispatchUnauthorized counts dispatches whose final response was 401.
	MetricDispatchUnauthorized
	// MetricDispatchServerError counts dispatches whose final response was a
	// non-401 4xx/5xx.
	MetricDispatchServerError
	// MetricDispatchNetworkError counts dispatches that failed at the transport.
	MetricDispatchNetworkError
	// MetricDispatchRetried counts resends after a successful refresh.
	MetricDispatchRetried
	// MetricRefreshSuccess counts refresh calls that yielded a new token.
	MetricRefreshSuccess
	// MetricRefreshFailure counts refresh calls that ended the session.
	MetricRefreshFailure
	// MetricRefreshShared counts callers that joined an in-flight refresh
	// instead of issuing their own.
	MetricRefreshShared
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess
	// MetricLoginFailure counts rejected or malformed login responses.
	MetricLoginFailure
	// MetricLogout counts explicit logouts.
	MetricLogout
	// MetricSessionCreated counts sessions written by login.
	MetricSessionCreated
	// MetricSessionTerminated counts session teardowns.
	MetricSessionTerminated
	// MetricDispatchLatency is the histogram slot for end-to-end dispatch time.
	MetricDispatchLatency

	// MetricIDCount is the number of defined metric IDs.
	MetricIDCount
)

// Config controls which metric subsystems are active.
type Config struct {
	Enabled       bool
	EnableLatency bool
}

// HistogramBuckets are the upper bounds of the fixed latency buckets. The
// last bucket is +Inf.
var HistogramBuckets = [8]time.Duration{
	5 * time.Millisecond,
	10 * time.Millisecond,
	25 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	250 * time.Millisecond,
	time.Second,
	1<<63 - 1,
}

// counters are padded to a cache line to avoid false sharing between
// adjacent slots under concurrent increments.
type paddedCounter struct {
	value uint64
	_     [7]uint64
}

type histogram struct {
	buckets [len(HistogramBuckets)]paddedCounter
}

func (h *histogram) observe(d time.Duration) {
	for i, bound := range HistogramBuckets {
		if d <= bound {
			atomic.AddUint64(&h.buckets[i].value, 1)
			return
		}
	}
}

func (h *histogram) snapshot() []uint64 {
	out := make([]uint64, len(h.buckets))
	for i := range h.buckets {
		out[i] = atomic.LoadUint64(&h.buckets[i].value)
	}
	return out
}

// Metrics holds atomic counters and optional latency histograms. The zero
// value is unusable; construct with [New]. A nil *Metrics is a valid no-op.
type Metrics struct {
	enabled bool
	latency bool

	counters   [MetricIDCount]paddedCounter
	histograms [MetricIDCount]*histogram
}

// New creates a [Metrics] instance. When cfg.Enabled is false, every
// operation is a no-op.
func New(cfg Config) *Metrics {
	m := &Metrics{
		enabled: cfg.Enabled,
		latency: cfg.Enabled && cfg.EnableLatency,
	}
	if m.latency {
		m.histograms[MetricDispatchLatency] = &histogram{}
	}
	return m
}

// Inc atomically increments the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records d into the histogram for id, when latency tracking is on.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.latency || id >= MetricIDCount {
		return
	}
	if h := m.histograms[id]; h != nil {
		h.observe(d)
	}
}

// LatencyEnabled reports whether histograms are being recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.latency
}

// Snapshot is a point-in-time deep copy of all metrics.
type Snapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// Snapshot returns a consistent-enough copy of all counters and histograms.
// Individual loads are atomic; the snapshot as a whole is not a fence.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		Counters:   map[MetricID]uint64{},
		Histograms: map[MetricID][]uint64{},
	}
	if m == nil || !m.enabled {
		return snap
	}

	for id := MetricID(0); id < MetricIDCount; id++ {
		if v := atomic.LoadUint64(&m.counters[id].value); v != 0 {
			snap.Counters[id] = v
		}
		if h := m.histograms[id]; h != nil {
			snap.Histograms[id] = h.snapshot()
		}
	}
	return snap
}
