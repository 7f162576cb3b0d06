package aurum

import (
	internalmetrics "github.com/aurumkit/aurum/internal/metrics"
)

// MetricID identifies a specific counter or histogram slot in the in-process
// metrics system.
type MetricID = internalmetrics.MetricID

const (
	// MetricDispatchSuccess counts dispatches whose final response was 2xx/3xx.
	MetricDispatchSuccess = MetricID(internalmetrics.MetricDispatchSuccess)
	// MetricDispatchUnauthorized counts dispatches whose final response was 401.
	MetricDispatchUnauthorized = MetricID(internalmetrics.MetricDispatchUnauthorized)
	// MetricDispatchServerError counts dispatches ending in a non-401 4xx/5xx.
	MetricDispatchServerError = MetricID(internalmetrics.MetricDispatchServerError)
	// MetricDispatchNetworkError counts transport-level dispatch failures.
	MetricDispatchNetworkError = MetricID(internalmetrics.MetricDispatchNetworkError)
	// MetricDispatchRetried counts resends after a successful refresh.
	MetricDispatchRetried = MetricID(internalmetrics.MetricDispatchRetried)
	// MetricRefreshSuccess counts refresh calls that yielded a new token.
	MetricRefreshSuccess = MetricID(internalmetrics.MetricRefreshSuccess)
	// MetricRefreshFailure counts refresh calls that ended the session.
	MetricRefreshFailure = MetricID(internalmetrics.MetricRefreshFailure)
	// MetricRefreshShared counts callers that joined an in-flight refresh.
	MetricRefreshShared = MetricID(internalmetrics.MetricRefreshShared)
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess = MetricID(internalmetrics.MetricLoginSuccess)
	// MetricLoginFailure counts rejected or malformed login responses.
	MetricLoginFailure = MetricID(internalmetrics.MetricLoginFailure)
	// MetricLogout counts explicit logouts.
	MetricLogout = MetricID(internalmetrics.MetricLogout)
	// MetricSessionCreated counts sessions written by login.
	MetricSessionCreated = MetricID(internalmetrics.MetricSessionCreated)
	// MetricSessionTerminated counts session teardowns.
	MetricSessionTerminated = MetricID(internalmetrics.MetricSessionTerminated)
	// MetricDispatchLatency is the histogram slot for end-to-end dispatch time.
	MetricDispatchLatency = MetricID(internalmetrics.MetricDispatchLatency)
)

// Metrics holds atomic counters and optional latency histograms.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{
		Enabled:       cfg.Enabled,
		EnableLatency: cfg.EnableLatencyHistograms,
	})
}

func (c *Client) metricInc(id MetricID) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Inc(id)
}
