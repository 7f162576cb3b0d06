package aurum

import (
	"errors"
	"net/url"
	"time"
)

// Config defines the client's static configuration. Config instances are
// intended to be set during initialization and then treated as immutable.
type Config struct {
	// BaseURL is the backend's base address, e.g. "https://api.aurum.example".
	// Envelope paths are resolved relative to it.
	BaseURL string

	HTTP    HTTPConfig
	Store   StoreConfig
	Events  EventsConfig
	Metrics MetricsConfig
}

/*
====================================
HTTP CONFIG
====================================
*/

// HTTPConfig controls the underlying transport.
type HTTPConfig struct {
	// Timeout bounds one HTTP attempt. Zero means no client-side timeout;
	// the core defines no retry or cancellation beyond this.
	Timeout   time.Duration
	UserAgent string
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig controls the Redis token store built by [Builder.WithRedis].
// Ignored when a store is injected directly.
type StoreConfig struct {
	RedisPrefix string
}

/*
====================================
EVENTS CONFIG
====================================
*/

// EventsConfig controls the async session event dispatcher.
type EventsConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process metrics counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:   15 * time.Second,
			UserAgent: "aurum-go",
		},
		Store: StoreConfig{
			RedisPrefix: "aurum",
		},
		Events: EventsConfig{
			Enabled:    true,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// No reference fields today; kept as a seam so adding one later cannot
	// silently alias caller state.
	return cfg
}

// Validate checks the configuration for values the client cannot run with.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("BaseURL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return errors.New("BaseURL is not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("BaseURL must use http or https")
	}
	if u.Host == "" {
		return errors.New("BaseURL must include a host")
	}
	if c.HTTP.Timeout < 0 {
		return errors.New("HTTP.Timeout must not be negative")
	}
	if c.Events.Enabled && c.Events.BufferSize < 0 {
		return errors.New("Events.BufferSize must not be negative")
	}
	return nil
}
