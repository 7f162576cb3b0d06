package aurum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	valid := defaultConfig()
	valid.BaseURL = "https://api.aurum.example"
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing base url", func(c *Config) { c.BaseURL = "" }},
		{"bad scheme", func(c *Config) { c.BaseURL = "ftp://api.aurum.example" }},
		{"no host", func(c *Config) { c.BaseURL = "https://" }},
		{"negative timeout", func(c *Config) { c.HTTP.Timeout = -time.Second }},
		{"negative buffer", func(c *Config) { c.Events.BufferSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.BaseURL = "https://api.aurum.example"
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "aurum", cfg.Store.RedisPrefix)
	assert.True(t, cfg.Events.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
}
