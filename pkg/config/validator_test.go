package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"defaults", func(*Config) {}, ""},
		{"random port", func(c *Config) { c.ServerPort = 0 }, ""},
		{"upper case level", func(c *Config) { c.Logging.Level = "DEBUG" }, ""},
		{"empty stub dir", func(c *Config) { c.StubDir = "" }, "stub_dir"},
		{"negative port", func(c *Config) { c.ServerPort = -1 }, "server_port"},
		{"port too large", func(c *Config) { c.ServerPort = 70000 }, "server_port"},
		{"negative read timeout", func(c *Config) { c.ReadTimeout = -5 }, "read_timeout"},
		{"negative write timeout", func(c *Config) { c.WriteTimeout = -5 }, "write_timeout"},
		{"zero body limit", func(c *Config) { c.MaxBodyBytes = 0 }, "max_body_bytes"},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
