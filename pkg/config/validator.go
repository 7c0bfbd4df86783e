package config

import (
	"fmt"
	"strings"
)

// validLogLevels are the accepted logging.level values.
var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// validLogFormats are the accepted logging.format values.
var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

// ValidationError reports a config value that cannot be used.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks the effective configuration. Load never calls it: bad
// values surface when the server uses them. Port 0 is allowed and binds a
// random free port.
func (c Config) Validate() error {
	if c.StubDir == "" {
		return &ValidationError{Field: "stub_dir", Message: "must not be empty"}
	}

	if c.ServerPort < 0 || c.ServerPort >= 65536 {
		return &ValidationError{
			Field:   "server_port",
			Message: fmt.Sprintf("must be between 0 and 65535, got %d", c.ServerPort),
		}
	}

	if c.ReadTimeout < 0 {
		return &ValidationError{Field: "read_timeout", Message: "must not be negative"}
	}
	if c.WriteTimeout < 0 {
		return &ValidationError{Field: "write_timeout", Message: "must not be negative"}
	}
	if c.MaxBodyBytes <= 0 {
		return &ValidationError{Field: "max_body_bytes", Message: "must be greater than 0"}
	}

	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return &ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level %q (use debug, info, warn or error)", c.Logging.Level),
		}
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return &ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q (use text or json)", c.Logging.Format),
		}
	}

	return nil
}
