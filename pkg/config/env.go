package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvPort         = "PORT"
	EnvStubDir      = "STUBSERVICE_STUB_DIR"
	EnvServerPort   = "STUBSERVICE_PORT"
	EnvRuntime      = "STUBSERVICE_ENV"
	EnvLogLevel     = "STUBSERVICE_LOG_LEVEL"
	EnvLogFormat    = "STUBSERVICE_LOG_FORMAT"
	EnvWatch        = "STUBSERVICE_WATCH"
	EnvConfinePaths = "STUBSERVICE_CONFINE_PATHS"
	EnvConfig       = "STUBSERVICE_CONFIG"
)

// DefaultDotEnvFile is the dotenv file read from the working directory.
const DefaultDotEnvFile = ".env"

// LoadDotEnv loads variables from the given dotenv files into the process
// environment. Variables that are already set are never overwritten, and
// missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultDotEnvFile}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// EnvOverrides reads the STUBSERVICE_* variables through getenv. Only
// variables that are set and parse cleanly produce an override; PORT is
// handled separately by EffectivePort.
func EnvOverrides(getenv func(string) string) *Overrides {
	o := &Overrides{}

	if v := getenv(EnvStubDir); v != "" {
		o.StubDir = String(v)
	}
	if v := getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			o.ServerPort = Int(port)
		}
	}
	if v := getenv(EnvRuntime); v != "" {
		o.Env = String(v)
	}
	if v := getenv(EnvWatch); v != "" {
		o.Watch = Bool(parseBool(v))
	}
	if v := getenv(EnvConfinePaths); v != "" {
		o.ConfinePaths = Bool(parseBool(v))
	}

	level, format := getenv(EnvLogLevel), getenv(EnvLogFormat)
	if level != "" || format != "" {
		o.Logging = &LoggingOverrides{}
		if level != "" {
			o.Logging.Level = String(level)
		}
		if format != "" {
			o.Logging.Format = String(format)
		}
	}

	return o
}

// EffectivePort returns the port to bind. When the runtime environment is
// recognized (Env is non-empty) a numeric PORT variable wins over
// ServerPort.
func EffectivePort(cfg Config, getenv func(string) string) int {
	if cfg.Env == "" {
		return cfg.ServerPort
	}
	if v := getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			return port
		}
	}
	return cfg.ServerPort
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
