package config

// DefaultStubDir is the fixture root used when none is configured.
const DefaultStubDir = "stubs"

// DefaultPort is the default HTTP port.
const DefaultPort = 3000

// DefaultEnv is the runtime environment assumed when none is configured.
const DefaultEnv = "development"

// DefaultReadTimeout is the default read timeout in seconds.
const DefaultReadTimeout = 30

// DefaultWriteTimeout is the default write timeout in seconds.
const DefaultWriteTimeout = 30

// DefaultMaxBodyBytes is the default cap on POST bodies (1 MiB).
const DefaultMaxBodyBytes int64 = 1 << 20

// DefaultCORSMethods lists the methods advertised in Access-Control-Allow-Methods.
var DefaultCORSMethods = []string{"GET", "PUT", "POST", "DELETE"}

// DefaultCORSHeaders lists the headers advertised in Access-Control-Allow-Headers.
var DefaultCORSHeaders = []string{"Content-Type"}

// Default returns a fresh Config holding the built-in defaults.
func Default() Config {
	cfg := Config{
		StubDir:      DefaultStubDir,
		ServerPort:   DefaultPort,
		Env:          DefaultEnv,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		MaxBodyBytes: DefaultMaxBodyBytes,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		CORS: CORSConfig{
			AllowOrigin:  "*",
			AllowMethods: append([]string(nil), DefaultCORSMethods...),
			AllowHeaders: append([]string(nil), DefaultCORSHeaders...),
		},
		Sources: make(map[string]string),
	}
	for _, key := range []string{
		"stub_dir", "server_port", "env", "confine_paths", "watch",
		"read_timeout", "write_timeout", "max_body_bytes",
		"logging.level", "logging.format",
		"cors.allow_origin", "cors.allow_methods", "cors.allow_headers",
	} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}
