package config

// Config is the effective configuration of a stubservice instance.
type Config struct {
	// StubDir is the fixture root. Relative paths are resolved against the
	// working directory at request time.
	StubDir string `yaml:"stub_dir" json:"stub_dir"`

	// ServerPort is the port the standalone server listens on.
	ServerPort int `yaml:"server_port" json:"server_port"`

	// Env names the runtime environment. When it is non-empty the PORT
	// environment variable takes precedence over ServerPort.
	Env string `yaml:"env" json:"env"`

	// ConfinePaths rejects requests whose fixture path escapes StubDir.
	ConfinePaths bool `yaml:"confine_paths" json:"confine_paths"`

	// Watch logs fixture changes under StubDir while serving.
	Watch bool `yaml:"watch" json:"watch"`

	// Server timeouts in seconds.
	ReadTimeout  int `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout int `yaml:"write_timeout" json:"write_timeout"`

	// MaxBodyBytes caps the size of captured POST bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" json:"max_body_bytes"`

	Logging LoggingConfig `yaml:"logging" json:"logging"`
	CORS    CORSConfig    `yaml:"cors" json:"cors"`

	// Sources tracks where each value came from, keyed by its YAML path.
	Sources map[string]string `yaml:"-" json:"-"`
}

// LoggingConfig configures the operational logger.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// CORSConfig holds the headers the standalone server adds to every response.
type CORSConfig struct {
	AllowOrigin  string   `yaml:"allow_origin" json:"allow_origin"`
	AllowMethods []string `yaml:"allow_methods" json:"allow_methods"`
	AllowHeaders []string `yaml:"allow_headers" json:"allow_headers"`
}

// Overrides is a partial configuration. Nil fields are left untouched by
// Merge. Config files decode straight into Overrides, so a key that is
// present with a zero value (confine_paths: false) still overrides.
type Overrides struct {
	StubDir      *string           `yaml:"stub_dir,omitempty" json:"stub_dir,omitempty"`
	ServerPort   *int              `yaml:"server_port,omitempty" json:"server_port,omitempty"`
	Env          *string           `yaml:"env,omitempty" json:"env,omitempty"`
	ConfinePaths *bool             `yaml:"confine_paths,omitempty" json:"confine_paths,omitempty"`
	Watch        *bool             `yaml:"watch,omitempty" json:"watch,omitempty"`
	ReadTimeout  *int              `yaml:"read_timeout,omitempty" json:"read_timeout,omitempty"`
	WriteTimeout *int              `yaml:"write_timeout,omitempty" json:"write_timeout,omitempty"`
	MaxBodyBytes *int64            `yaml:"max_body_bytes,omitempty" json:"max_body_bytes,omitempty"`
	Logging      *LoggingOverrides `yaml:"logging,omitempty" json:"logging,omitempty"`
	CORS         *CORSOverrides    `yaml:"cors,omitempty" json:"cors,omitempty"`
}

// LoggingOverrides is the partial form of LoggingConfig.
type LoggingOverrides struct {
	Level  *string `yaml:"level,omitempty" json:"level,omitempty"`
	Format *string `yaml:"format,omitempty" json:"format,omitempty"`
}

// CORSOverrides is the partial form of CORSConfig.
type CORSOverrides struct {
	AllowOrigin  *string  `yaml:"allow_origin,omitempty" json:"allow_origin,omitempty"`
	AllowMethods []string `yaml:"allow_methods,omitempty" json:"allow_methods,omitempty"`
	AllowHeaders []string `yaml:"allow_headers,omitempty" json:"allow_headers,omitempty"`
}

// Value sources.
const (
	SourceDefault  = "default"
	SourceGlobal   = "global"
	SourceLocal    = "local"
	SourceFile     = "file"
	SourceEnv      = "env"
	SourceFlag     = "flag"
	SourceOverride = "override"
)

// String returns a pointer to s, for building Overrides literals.
func String(s string) *string { return &s }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// Int64 returns a pointer to i.
func Int64(i int64) *int64 { return &i }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }
