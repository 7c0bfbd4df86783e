package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfigDir is the directory name under the user config dir.
const GlobalConfigDir = "stubservice"

// LocalConfigFileNames are the names searched in the working directory, in order.
var LocalConfigFileNames = []string{".stubservicerc.yaml", ".stubservicerc.yml"}

// GlobalConfigFileNames are the names searched in the global config dir, in order.
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FileError reports a config file that exists but cannot be decoded.
type FileError struct {
	Path    string
	Message string
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Message
}

// LoadFile decodes a YAML config file into Overrides.
func LoadFile(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, &FileError{Path: path, Message: err.Error()}
	}
	return &o, nil
}

// SaveFile writes o as YAML to path, creating or truncating it.
func SaveFile(path string, o *Overrides) error {
	data, err := yaml.Marshal(o)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	//nolint:gosec // config files are meant to be readable by the developer's tools
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FindLocalConfig returns the first local config file present in dir, or ""
// if there is none.
func FindLocalConfig(dir string) string {
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindGlobalConfig returns the first global config file present under
// configDir (the user config directory when empty), or "".
func FindGlobalConfig(configDir string) string {
	if configDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		configDir = dir
	}
	for _, name := range GlobalConfigFileNames {
		path := filepath.Join(configDir, GlobalConfigDir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadOptions controls Load.
type LoadOptions struct {
	// Dir is searched for the local config and .env file. Defaults to the
	// working directory.
	Dir string

	// GlobalDir replaces the user config directory when set.
	GlobalDir string

	// ConfigFile is an explicit config file. Unlike the discovered files it
	// must exist.
	ConfigFile string

	// SkipDotEnv disables loading Dir/.env into the process environment.
	SkipDotEnv bool

	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// Flags holds values given on the command line.
	Flags *Overrides
}

// Load builds the effective configuration from every source in precedence
// order: defaults, global file, local file, explicit file, environment,
// flags.
func Load(opts LoadOptions) (Config, error) {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("resolving working directory: %w", err)
		}
		opts.Dir = wd
	}

	if !opts.SkipDotEnv {
		if err := LoadDotEnv(filepath.Join(opts.Dir, DefaultDotEnvFile)); err != nil {
			return Config{}, err
		}
	}

	cfg := Default()

	if path := FindGlobalConfig(opts.GlobalDir); path != "" {
		o, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = Merge(cfg, o, SourceGlobal)
	}

	if path := FindLocalConfig(opts.Dir); path != "" {
		o, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = Merge(cfg, o, SourceLocal)
	}

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = opts.Getenv(EnvConfig)
	}
	if configFile != "" {
		o, err := LoadFile(configFile)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("config file %s not found", configFile)
			}
			return Config{}, err
		}
		cfg = Merge(cfg, o, SourceFile)
	}

	cfg = Merge(cfg, EnvOverrides(opts.Getenv), SourceEnv)
	cfg = Merge(cfg, opts.Flags, SourceFlag)

	return cfg, nil
}
