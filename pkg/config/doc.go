// Package config provides configuration types and loading for stubservice.
//
// The effective configuration is built by layering partial Overrides on top
// of the built-in defaults. Precedence, highest to lowest:
//
//  1. Command-line flags
//  2. Environment variables (STUBSERVICE_* prefix, PORT, values from .env)
//  3. Config file passed with --config
//  4. Local config file (.stubservicerc.yaml in the current directory)
//  5. Global config file ($XDG_CONFIG_HOME/stubservice/config.yaml)
//  6. Default values
//
// Config is a value type. Merge always returns a new Config and never
// modifies the one it was given, so embedding the handlers several times in
// one process never leaks overrides between callers.
//
// Values are not validated here: an unusable port or a missing stub
// directory only surfaces when the server binds or a request touches disk.
package config
