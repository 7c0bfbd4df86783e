// Package cli provides the command-line interface for stubservice.
//
// Commands:
//   - serve: Start the stub server (also run when no command is given)
//   - config: Display the effective configuration and its sources
//   - fixtures: List the fixtures under the stub directory
//   - init: Create a .stubservicerc.yaml and the stub directory
//   - version: Show stubservice version
//
// Configuration flags (--stub-dir, --port, --env, --config, --log-level,
// --log-format, --watch, --confine-paths) are persistent, so every command
// resolves the same configuration the server would run with.
package cli
