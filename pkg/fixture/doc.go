// Package fixture maps mock request paths onto JSON fixture files and
// performs the file I/O behind them.
//
// A request for sub-path P is backed by stub_dir/P.json. POST requests
// additionally look for a canned response at stub_dir/<dir>/postresp/<name>.json,
// where <name> is the last segment of P.
//
// The stub directory is resolved against the working directory every time a
// path is computed, so the same Resolver follows the process if it changes
// directory.
//
// Sub-paths are not sanitized. A path that resolves outside the stub
// directory is logged, and refused with ErrOutsideStubDir only when the
// Resolver is confined.
package fixture
