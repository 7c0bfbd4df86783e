package fixture

import "errors"

// Errors returned by path resolution and fixture I/O. Callers match them
// with errors.Is; other I/O errors are returned as they are.
var (
	// ErrNotFound means the fixture file does not exist or is not a regular file.
	ErrNotFound = errors.New("fixture not found")

	// ErrDirectoryMissing means the directory a capture should be written to does not exist.
	ErrDirectoryMissing = errors.New("fixture directory does not exist")

	// ErrOutsideStubDir means a confined resolver refused a path that escapes the stub directory.
	ErrOutsideStubDir = errors.New("path resolves outside the stub directory")
)
