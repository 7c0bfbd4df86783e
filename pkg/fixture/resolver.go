package fixture

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/getmockd/stubservice/pkg/logging"
)

// Extension is appended to every sub-path to form a fixture file name.
const Extension = ".json"

// ResponseDir is the directory, next to a capture, that holds POST responses.
const ResponseDir = "postresp"

// Resolver computes fixture paths for request sub-paths.
type Resolver struct {
	stubDir string
	confine bool
	getwd   func() (string, error)
	log     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConfinement makes the resolver refuse paths outside the stub directory.
func WithConfinement(confine bool) Option {
	return func(r *Resolver) {
		r.confine = confine
	}
}

// WithGetwd replaces os.Getwd as the source of the working directory.
func WithGetwd(getwd func() (string, error)) Option {
	return func(r *Resolver) {
		if getwd != nil {
			r.getwd = getwd
		}
	}
}

// WithLogger sets the logger used for path warnings.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver returns a Resolver rooted at stubDir.
func NewResolver(stubDir string, opts ...Option) *Resolver {
	r := &Resolver{
		stubDir: stubDir,
		getwd:   os.Getwd,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StubDir returns the configured stub directory as given.
func (r *Resolver) StubDir() string {
	return r.stubDir
}

// Root returns the absolute stub directory for the current working directory.
func (r *Resolver) Root() (string, error) {
	if filepath.IsAbs(r.stubDir) {
		return filepath.Clean(r.stubDir), nil
	}
	wd, err := r.getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return filepath.Join(wd, r.stubDir), nil
}

// CapturePath returns stub_dir/sub.json: the GET fixture and the POST
// capture target.
func (r *Resolver) CapturePath(sub string) (string, error) {
	return r.resolve(sub)
}

// ResponsePath returns the POST response fixture for sub: its last segment
// is moved under postresp/, so "orders/create" maps to
// stub_dir/orders/postresp/create.json.
func (r *Resolver) ResponsePath(sub string) (string, error) {
	return r.resolve(ResponseSubPath(sub))
}

// ResponseSubPath rewrites sub so that its last segment sits in postresp/.
func ResponseSubPath(sub string) string {
	idx := strings.LastIndex(sub, "/")
	return sub[:idx+1] + ResponseDir + "/" + sub[idx+1:]
}

func (r *Resolver) resolve(sub string) (string, error) {
	root, err := r.Root()
	if err != nil {
		return "", err
	}
	path := filepath.Join(root, filepath.FromSlash(sub)+Extension)

	if !within(root, path) {
		if r.confine {
			return "", fmt.Errorf("%w: %s", ErrOutsideStubDir, sub)
		}
		r.log.Warn("fixture path escapes stub directory", "subPath", sub, "path", path, "stubDir", root)
	}
	return path, nil
}

// within reports whether path is root or lies below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
