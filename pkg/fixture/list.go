package fixture

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every fixture below the stub directory.
const DefaultPattern = "**/*" + Extension

// Kind classifies a fixture file.
type Kind string

// Fixture kinds.
const (
	// KindFixture is served on GET and overwritten by POST captures.
	KindFixture Kind = "fixture"
	// KindResponse is a canned POST response under postresp/.
	KindResponse Kind = "postresp"
)

// Fixture describes one file found by List.
type Fixture struct {
	// Path is relative to the stub directory, slash-separated.
	Path string `json:"path"`
	Kind Kind   `json:"kind"`
	// SubPath is the request sub-path the fixture serves.
	SubPath string `json:"subPath"`
	Size    int64  `json:"size"`
}

// List returns the fixtures below root whose relative path matches pattern
// (doublestar syntax, "**" crosses directories), sorted by path.
func List(root, pattern string) ([]Fixture, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryMissing, root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("stub directory %s is not a directory", root)
	}

	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)

	fixtures := make([]Fixture, 0, len(matches))
	for _, m := range matches {
		fi, err := fs.Stat(fsys, m)
		if err != nil {
			continue
		}
		fixtures = append(fixtures, describe(m, fi.Size()))
	}
	return fixtures, nil
}

func describe(rel string, size int64) Fixture {
	f := Fixture{
		Path:    rel,
		Kind:    KindFixture,
		SubPath: strings.TrimSuffix(rel, Extension),
		Size:    size,
	}
	dir, name := path.Split(f.SubPath)
	if path.Base(dir) == ResponseDir {
		f.Kind = KindResponse
		f.SubPath = path.Join(path.Dir(strings.TrimSuffix(dir, "/")), name)
	}
	return f
}
