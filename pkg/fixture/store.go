package fixture

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// filePerm is applied to capture files so they stay readable by editors
// and other tools after the rename.
const filePerm = 0644

// Read returns the contents of the fixture at path. A missing file or a
// directory in its place yields ErrNotFound.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || isDir(path) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	return data, nil
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Write replaces the fixture at path with data. The data is written to a
// temporary file in the same directory and renamed into place, so readers
// see either the old or the new content and concurrent writers resolve
// last-rename-wins. A missing parent directory yields ErrDirectoryMissing;
// directories are never created.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDirectoryMissing, dir)
		}
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName) // Clean up temp file on failure
		return err
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
