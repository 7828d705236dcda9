package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File is a file on disk read and written as a whole.
type File struct {
	// Path of the file
	Path string

	// Origin, when set, is the file whose executable bits (and, with
	// PreserveTimestamps, modification time) are carried onto written output.
	Origin string

	// PreserveTimestamps copies the modification time of Origin.
	PreserveTimestamps bool
}

// NewFile returns a File for path.
func NewFile(path string) *File {
	return &File{Path: filepath.Clean(path)}
}

// Exists reports whether something exists at the path.
func (f *File) Exists() bool {
	_, err := os.Stat(f.Path)

	return !errors.Is(err, fs.ErrNotExist)
}

// ReadAll reads the whole file.
func (f *File) ReadAll() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", f.Path, err)
	}

	return data, nil
}

// WriteAll replaces the file content atomically.
// On failure the previous content, if any, is left in place.
func (f *File) WriteAll(data []byte) (err error) {
	perm := os.FileMode(ownerReadWrite)

	var origin os.FileInfo

	if f.Origin != "" {
		origin, err = os.Stat(f.Origin)
		if err != nil {
			return fmt.Errorf("getting file info for %q: %w", f.Origin, err)
		}

		if origin.Mode()&executableBits != 0 {
			perm |= executableBits
		}
	}

	tc, err := NewTempContext(f.Path)
	if err != nil {
		return fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	if _, err = tc.TmpFile.Write(data); err != nil {
		return fmt.Errorf("writing %q: %w", tc.TmpName, err)
	}

	if err = tc.Commit(perm); err != nil {
		return err
	}

	if origin != nil && f.PreserveTimestamps {
		modTime := origin.ModTime()

		if err = os.Chtimes(f.Path, modTime, modTime); err != nil {
			return fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	return nil
}
