// Package filter expands directory arguments into the files to encrypt or decrypt.
package filter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrBadPattern is returned for an exclude pattern that cannot be compiled.
var ErrBadPattern = errors.New("invalid exclude pattern")

// Selection decides which files below a directory are processed.
//
// On encryption, files already carrying Suffix are skipped. On decryption,
// only files carrying Suffix are selected. Excludes always win.
type Selection struct {
	Suffix   string
	Decrypt  bool
	Excludes []string
}

// Validate checks the exclude patterns.
func (s Selection) Validate() error {
	for _, pattern := range s.Excludes {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: %q", ErrBadPattern, pattern)
		}
	}

	return nil
}

// Resolve takes positional args (files or directories) and returns the files to process.
// Files are added cleaned but otherwise as given, bypassing the selection, so that
// a missing or misnamed file is reported by the caller. Arguments naming the same
// file are kept once. Directories are walked recursively.
// Returns the selected files and the number of directory entries that were skipped.
func (s Selection) Resolve(args []string) (files []string, skipped int, err error) {
	if err := s.Validate(); err != nil {
		return nil, 0, err
	}

	seen := make(map[string]struct{})

	add := func(file string) {
		if _, ok := seen[file]; ok {
			return
		}

		seen[file] = struct{}{}
		files = append(files, file)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			add(arg)

			continue
		}

		walked, total, err := s.walkDir(arg)
		if err != nil {
			return nil, 0, err
		}

		skipped += total - len(walked)

		for _, file := range walked {
			add(file)
		}
	}

	return files, skipped, nil
}

// walkDir walks root recursively, returning the selected files and the number of files seen.
func (s Selection) walkDir(root string) (files []string, total int, err error) {
	err = filepath.WalkDir(root, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, file)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && s.excluded(rel) {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		total++

		if s.selected(rel) {
			files = append(files, file)
		}

		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walking %q: %w", root, err)
	}

	return files, total, nil
}

// selected reports whether a regular file, relative to the walked root, is processed.
func (s Selection) selected(rel string) bool {
	if s.excluded(rel) {
		return false
	}

	return strings.HasSuffix(rel, s.Suffix) == s.Decrypt
}

// excluded matches rel against the exclude patterns.
// A pattern without a slash matches the base name at any depth,
// otherwise it matches the whole relative path.
func (s Selection) excluded(rel string) bool {
	for _, pattern := range s.Excludes {
		pattern = strings.TrimPrefix(pattern, "./")

		target := rel
		if !strings.Contains(pattern, "/") {
			target = path.Base(rel)
		}

		if ok, _ := path.Match(pattern, target); ok {
			return true
		}
	}

	return false
}
