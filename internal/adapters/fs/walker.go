// Package fs provides file system adapters for locating, hashing and relocating build artifacts.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files below root, skipping VCS metadata and build output directories.
// Yielded paths include root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if skipAction := w.shouldSkip(d, ignores); skipAction != nil {
				return skipAction
			}

			if d.IsDir() || w.ignored(d, ignores) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// shouldSkip returns filepath.SkipDir for directories that must not be descended into.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) error {
	if !d.IsDir() {
		return nil
	}

	switch d.Name() {
	case ".git", ".jj", ".pio":
		return filepath.SkipDir
	}

	if w.ignored(d, ignores) {
		return filepath.SkipDir
	}
	return nil
}

func (w *Walker) ignored(d fs.DirEntry, ignores []string) bool {
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, d.Name()); matched {
			return true
		}
	}
	return false
}
