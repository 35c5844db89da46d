// Package toolchain selects external build executables from the search path.
package toolchain

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolchainSelector = (*Selector)(nil)

// Selector implements ports.ToolchainSelector by probing PATH.
type Selector struct {
	searchPath func() string
}

// NewSelector creates a Selector that reads the caller's PATH on every call.
func NewSelector() *Selector {
	return &Selector{searchPath: func() string { return os.Getenv("PATH") }}
}

// NewSelectorWithPath creates a Selector that probes the given PATH-style list.
func NewSelectorWithPath(path string) *Selector {
	return &Selector{searchPath: func() string { return path }}
}

// Select returns the first candidate that resolves to an executable.
func (s *Selector) Select(candidates []string) (domain.ToolchainChoice, error) {
	path := s.searchPath()
	for _, name := range candidates {
		if name == "" {
			continue
		}
		resolved, err := lookPath(name, path)
		if err != nil {
			continue
		}
		return domain.ToolchainChoice{Name: name, Path: resolved}, nil
	}
	return domain.ToolchainChoice{}, zerr.With(
		zerr.Wrap(domain.ErrToolchainNotFound, "no candidate executable found on PATH: "+strings.Join(candidates, ", ")),
		"candidates", candidates,
	)
}

// lookPath searches for an executable in the directories of a PATH-style list.
// Names containing a separator are checked as given.
func lookPath(file, path string) (string, error) {
	if strings.ContainsRune(file, filepath.Separator) || strings.ContainsRune(file, '/') {
		if err := findExecutable(file); err != nil {
			return "", err
		}
		return filepath.Abs(file)
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		for _, candidate := range executableNames(filepath.Join(dir, file)) {
			if err := findExecutable(candidate); err == nil {
				return filepath.Abs(candidate)
			}
		}
	}
	return "", exec.ErrNotFound
}

// executableNames expands a path into the names the OS would execute.
func executableNames(path string) []string {
	if runtime.GOOS != "windows" || filepath.Ext(path) != "" {
		return []string{path}
	}
	return []string{path, path + ".exe", path + ".bat", path + ".cmd"}
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	m := d.Mode()
	if m.IsDir() {
		return os.ErrPermission
	}
	if runtime.GOOS == "windows" || m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
