// Package pioini reads default build targets from bundled project config files.
package pioini

import (
	"bufio"
	"io"
	"os"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DefaultTargetResolver = (*Resolver)(nil)

// Resolver implements ports.DefaultTargetResolver with a flat line scan.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// DefaultTarget returns the first default target declared in the config file at configPath.
func (r *Resolver) DefaultTarget(configPath string) (string, bool, error) {
	f, err := os.Open(configPath) //nolint:gosec // path comes from the resource locator
	if err != nil {
		return "", false, zerr.With(zerr.Wrap(err, "failed to open project config"), "path", configPath)
	}
	defer f.Close() //nolint:errcheck // read-only

	target, ok, err := ScanDefaultTarget(f)
	if err != nil {
		return "", false, zerr.With(zerr.Wrap(err, "failed to read project config"), "path", configPath)
	}
	return target, ok, nil
}

// ScanDefaultTarget scans r line by line for the default target declaration.
//
// The first line whose trimmed content starts with domain.DefaultTargetKey wins. The text
// after its first '=' is split on ',' and the first element, trimmed, is returned. Later
// declarations are ignored, and a line with a different spacing around '=' does not match.
// This is a text scan, not an INI parse: section headers are not considered.
func ScanDefaultTarget(r io.Reader) (string, bool, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, domain.DefaultTargetKey) {
			continue
		}
		_, value, _ := strings.Cut(line, "=")
		first, _, _ := strings.Cut(value, ",")
		return strings.TrimSpace(first), true, nil
	}
	if err := scanner.Err(); err != nil {
		return "", false, err
	}
	return "", false, nil
}
