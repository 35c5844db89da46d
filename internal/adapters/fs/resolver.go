package fs

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactResolver = (*Resolver)(nil)

// Resolver implements the ArtifactResolver interface by probing candidate paths in order.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the absolute path of the first regular file among dir/base+suffix.
func (r *Resolver) Resolve(dir, base string, suffixes []string) (string, error) {
	if len(suffixes) == 0 {
		suffixes = []string{""}
	}

	candidates := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		path := filepath.Join(dir, base+suffix)
		candidates = append(candidates, path)

		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", path)
		}
		if info.IsDir() {
			continue
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to resolve absolute path"), "path", path)
		}
		return abs, nil
	}

	err := zerr.Wrap(domain.ErrArtifactNotFound,
		"no artifact in "+dir+" (tried "+strings.Join(candidates, ", ")+")")
	return "", zerr.With(zerr.With(err, "dir", dir), "candidates", candidates)
}
