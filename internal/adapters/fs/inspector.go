package fs

import (
	"os"

	"github.com/h2non/filetype"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactInspector = (*Inspector)(nil)

// Inspector detects artifact file types from their magic bytes.
type Inspector struct{}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect returns the detected type extension such as "elf" or "exe".
// Unknown types yield an empty string without error.
func (i *Inspector) Inspect(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", path)
	}
	if info.Size() == 0 {
		return "", nil
	}

	kind, err := filetype.MatchFile(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read artifact header"), "path", path)
	}
	if kind == filetype.Unknown {
		return "", nil
	}
	return kind.Extension, nil
}
