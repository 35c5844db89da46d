package fs

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Relocator = (*Relocator)(nil)

// Relocator copies artifacts to their requested destination and verifies the copy.
type Relocator struct {
	hasher ports.Hasher
}

// NewRelocator creates a new Relocator.
func NewRelocator(hasher ports.Hasher) *Relocator {
	return &Relocator{hasher: hasher}
}

// Relocate copies src to dst, creating missing parent directories and replacing any
// existing file. The copy keeps the source's permission bits.
// On failure src is returned unchanged together with a domain.ErrRelocationFailed error.
func (r *Relocator) Relocate(src, dst string) (string, error) {
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return src, relocationError(err, "failed to resolve destination", src, dst)
	}

	if err := r.copyFile(src, absDst); err != nil {
		return src, err
	}

	srcHash, err := r.hasher.ComputeFileHash(src)
	if err != nil {
		return src, relocationError(err, "failed to hash source", src, absDst)
	}
	dstHash, err := r.hasher.ComputeFileHash(absDst)
	if err != nil {
		return src, relocationError(err, "failed to hash destination", src, absDst)
	}
	if srcHash != dstHash {
		return src, relocationError(zerr.New("digest mismatch"), "copy is not identical to source", src, absDst)
	}

	return absDst, nil
}

func (r *Relocator) copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return relocationError(err, "failed to open artifact", src, dst)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	info, err := in.Stat()
	if err != nil {
		return relocationError(err, "failed to stat artifact", src, dst)
	}
	if info.IsDir() {
		return relocationError(zerr.New("source is a directory"), "failed to copy artifact", src, dst)
	}
	if existing, statErr := os.Stat(dst); statErr == nil && os.SameFile(info, existing) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return relocationError(err, "failed to create destination directory", src, dst)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return relocationError(err, "failed to open destination", src, dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return relocationError(err, "failed to copy artifact", src, dst)
	}
	if err := out.Close(); err != nil {
		return relocationError(err, "failed to flush destination", src, dst)
	}

	// OpenFile does not change the mode of an existing file.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return relocationError(err, "failed to set destination mode", src, dst)
	}
	return nil
}

func relocationError(cause error, msg, src, dst string) error {
	err := zerr.Wrap(domain.ErrRelocationFailed, msg+": "+dst+": "+cause.Error())
	return zerr.With(zerr.With(err, "src", src), "dst", dst)
}
