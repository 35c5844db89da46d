package resources

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/mholt/archives"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// bundleRoot returns the directory holding the bundle's files.
// Packed bundles are extracted once into a digest-keyed cache directory and reused afterwards.
func (l *Locator) bundleRoot(ctx context.Context, bundle domain.Bundle) (string, error) {
	if bundle.Root == "" {
		return "", zerr.Wrap(domain.ErrResourceNotFound, "no resource bundle configured")
	}

	root, err := filepath.Abs(bundle.Root)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve bundle path"), "path", bundle.Root)
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(domain.ErrResourceNotFound, "resource bundle not found: "+root), "path", root)
		}
		return "", zerr.With(zerr.Wrap(err, "failed to inspect resource bundle"), "path", root)
	}
	if info.IsDir() {
		return root, nil
	}

	return l.unpack(ctx, root, bundle.CacheDir)
}

func (l *Locator) unpack(ctx context.Context, archivePath, cacheDir string) (string, error) {
	digest, err := l.hasher.ComputeFileHash(archivePath)
	if err != nil {
		return "", err
	}

	if cacheDir == "" {
		cacheDir = domain.DefaultCachePath()
	}
	bundlesDir, err := filepath.Abs(filepath.Join(cacheDir, domain.BundlesDirName))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve cache path"), "path", cacheDir)
	}
	dest := filepath.Join(bundlesDir, digest)

	l.mu.Lock()
	defer l.mu.Unlock()

	if info, statErr := os.Stat(dest); statErr == nil && info.IsDir() {
		return dest, nil
	}

	if err := os.MkdirAll(bundlesDir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create bundle cache"), "path", bundlesDir)
	}

	staging, err := os.MkdirTemp(bundlesDir, digest+".partial-*")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create staging directory"), "path", bundlesDir)
	}
	defer os.RemoveAll(staging) //nolint:errcheck // Best effort cleanup; a no-op after the rename

	if err := extractArchive(ctx, archivePath, staging); err != nil {
		return "", err
	}

	if err := os.Rename(staging, dest); err != nil {
		// Another process may have published the same digest first.
		if info, statErr := os.Stat(dest); statErr == nil && info.IsDir() {
			return dest, nil
		}
		return "", zerr.With(zerr.Wrap(err, "failed to publish extracted bundle"), "path", dest)
	}

	return dest, nil
}

// extractArchive detects the archive format from its magic bytes and extracts it into dest.
func extractArchive(ctx context.Context, archivePath, dest string) error {
	f, err := os.Open(archivePath) //nolint:gosec // Path is controlled by configuration
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open bundle"), "path", archivePath)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	kind, err := filetype.MatchReader(f)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to detect bundle format"), "path", archivePath)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to rewind bundle"), "path", archivePath)
	}

	var decoder archives.Decompressor
	switch kind.MIME.Value {
	case "application/zip":
		err = archives.Zip{}.Extract(ctx, f, handleFile(dest))
		return wrapExtract(err, archivePath)
	case "application/x-tar":
		err = archives.Tar{}.Extract(ctx, f, handleFile(dest))
		return wrapExtract(err, archivePath)
	case "application/gzip":
		decoder = archives.Gz{}
	case "application/x-bzip2":
		decoder = archives.Bz2{}
	case "application/x-xz":
		decoder = archives.Xz{}
	case "application/zstd":
		decoder = archives.Zstd{}
	default:
		mime := kind.MIME.Value
		if mime == "" {
			mime = "unknown"
		}
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedBundle, "unsupported bundle format "+mime+": "+archivePath),
			"path", archivePath)
	}

	decoderReader, err := decoder.OpenReader(f)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open bundle stream"), "path", archivePath)
	}
	defer decoderReader.Close() //nolint:errcheck // Best effort close in defer

	return wrapExtract(archives.Tar{}.Extract(ctx, decoderReader, handleFile(dest)), archivePath)
}

func wrapExtract(err error, archivePath string) error {
	if err == nil {
		return nil
	}
	return zerr.With(zerr.Wrap(err, "failed to extract bundle"), "path", archivePath)
}

// handleFile writes each archive entry below outputPath.
// Entries that would land outside outputPath are rejected.
func handleFile(outputPath string) archives.FileHandler {
	return func(_ context.Context, info archives.FileInfo) error {
		name := filepath.Clean(filepath.FromSlash(info.NameInArchive))
		if !filepath.IsLocal(name) {
			return zerr.With(zerr.New("archive entry escapes bundle root"), "entry", info.NameInArchive)
		}
		outputFilePath := filepath.Join(outputPath, name)

		if info.IsDir() {
			return os.MkdirAll(outputFilePath, domain.DirPerm)
		}
		if !info.Mode().IsRegular() {
			// Links and special files are not part of a resource bundle.
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(outputFilePath), domain.DirPerm); err != nil {
			return err
		}

		perm := os.FileMode(domain.FilePerm)
		if info.Mode().Perm()&0o111 != 0 {
			perm = domain.ExecPerm
		}

		outputFile, err := os.OpenFile(outputFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) //nolint:gosec // Entry path is checked above
		if err != nil {
			return err
		}
		defer outputFile.Close() //nolint:errcheck // Closed explicitly on the success path

		r, err := info.Open()
		if err != nil {
			return err
		}
		defer r.Close() //nolint:errcheck // Best effort close in defer

		if _, err := io.Copy(outputFile, r); err != nil {
			return err
		}

		return outputFile.Close()
	}
}
