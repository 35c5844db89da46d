package ports

// ArtifactResolver finds the artifact a successful build produced.
//
//go:generate mockgen -destination=mocks/verifier_mock.go -package=mocks -source=verifier.go
type ArtifactResolver interface {
	// Resolve returns the absolute path of the first existing dir/base+suffix, in suffix order.
	// It fails with domain.ErrArtifactNotFound naming dir and every candidate tried.
	Resolve(dir, base string, suffixes []string) (string, error)
}

// Relocator copies artifacts to caller-requested destinations.
type Relocator interface {
	// Relocate copies src to dst, creating parent directories and overwriting dst.
	// On failure it returns src together with an error wrapping domain.ErrRelocationFailed.
	Relocate(src, dst string) (string, error)
}

// ArtifactInspector reports what kind of file an artifact is.
type ArtifactInspector interface {
	// Inspect returns the detected file type extension, or "" when unknown.
	Inspect(path string) (string, error)
}
