package domain

import (
	"slices"
	"time"

	"go.trai.ch/zerr"
)

// Strategy selects how a request is compiled.
type Strategy int

const (
	// StrategyProject builds a bundled PlatformIO-style project directory.
	StrategyProject Strategy = iota
	// StrategySourceFile compiles a single bundled source file with a native compiler.
	StrategySourceFile
)

// String returns the strategy name used in logs and span attributes.
func (s Strategy) String() string {
	switch s {
	case StrategyProject:
		return "project"
	case StrategySourceFile:
		return "source-file"
	default:
		return "unknown"
	}
}

// ResourceKind returns the kind of bundled resource the strategy consumes.
func (s Strategy) ResourceKind() ResourceKind {
	if s == StrategySourceFile {
		return ResourceSourceFile
	}
	return ResourceProject
}

// BuildRequest describes a single build invocation.
// It is treated as an immutable value; use the With* methods to derive variants.
type BuildRequest struct {
	// Strategy selects the project or single-file pipeline.
	Strategy Strategy
	// ResourceID is the package-relative identifier of the bundled resource.
	ResourceID string
	// BuildTarget is the tool environment to build. Empty means "use the config default".
	BuildTarget string
	// OutputBaseName is the artifact name without suffix.
	OutputBaseName string
	// OutputDir is where the single-file strategy writes its executable.
	OutputDir string
	// DestinationPath, when set, is where the artifact is copied after a successful build.
	DestinationPath string
	// ExtraArgs are appended to the tool command line in order.
	ExtraArgs []string
	// Verbose enables the tool's verbosity flag.
	Verbose bool
	// Timeout bounds the external process. Zero waits indefinitely.
	Timeout time.Duration
}

// Validate checks that the request carries the fields its strategy needs.
func (r BuildRequest) Validate() error {
	if r.ResourceID == "" {
		return zerr.Wrap(ErrInvalidRequest, "resource id is required")
	}
	if r.OutputBaseName == "" {
		return zerr.With(zerr.Wrap(ErrInvalidRequest, "output base name is required"), "resource", r.ResourceID)
	}
	if r.Strategy == StrategySourceFile && r.OutputDir == "" {
		return zerr.With(zerr.Wrap(ErrInvalidRequest, "output directory is required"), "resource", r.ResourceID)
	}
	if r.Timeout < 0 {
		return zerr.With(zerr.Wrap(ErrInvalidRequest, "timeout must not be negative"), "timeout", r.Timeout.String())
	}
	return nil
}

// WithBuildTarget returns a copy of the request with the given target.
func (r BuildRequest) WithBuildTarget(target string) BuildRequest {
	r.ExtraArgs = slices.Clone(r.ExtraArgs)
	r.BuildTarget = target
	return r
}
