package domain

import (
	"context"
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrResourceNotFound is returned when a bundled config, source file or source directory
	// is missing from the installed distribution.
	ErrResourceNotFound = zerr.New("resource not found")

	// ErrToolchainNotFound is returned when none of the candidate executables is on the search path.
	ErrToolchainNotFound = zerr.New("toolchain not found")

	// ErrBuildFailed is returned when the external tool exits with a nonzero code.
	ErrBuildFailed = zerr.New("build failed")

	// ErrArtifactNotFound is returned when the tool succeeded but no candidate artifact exists.
	ErrArtifactNotFound = zerr.New("artifact not found")

	// ErrRelocationFailed is returned when copying the artifact to its destination fails.
	ErrRelocationFailed = zerr.New("relocation failed")

	// ErrProcessTimeout is returned when the external tool exceeds its deadline.
	ErrProcessTimeout = zerr.New("process timed out")

	// ErrProcessCancelled is returned when the caller cancels the build while the tool is running.
	ErrProcessCancelled = zerr.New("process cancelled")

	// ErrInvalidRequest is returned when a build request is missing required fields.
	ErrInvalidRequest = zerr.New("invalid build request")

	// ErrUnsupportedBundle is returned when a packed resource bundle has an unknown format.
	ErrUnsupportedBundle = zerr.New("unsupported bundle format")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidTimeout is returned when a configured timeout is not a valid duration.
	ErrInvalidTimeout = zerr.New("invalid timeout, expected a duration such as 90s or 10m")

	// ErrBuildExecutionFailed is returned by the CLI when at least one request did not succeed.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)

// ErrorKind tags the stage at which a build request failed.
// The zero value means no error.
type ErrorKind string

// Error kinds surfaced in BuildResult.
const (
	KindNone              ErrorKind = ""
	KindResourceNotFound  ErrorKind = "ResourceNotFound"
	KindToolchainNotFound ErrorKind = "ToolchainNotFound"
	KindBuildFailed       ErrorKind = "BuildFailed"
	KindArtifactNotFound  ErrorKind = "ArtifactNotFound"
	KindRelocationFailed  ErrorKind = "RelocationFailed"
	KindTimeout           ErrorKind = "Timeout"
	KindCancelled         ErrorKind = "Cancelled"
	KindUnexpected        ErrorKind = "UnexpectedError"
)

// Advisory reports whether the kind leaves the build usable.
func (k ErrorKind) Advisory() bool {
	return k == KindRelocationFailed
}

// String returns the kind name, or "none" for the zero value.
func (k ErrorKind) String() string {
	if k == KindNone {
		return "none"
	}
	return string(k)
}

// KindOf classifies err into an ErrorKind.
// Errors that match no known sentinel are UnexpectedError.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrResourceNotFound):
		return KindResourceNotFound
	case errors.Is(err, ErrToolchainNotFound):
		return KindToolchainNotFound
	case errors.Is(err, ErrBuildFailed):
		return KindBuildFailed
	case errors.Is(err, ErrArtifactNotFound):
		return KindArtifactNotFound
	case errors.Is(err, ErrRelocationFailed):
		return KindRelocationFailed
	case errors.Is(err, ErrProcessTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrProcessCancelled), errors.Is(err, context.Canceled):
		return KindCancelled
	default:
		return KindUnexpected
	}
}
