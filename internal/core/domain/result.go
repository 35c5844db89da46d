package domain

import (
	"strings"
	"time"
)

// ToolchainChoice is the executable selected for a build.
type ToolchainChoice struct {
	// Name is the candidate name as configured, e.g. "g++".
	Name string
	// Path is the absolute path the name resolved to.
	Path string
}

// Command is a fully assembled external tool invocation.
type Command struct {
	// Name is reported as argv[0].
	Name string
	// Path is the executable that is started. Falls back to Name when empty.
	Path string
	// Args are the arguments after argv[0].
	Args []string
	// Dir is the working directory of the child. Empty inherits the caller's.
	Dir string
	// Env holds extra KEY=VALUE entries layered over the inherited environment.
	Env map[string]string
	// Timeout bounds the child. Zero waits indefinitely.
	Timeout time.Duration
}

// Argv returns the full argument vector including argv[0].
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	return append(argv, c.Args...)
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// ProcessResult is the outcome of running an external tool to completion.
type ProcessResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// BuildResult is the structured outcome of a build request.
// ArtifactPath is only set when Success is true.
type BuildResult struct {
	// ID identifies the request in logs.
	ID string
	// Resource is the requested resource id.
	Resource string
	// Strategy is the pipeline that ran.
	Strategy Strategy
	// Success reports whether a usable artifact was produced.
	Success bool
	// ArtifactPath is the absolute path of the usable artifact.
	ArtifactPath string
	// ArtifactDigest is the xxhash of the artifact content, hex encoded.
	ArtifactDigest string
	// ArtifactType is the detected file type extension, e.g. "elf". Empty when unknown.
	ArtifactType string
	// Relocated reports whether the artifact was copied to the requested destination.
	Relocated bool
	// ExitCode is the external tool's exit code. -1 when it never ran to completion.
	ExitCode int
	// Stdout and Stderr are the tool's captured output, verbatim.
	Stdout string
	Stderr string
	// Kind tags the failing stage. RelocationFailed is advisory and keeps Success true.
	Kind ErrorKind
	// Err carries the underlying cause when Kind is set.
	Err error
	// BuildTarget is the target the tool was asked to build, explicit or from config defaults.
	BuildTarget string
	// Toolchain is the executable that ran.
	Toolchain ToolchainChoice
	// Command is the full argument vector that ran.
	Command []string
	// SearchDir and Candidates describe the artifact search when Kind is ArtifactNotFound.
	SearchDir  string
	Candidates []string
	// Duration is the wall time of the request.
	Duration time.Duration
}

// Failed marks the result unsuccessful with the given kind and cause.
// Any artifact path is cleared.
func (r *BuildResult) Failed(kind ErrorKind, err error) {
	r.Success = false
	r.ArtifactPath = ""
	r.ArtifactDigest = ""
	r.ArtifactType = ""
	r.Relocated = false
	r.Kind = kind
	r.Err = err
}
