// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/kiln/internal/core/domain"
)

// ProcessRunner runs external tools to completion.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type ProcessRunner interface {
	// Run starts cmd, waits for it to exit and returns its exit code and captured output.
	//
	// stdout and stderr, when non-nil, receive a copy of the output as it is produced.
	// A nonzero exit code is reported in the result, not as an error. Errors are
	// returned when the process cannot be started, times out or is cancelled.
	Run(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) (domain.ProcessResult, error)
}
