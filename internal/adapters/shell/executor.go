// Package shell provides the process runner that invokes external build tools.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultWaitDelay bounds how long Run waits for output pipes after the child is killed.
const DefaultWaitDelay = 5 * time.Second

var _ ports.ProcessRunner = (*Runner)(nil)

// Runner implements ports.ProcessRunner using os/exec.
type Runner struct {
	waitDelay time.Duration
}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{waitDelay: DefaultWaitDelay}
}

// Run starts the command and blocks until it exits.
//
// Stdout and stderr are captured into separate buffers. When a writer is supplied, it
// receives a copy of the corresponding stream. The child inherits the caller's
// environment, with command.Env applied on top.
//
// A command.Timeout greater than zero kills the child once it expires; the partial output
// is returned together with domain.ErrProcessTimeout. Cancelling ctx kills the child and
// returns domain.ErrProcessCancelled.
func (r *Runner) Run(
	ctx context.Context,
	command domain.Command,
	stdout, stderr io.Writer,
) (domain.ProcessResult, error) {
	executable := command.Path
	if executable == "" {
		executable = command.Name
	}
	if executable == "" {
		return domain.ProcessResult{ExitCode: -1}, zerr.Wrap(domain.ErrInvalidRequest, "empty command")
	}

	runCtx := ctx
	if command.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, command.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, executable, command.Args...) //nolint:gosec // tool path comes from the toolchain selector

	// Restore the original command name in Args[0]
	// exec.CommandContext sets Args[0] to the executable path.
	if command.Name != "" {
		cmd.Args[0] = command.Name
	}
	if command.Dir != "" {
		cmd.Dir = command.Dir
	}
	cmd.Env = resolveEnvironment(os.Environ(), command.Env)
	cmd.WaitDelay = r.waitDelay

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = tee(&outBuf, stdout)
	cmd.Stderr = tee(&errBuf, stderr)

	runErr := cmd.Run()

	result := domain.ProcessResult{
		ExitCode: exitCode(cmd, runErr),
		Stdout:   outBuf.String(),
		Stderr:   errBuf.String(),
	}

	if ctxErr := runCtx.Err(); ctxErr != nil && runErr != nil {
		return result, contextError(ctx, ctxErr, command)
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			// A nonzero exit is reported through the result.
			return result, nil
		}
		return result, zerr.With(zerr.Wrap(runErr, "failed to start process"), "command", command.Name)
	}

	return result, nil
}

func contextError(parent context.Context, ctxErr error, command domain.Command) error {
	if errors.Is(parent.Err(), context.Canceled) {
		return zerr.With(zerr.Wrap(domain.ErrProcessCancelled, "build cancelled"), "command", command.Name)
	}
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		return zerr.With(
			zerr.Wrap(domain.ErrProcessTimeout, "process exceeded its deadline of "+command.Timeout.String()),
			"command", command.Name,
		)
	}
	return zerr.With(zerr.Wrap(domain.ErrProcessCancelled, "build cancelled"), "command", command.Name)
}

func exitCode(cmd *exec.Cmd, err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

// resolveEnvironment layers overrides over the system environment.
// The result is sorted so the child sees a deterministic environment.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return sysEnv
	}

	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}
