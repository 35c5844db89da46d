package shell

import "time"

// ResolveEnvironment exposes resolveEnvironment for tests.
var ResolveEnvironment = resolveEnvironment

// NewRunnerWithWaitDelay creates a Runner with a custom pipe wait delay.
func NewRunnerWithWaitDelay(d time.Duration) *Runner {
	return &Runner{waitDelay: d}
}
