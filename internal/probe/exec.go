// Package probe holds the independent sub-collectors that make up a host
// snapshot, plus the OS, environment and subprocess facilities they read.
// Every probe recovers from its own failures and returns a sentinel value.
package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrCommandNotFound is returned when the executable is not on PATH
	ErrCommandNotFound = errors.New("command not found")
	// ErrCommandTimeout is returned when a command exceeds its time budget
	ErrCommandTimeout = errors.New("command timed out")
)

const waitDelay = 500 * time.Millisecond

// Runner executes an external command and returns its standard output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// CommandRunner runs real subprocesses, each bounded by Timeout.
// Cancelling the parent context kills the running process.
type CommandRunner struct {
	Timeout time.Duration
	Log     logrus.FieldLogger
}

// NewCommandRunner creates a runner with the given per-command timeout
func NewCommandRunner(timeout time.Duration, log logrus.FieldLogger) *CommandRunner {
	return &CommandRunner{Timeout: timeout, Log: log}
}

// Run executes name with args and returns captured stdout
func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, ErrCommandNotFound)
	}

	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	start := time.Now()
	cmd := exec.CommandContext(runCtx, path, args...)
	// Grandchildren can hold stdout open after the kill
	cmd.WaitDelay = waitDelay
	hideWindow(cmd)
	out, err := cmd.Output()

	if r.Log != nil {
		r.Log.WithFields(logrus.Fields{
			"command":  name,
			"duration": time.Since(start).Round(time.Millisecond),
		}).Debug("Ran external command")
	}

	if err != nil {
		// Parent cancellation is reported as-is so callers can tell shutdown from a slow tool
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s after %s: %w", name, r.Timeout, ErrCommandTimeout)
		}
		return nil, fmt.Errorf("%s failed: %w", name, err)
	}

	return out, nil
}
