package probe

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ErrNoProcess is returned when the process table has no entry for a pid
var ErrNoProcess = errors.New("no such process")

// ProcessTable answers ancestry questions about running processes
type ProcessTable interface {
	// ParentPID returns the parent of pid
	ParentPID(ctx context.Context, pid int32) (int32, error)
	// Name returns the command or image name of pid
	Name(ctx context.Context, pid int32) (string, error)
}

// PSProcessTable queries the process table through ps(1)
type PSProcessTable struct {
	Runner Runner
}

// ParentPID runs `ps -o ppid= -p <pid>`
func (t *PSProcessTable) ParentPID(ctx context.Context, pid int32) (int32, error) {
	out, err := t.ps(ctx, "ppid=", pid)
	if err != nil {
		return 0, err
	}

	ppid, err := strconv.ParseInt(out, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unexpected ppid %q: %w", out, err)
	}
	return int32(ppid), nil
}

// Name runs `ps -o comm= -p <pid>`
func (t *PSProcessTable) Name(ctx context.Context, pid int32) (string, error) {
	return t.ps(ctx, "comm=", pid)
}

func (t *PSProcessTable) ps(ctx context.Context, column string, pid int32) (string, error) {
	out, err := t.Runner.Run(ctx, "ps", "-o", column, "-p", strconv.Itoa(int(pid)))
	if err != nil {
		return "", err
	}

	value := strings.TrimSpace(string(out))
	if value == "" {
		return "", fmt.Errorf("pid %d: %w", pid, ErrNoProcess)
	}
	return value, nil
}

// GopsutilProcessTable queries the OS directly (Toolhelp on Windows)
type GopsutilProcessTable struct{}

// ParentPID returns the parent of pid
func (GopsutilProcessTable) ParentPID(ctx context.Context, pid int32) (int32, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return 0, fmt.Errorf("pid %d: %w", pid, ErrNoProcess)
	}
	return p.PpidWithContext(ctx)
}

// Name returns the executable image name of pid
func (GopsutilProcessTable) Name(ctx context.Context, pid int32) (string, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return "", fmt.Errorf("pid %d: %w", pid, ErrNoProcess)
	}
	return p.NameWithContext(ctx)
}

// NewProcessTable picks the process table for goos. Windows has no ps,
// so it reads the process snapshot through gopsutil.
func NewProcessTable(goos string, runner Runner) ProcessTable {
	if goos == "windows" {
		return GopsutilProcessTable{}
	}
	return &PSProcessTable{Runner: runner}
}

// parentName returns the command name of pid's parent
func parentName(ctx context.Context, procs ProcessTable, pid int32) (string, error) {
	ppid, err := procs.ParentPID(ctx, pid)
	if err != nil {
		return "", err
	}
	return procs.Name(ctx, ppid)
}

// commandName normalizes a ps comm value: "-zsh" or "/bin/zsh" become "zsh"
func commandName(comm string) string {
	return strings.TrimPrefix(baseName(strings.TrimSpace(comm)), "-")
}
