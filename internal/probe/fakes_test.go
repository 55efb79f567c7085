package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// fakeRunner returns canned output keyed by command name
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	if out, ok := f.outputs[name]; ok {
		return []byte(out), nil
	}
	return nil, fmt.Errorf("%s: %w", name, ErrCommandNotFound)
}

// failingRunner fails every command the same way
type failingRunner struct{ err error }

func (f failingRunner) Run(context.Context, string, ...string) ([]byte, error) {
	return nil, f.err
}

// fakeProcs is an in-memory process table
type fakeProcs struct {
	parents map[int32]int32
	names   map[int32]string
}

func (f fakeProcs) ParentPID(_ context.Context, pid int32) (int32, error) {
	ppid, ok := f.parents[pid]
	if !ok {
		return 0, fmt.Errorf("pid %d: %w", pid, ErrNoProcess)
	}
	return ppid, nil
}

func (f fakeProcs) Name(_ context.Context, pid int32) (string, error) {
	name, ok := f.names[pid]
	if !ok {
		return "", fmt.Errorf("pid %d: %w", pid, ErrNoProcess)
	}
	return name, nil
}

// brokenProcs fails every lookup
type brokenProcs struct{}

func (brokenProcs) ParentPID(context.Context, int32) (int32, error) {
	return 0, errors.New("process table unavailable")
}

func (brokenProcs) Name(context.Context, int32) (string, error) {
	return "", errors.New("process table unavailable")
}

// chain builds a process table where 100 -> 50 -> 10, with the given names
func chain(self, parent, grandparent string) fakeProcs {
	return fakeProcs{
		parents: map[int32]int32{100: 50, 50: 10},
		names:   map[int32]string{100: self, 50: parent, 10: grandparent},
	}
}
