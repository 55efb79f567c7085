package probe

import (
	"context"

	"github.com/monify-labs/hostfetch/pkg/models"
	"github.com/sirupsen/logrus"
)

// ShellProbe names the interactive shell of the current session
type ShellProbe struct {
	goos  string
	pid   int32
	env   Env
	procs ProcessTable
	log   logrus.FieldLogger
}

// NewShellProbe creates a shell probe for process pid on goos
func NewShellProbe(goos string, pid int32, env Env, procs ProcessTable, log logrus.FieldLogger) *ShellProbe {
	return &ShellProbe{goos: goos, pid: pid, env: env, procs: procs, log: log}
}

// Shell returns a short shell name such as "zsh" or "PowerShell".
// It never fails; the last resort is "Unknown Shell".
func (s *ShellProbe) Shell(ctx context.Context) string {
	if shell := getenv(s.env, "SHELL"); shell != "" {
		if name := baseName(shell); name != "" {
			return name
		}
	}

	if s.goos == "windows" {
		return s.windowsShell()
	}

	name, err := parentName(ctx, s.procs, s.pid)
	if err != nil {
		logProbeFailure(s.log, "shell", err)
		return models.UnknownShell
	}
	if name = commandName(name); name != "" {
		return name
	}
	return models.UnknownShell
}

func (s *ShellProbe) windowsShell() string {
	if getenv(s.env, "PSModulePath") != "" {
		return "PowerShell"
	}
	if comspec := getenv(s.env, "ComSpec"); comspec != "" {
		if name := trimExe(baseName(comspec)); name != "" {
			return name
		}
	}
	return "cmd"
}
