package probe

import (
	"context"
	"strings"

	"github.com/monify-labs/hostfetch/pkg/models"
	"github.com/sirupsen/logrus"
)

// terminalVar maps an environment variable to a terminal name. An empty
// name means the variable's own value is the answer.
type terminalVar struct {
	key    string
	name   string
	prefix string
}

// terminalVars is checked in order; the first variable set wins
var terminalVars = []terminalVar{
	{key: "TERM_PROGRAM"},
	{key: "TERMINAL_EMULATOR"},
	{key: "KONSOLE_VERSION", name: "Konsole"},
	{key: "GNOME_TERMINAL_SCREEN", name: "GNOME Terminal"},
	{key: "GNOME_TERMINAL_SERVICE", name: "GNOME Terminal"},
	{key: "KITTY_WINDOW_ID", name: "kitty"},
	{key: "ALACRITTY_SOCKET", name: "Alacritty"},
	{key: "ALACRITTY_LOG", name: "Alacritty"},
	{key: "WEZTERM_EXECUTABLE", name: "WezTerm"},
	{key: "TILIX_ID", name: "Tilix"},
	{key: "TERMINATOR_UUID", name: "Terminator"},
	{key: "XTERM_VERSION", prefix: "xterm "},
}

// windowsTerminalVars are session markers set by Windows console hosts
var windowsTerminalVars = []terminalVar{
	{key: "WT_SESSION", name: "Windows Terminal"},
	{key: "ConEmuPID", name: "ConEmu"},
	{key: "ConEmuANSI", name: "ConEmu"},
	{key: "CMDER_ROOT", name: "Cmder"},
}

// windowsHostNames maps lower-case image names without .exe
var windowsHostNames = map[string]string{
	"windowsterminal": "Windows Terminal",
	"conemu":          "ConEmu",
	"conemu64":        "ConEmu",
	"conemuc":         "ConEmu",
	"conemuc64":       "ConEmu",
	"cmd":             "Command Prompt",
	"powershell":      "PowerShell",
	"pwsh":            "PowerShell Core",
}

// TerminalProbe names the terminal emulator hosting the session
type TerminalProbe struct {
	goos  string
	pid   int32
	env   Env
	procs ProcessTable
	log   logrus.FieldLogger
}

// NewTerminalProbe creates a terminal probe for process pid on goos
func NewTerminalProbe(goos string, pid int32, env Env, procs ProcessTable, log logrus.FieldLogger) *TerminalProbe {
	return &TerminalProbe{goos: goos, pid: pid, env: env, procs: procs, log: log}
}

// Terminal returns the emulator name. It never fails; the last resort
// is "Unknown Terminal" ("Command Prompt" on Windows).
func (t *TerminalProbe) Terminal(ctx context.Context) string {
	if name, ok := t.fromVars(terminalVars); ok {
		return name
	}

	if t.goos == "windows" {
		return t.windowsTerminal(ctx)
	}
	return t.unixTerminal(ctx)
}

func (t *TerminalProbe) fromVars(vars []terminalVar) (string, bool) {
	for _, v := range vars {
		value := getenv(t.env, v.key)
		if value == "" {
			continue
		}
		switch {
		case v.prefix != "":
			return v.prefix + value, true
		case v.name != "":
			return v.name, true
		default:
			return value, true
		}
	}
	return "", false
}

// windowsTerminal checks host markers, then walks up to the process
// hosting our parent shell: self -> parent -> grandparent.
func (t *TerminalProbe) windowsTerminal(ctx context.Context) string {
	if name, ok := t.fromVars(windowsTerminalVars); ok {
		return name
	}

	image, err := t.hostImage(ctx)
	if err != nil {
		logProbeFailure(t.log, "terminal", err)
		return "Command Prompt"
	}

	base := trimExe(baseName(image))
	if name, ok := windowsHostNames[strings.ToLower(base)]; ok {
		return name
	}
	if base != "" {
		return base
	}
	return "Command Prompt"
}

// hostImage returns the grandparent's image name, or the parent's when
// the grandparent has exited
func (t *TerminalProbe) hostImage(ctx context.Context) (string, error) {
	parent, err := t.procs.ParentPID(ctx, t.pid)
	if err != nil {
		return "", err
	}

	if image, err := parentName(ctx, t.procs, parent); err == nil && image != "" {
		return image, nil
	}
	return t.procs.Name(ctx, parent)
}

func (t *TerminalProbe) unixTerminal(ctx context.Context) string {
	term := getenv(t.env, "TERM")

	switch term {
	case "xterm", "xterm-256color":
		name, err := parentName(ctx, t.procs, t.pid)
		if err != nil {
			logProbeFailure(t.log, "terminal", err)
			return "xterm"
		}
		if name = commandName(name); name != "" && name != "sh" && name != "bash" {
			return name
		}
		return "xterm"
	case "screen":
		return "GNU Screen"
	case "tmux":
		return "tmux"
	}

	switch {
	case strings.Contains(term, "kitty"):
		return "kitty"
	case strings.Contains(term, "alacritty"):
		return "Alacritty"
	}

	return models.UnknownTerminal
}
