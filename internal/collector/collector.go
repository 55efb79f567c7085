// Package collector assembles a host snapshot from the individual probes.
package collector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/monify-labs/hostfetch/internal/config"
	"github.com/monify-labs/hostfetch/internal/probe"
	"github.com/monify-labs/hostfetch/pkg/format"
	"github.com/monify-labs/hostfetch/pkg/models"
	"github.com/sirupsen/logrus"
)

// ErrHostQuery is returned when the OS cannot describe the host at all
var ErrHostQuery = errors.New("host query failed")

// IPResolver finds the local address shown in the snapshot
type IPResolver interface {
	LocalIP(ctx context.Context) string
}

// ShellNamer names the interactive shell
type ShellNamer interface {
	Shell(ctx context.Context) string
}

// TerminalNamer names the terminal emulator
type TerminalNamer interface {
	Terminal(ctx context.Context) string
}

// Options wires the collector to its facilities. Zero fields are filled
// with the real implementations for the running platform.
type Options struct {
	GOOS    string
	PID     int32
	Timeout time.Duration // per external command
	Env     probe.Env
	Runner  probe.Runner
	Source  probe.Source
	Log     logrus.FieldLogger

	Procs    probe.ProcessTable
	GPUs     probe.GPULister
	Network  IPResolver
	Shell    ShellNamer
	Terminal TerminalNamer
}

// Collector runs every probe once per Collect call
type Collector struct {
	source   probe.Source
	env      probe.Env
	gpus     probe.GPULister
	network  IPResolver
	shell    ShellNamer
	terminal TerminalNamer
	log      logrus.FieldLogger
}

// New creates a collector. The GPU strategy is chosen here, once.
func New(opts Options) *Collector {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.PID == 0 {
		opts.PID = int32(os.Getpid())
	}
	if opts.Env == nil {
		opts.Env = probe.OSEnv{}
	}
	if opts.Log == nil {
		log := logrus.New()
		log.SetLevel(logrus.WarnLevel)
		opts.Log = log
	}
	if opts.Runner == nil {
		if opts.Timeout <= 0 {
			opts.Timeout = config.CommandTimeout
		}
		opts.Runner = probe.NewCommandRunner(opts.Timeout, opts.Log)
	}
	if opts.Source == nil {
		opts.Source = probe.GopsutilSource{}
	}
	if opts.Procs == nil {
		opts.Procs = probe.NewProcessTable(opts.GOOS, opts.Runner)
	}
	if opts.GPUs == nil {
		opts.GPUs = probe.NewGPULister(opts.GOOS, opts.Runner, opts.Log)
	}
	if opts.Network == nil {
		opts.Network = probe.NewNetworkProbe(opts.Log)
	}
	if opts.Shell == nil {
		opts.Shell = probe.NewShellProbe(opts.GOOS, opts.PID, opts.Env, opts.Procs, opts.Log)
	}
	if opts.Terminal == nil {
		opts.Terminal = probe.NewTerminalProbe(opts.GOOS, opts.PID, opts.Env, opts.Procs, opts.Log)
	}

	return &Collector{
		source:   opts.Source,
		env:      opts.Env,
		gpus:     opts.GPUs,
		network:  opts.Network,
		shell:    opts.Shell,
		terminal: opts.Terminal,
		log:      opts.Log,
	}
}

// Collect runs all probes in sequence and returns a fresh snapshot.
// Probe failures become sentinel values; only a host query that yields
// nothing, or cancellation of ctx, fails the whole collection.
func (c *Collector) Collect(ctx context.Context) (*models.SystemInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Host identity
	host, err := c.source.Host(ctx)
	if host == nil {
		if err == nil {
			err = errors.New("no host information")
		}
		return nil, fmt.Errorf("%w: %w", ErrHostQuery, err)
	}
	if err != nil {
		c.warn("host", err)
	}

	hostname := host.Hostname
	if hostname == "" {
		hostname, _ = os.Hostname()
	}

	// CPU
	cores, err := c.source.Cores(ctx)
	if err != nil {
		c.warn("cpu", err)
	}
	cpus := probe.AggregateCPUs(cores)

	// Memory and disk
	memTotal, memUsed, err := c.source.Memory(ctx)
	if err != nil {
		c.warn("memory", err)
	}
	diskTotal, diskUsed, err := c.source.Disk(ctx)
	if err != nil {
		c.warn("disk", err)
	}

	// GPUs, network and session
	gpus := c.gpus.ListGPUs(ctx)
	localIP := c.network.LocalIP(ctx)
	shell := c.shell.Shell(ctx)
	terminal := c.terminal.Terminal(ctx)

	// Probes swallow their own errors, so a shutdown mid-pass shows up here
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info := &models.SystemInfo{
		OSName:        orUnknown(host.OSName),
		OSVersion:     orUnknown(host.OSVersion),
		Arch:          orUnknown(host.Arch),
		KernelVersion: orUnknown(host.KernelVersion),
		Hostname:      orUnknown(hostname),
		Username:      orUnknown(c.username()),
		Uptime:        format.Uptime(host.UptimeSeconds),
		CPUs:          cpus,
		MemoryTotal:   memTotal,
		MemoryUsed:    memUsed,
		DiskTotal:     diskTotal,
		DiskUsed:      diskUsed,
		GPUs:          gpus,
		LocalIP:       orSentinel(localIP, models.UnknownIP),
		Shell:         orSentinel(shell, models.UnknownShell),
		Terminal:      orSentinel(terminal, models.UnknownTerminal),
	}
	if len(info.GPUs) == 0 {
		info.GPUs = models.UnknownGPUs()
	}

	c.log.WithFields(logrus.Fields{
		"os":    info.OSName,
		"cpus":  len(info.CPUs),
		"cores": info.TotalCores(),
		"gpus":  len(info.GPUs),
	}).Debug("Collected system info")

	return info, nil
}

// username reads USER, then USERNAME on Windows
func (c *Collector) username() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if v, ok := c.env.Lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (c *Collector) warn(part string, err error) {
	c.log.WithError(err).WithField("probe", part).Debug("Partial collection failure")
}

func orUnknown(s string) string {
	return orSentinel(s, models.Unknown)
}

func orSentinel(s, sentinel string) string {
	if strings.TrimSpace(s) == "" {
		return sentinel
	}
	return s
}
