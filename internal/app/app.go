// Package app wires config, collector and renderer into a single run.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/monify-labs/hostfetch/internal/collector"
	"github.com/monify-labs/hostfetch/internal/config"
	"github.com/monify-labs/hostfetch/internal/render"
	"github.com/monify-labs/hostfetch/pkg/models"
	"github.com/sirupsen/logrus"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Collector produces a snapshot
type Collector interface {
	Collect(ctx context.Context) (*models.SystemInfo, error)
}

// App runs one collection and renders it
type App struct {
	log       *logrus.Logger
	collector Collector
	renderer  render.Renderer
	out       io.Writer
}

// NewLogger creates the process logger. Probes log recovered failures at
// debug level, so normal runs print nothing here.
func NewLogger(debug bool, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// New creates an app writing format to out, with logs going to errOut
func New(cfg *config.Config, format string, out *os.File, errOut io.Writer) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	log := NewLogger(cfg.Debug, errOut)

	var renderer render.Renderer
	switch format {
	case FormatText, "":
		renderer = render.NewTextRenderer(render.TextOptions{
			Gap:   cfg.Gap,
			Color: render.ColorEnabled(cfg.Color, out),
			Logo:  cfg.Logo,
		})
	case FormatJSON:
		renderer = render.NewJSONRenderer()
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}

	c := collector.New(collector.Options{
		Timeout: cfg.CommandTimeout,
		Log:     log,
	})

	log.WithFields(logrus.Fields{
		"version": config.Version,
		"timeout": cfg.CommandTimeout,
		"format":  format,
	}).Debug("Starting hostfetch")

	return NewWithCollector(log, c, renderer, out), nil
}

// NewWithCollector creates an app from already built parts
func NewWithCollector(log *logrus.Logger, c Collector, r render.Renderer, out io.Writer) *App {
	return &App{
		log:       log,
		collector: c,
		renderer:  r,
		out:       out,
	}
}

// Run collects once and renders the snapshot. Cancelling ctx stops any
// running probe commands and returns the context error.
func (a *App) Run(ctx context.Context) error {
	info, err := a.collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect system info: %w", err)
	}

	if err := a.renderer.Render(a.out, info); err != nil {
		return fmt.Errorf("failed to render system info: %w", err)
	}
	return nil
}
