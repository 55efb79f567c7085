package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/monify-labs/hostfetch/internal/app"
	"github.com/monify-labs/hostfetch/internal/config"
	"github.com/monify-labs/hostfetch/internal/render"
)

func main() {
	command := "show"
	if len(os.Args) >= 2 {
		command = os.Args[1]
	}

	switch command {
	case "show":
		run(app.FormatText)
	case "json":
		run(app.FormatJSON)
	case "version":
		showVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`hostfetch - System information at a glance

Usage:
  hostfetch [command]

Commands:
  show      Show system information next to the OS logo (default)
  json      Print system information as JSON
  version   Show version information
  help      Show this help message

Environment Variables:
  HOSTFETCH_CONFIG   Config file path (default: %s)
  HOSTFETCH_TIMEOUT  Timeout for each external command, e.g. 3s (default: %s)
  HOSTFETCH_DEBUG    Enable debug logging (true/1)
  NO_COLOR           Disable color when color is "auto"

Logos:
  %s
`, config.GetConfigPath(), config.CommandTimeout, strings.Join(render.LogoNames(), ", "))
}

func run(format string) {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a, err := app.New(cfg, format, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	if err := a.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showVersion() {
	fmt.Printf("hostfetch v%s\n", config.Version)
	fmt.Printf("Commit: %s\n", config.Commit)
	fmt.Printf("Build Date: %s\n", config.BuildDate)
}
