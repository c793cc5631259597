// Package main is the entry point for the inputpulse probe.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/inputpulse/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() (app.Options, error) {
	opts := app.DefaultOptions()

	// Environment first, so flags override it.
	if err := opts.ApplyEnv(); err != nil {
		return opts, err
	}

	var showVersion bool

	flag.StringVar(&opts.ProfilePath, "profile", opts.ProfilePath, "Path to activation profile (.toml or .json)")
	flag.StringVar(&opts.ProfilePath, "p", opts.ProfilePath, "Path to activation profile (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", opts.ScriptPath, "Drive edges from a Lua script instead of the terminal")
	flag.IntVar(&opts.Rate, "rate", opts.Rate, "Sampling rate in ticks per second")
	flag.BoolVar(&opts.Watch, "watch", opts.Watch, "Reload the profile when its file changes")
	flag.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogPath, "log", opts.LogPath, "Append logs to a file")
	flag.BoolVar(&opts.Debug, "debug", opts.Debug, "Enable debug logging")
	flag.BoolVar(&opts.Debug, "d", opts.Debug, "Enable debug logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Inputpulse - per-tick input activation probe\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inputpulse -profile <file> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  inputpulse -p profile.toml                   Interactive terminal probe\n")
		fmt.Fprintf(os.Stderr, "  inputpulse -p profile.toml -rate 60          Sample at 60 ticks per second\n")
		fmt.Fprintf(os.Stderr, "  inputpulse -p profile.json -script demo.lua  Replay scripted edges headless\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("inputpulse %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts, nil
}
