//go:build !cli

package main

import (
	"fmt"
	"os"

	"piquant-gui/internal/cli"
	"piquant-gui/internal/config"
	"piquant-gui/internal/log"
	"piquant-gui/internal/ui"
)

// run is the GUI+CLI entry point.
// It first checks for CLI subcommands, and if none are found, launches the GUI.
func run() {
	if cli.Execute(version) {
		return
	}

	opts, err := cli.ParseGUIArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: piquant-gui [--config path] [--verbose] [IMAGE]")
		os.Exit(2)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if opts.Verbose {
		log.EnableDebugLogging()
	} else if err := cfg.ApplyLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// A missing image is not fatal; the window opens without it
	if err := opts.CheckImage(); err != nil {
		log.Warn("Ignoring image", log.Err(err))
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		opts.Image = ""
	}

	app, err := ui.NewApp(version, ui.Options{Image: opts.Image, Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	app.Run()
}
