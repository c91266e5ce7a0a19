package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"piquant-gui/internal/config"
	"piquant-gui/internal/errors"
	"piquant-gui/internal/log"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version is set by main.go
var Version = "dev"

// Global flags
var (
	cfgFile string
	verbose bool
)

// settings is the configuration loaded before any subcommand runs.
var settings *config.Config

// rootCmd is the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "piquant-gui [IMAGE]",
	Short: "Front-end for the PIQUANT X-ray fluorescence analysis tool",
	Long: `piquant-gui collects the input files an analysis task needs, checks
that they exist and runs PIQUANT with the assembled argument list.

Without a subcommand the graphical interface opens, optionally with an
image preloaded. The subcommands run the same pipeline from a terminal.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// knownCommands are the first words that select CLI mode.
var knownCommands = map[string]bool{
	"run":    true,
	"tasks":  true,
	"config": true,
	"help":   true,
}

// ExitError carries a process exit status out of a command. The command
// has already reported the failure, so it is not printed again.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("PIQUANT exited with code %d", e.Code)
}

// handleError prints command errors, skipping exit statuses.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// Execute runs the CLI application.
// Returns true if CLI mode was activated, false if GUI should run instead.
func Execute(version string) bool {
	Version = version
	rootCmd.Version = version

	if !IsCLI(os.Args[1:]) {
		return false
	}

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
	return true
}

// IsCLI reports whether args ask for a subcommand, help or version rather
// than the GUI. Global flags are skipped; the first other word decides.
func IsCLI(args []string) bool {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--config":
			i++
		case strings.HasPrefix(a, "--config="), a == "--verbose":
		case strings.HasPrefix(a, "-"):
			return true
		default:
			return knownCommands[a]
		}
	}
	return false
}

// loadSettings reads the config file and sets up logging.
func loadSettings(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	settings = cfg
	if verbose {
		log.EnableDebugLogging()
		return nil
	}
	return cfg.ApplyLogging()
}

// currentSettings returns the loaded config, or defaults when none was loaded.
func currentSettings() *config.Config {
	if settings == nil {
		d := config.Default()
		return &d
	}
	return settings
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <user config dir>/piquant-gui/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging to stderr")
}
