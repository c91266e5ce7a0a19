package cli

import (
	"fmt"
	"os"

	"piquant-gui/internal/errors"

	"github.com/spf13/pflag"
)

// GUIOptions are the command-line settings of a GUI launch.
type GUIOptions struct {
	Image      string // Optional image to preload
	ConfigPath string
	Verbose    bool
}

// ParseGUIArgs parses "[--config path] [--verbose] [IMAGE]".
func ParseGUIArgs(args []string) (GUIOptions, error) {
	var opts GUIOptions
	fs := pflag.NewFlagSet("piquant-gui", pflag.ContinueOnError)
	fs.SetOutput(nopWriter{})
	fs.StringVar(&opts.ConfigPath, "config", "", "config file")
	fs.BoolVar(&opts.Verbose, "verbose", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		opts.Image = fs.Arg(0)
	default:
		return opts, fmt.Errorf("expected at most one image, got %d arguments", fs.NArg())
	}
	return opts, nil
}

// CheckImage verifies that the preload image exists. No image is not an error.
func (o GUIOptions) CheckImage() error {
	if o.Image == "" {
		return nil
	}
	if _, err := os.Stat(o.Image); err != nil {
		return errors.NewFileError("stat", o.Image, errors.ErrFileNotFound)
	}
	return nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
