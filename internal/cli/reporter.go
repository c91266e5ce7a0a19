// Package cli provides command-line interface functionality for the PIQUANT front-end.
package cli

import (
	"fmt"
	"image/color"
	"io"
	"sync"

	"piquant-gui/internal/app"
)

// Ensure Reporter implements app.Reporter
var _ app.Reporter = (*Reporter)(nil)

// Reporter implements app.Reporter for terminal output.
// PIQUANT output goes to out; status lines go to errOut.
type Reporter struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	quiet   bool
	styled  bool
	working bool
}

// NewReporter creates a new CLI reporter.
// If quiet is true, only PIQUANT output is printed.
func NewReporter(out, errOut io.Writer, quiet bool) *Reporter {
	return &Reporter{
		out:    out,
		errOut: errOut,
		quiet:  quiet,
		styled: isTerminal(errOut),
	}
}

// SetStatus prints the status message.
func (r *Reporter) SetStatus(text string, c color.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.quiet {
		return
	}
	fmt.Fprintln(r.errOut, render(r.styled, statusStyle(c), "● "+text))
}

// AppendOutput copies PIQUANT output to the terminal.
func (r *Reporter) AppendOutput(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, text)
}

// SetWorking records whether PIQUANT is running.
func (r *Reporter) SetWorking(working bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.working = working
}

// Update is a no-op; every call already prints.
func (r *Reporter) Update() {}
