package cli

import (
	"image/color"
	"io"
	"os"

	"piquant-gui/internal/util"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette shared by all terminal output.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorError     = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	CmdStyle     = lipgloss.NewStyle().Foreground(ColorHighlight)
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// statusStyle maps a GUI status color to its terminal style.
func statusStyle(c color.RGBA) lipgloss.Style {
	switch c {
	case util.GREEN:
		return SuccessStyle
	case util.RED:
		return ErrorStyle
	case util.YELLOW:
		return WarningStyle
	default:
		return lipgloss.NewStyle()
	}
}

// render applies s only when styled is true.
func render(styled bool, s lipgloss.Style, text string) string {
	if !styled {
		return text
	}
	return s.Render(text)
}
