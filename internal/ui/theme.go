package ui

import (
	"image/color"

	"piquant-gui/internal/util"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CompactTheme is a dark, dense theme for the PIQUANT form.
// The status line is drawn in util.WHITE, so the theme always renders the
// dark variant regardless of the system preference.
type CompactTheme struct{}

var _ fyne.Theme = (*CompactTheme)(nil)

// NewCompactTheme creates the application theme.
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns the color for the specified name. The variant is ignored.
func (c *CompactTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameForeground:
		return color.RGBA{R: 0xF5, G: 0xF5, B: 0xF5, A: 0xFF}
	case theme.ColorNamePlaceHolder:
		return color.RGBA{R: 0xA0, G: 0xA0, B: 0xA0, A: 0xFF}
	case theme.ColorNameDisabled:
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	case theme.ColorNameInputBackground:
		return color.RGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xFF}
	case theme.ColorNameInputBorder:
		return color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xFF}
	case theme.ColorNameSuccess:
		return util.GREEN
	case theme.ColorNameWarning:
		return util.YELLOW
	case theme.ColorNameError:
		return util.RED
	default:
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
}

// Font returns the font resource for the specified text style.
func (c *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns the icon resource for the specified name.
func (c *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns the size for the specified name.
// Slot rows are stacked nine deep, so padding is tighter than the default.
func (c *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 11
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameInputBorder:
		return 2
	case theme.SizeNameInputRadius:
		return 4
	default:
		return theme.DefaultTheme().Size(name)
	}
}
