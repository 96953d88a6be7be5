package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AppTheme is the zPrint theme: light and dark variants matching the preview
// backgrounds, with slightly compacted paddings and text sizes.
type AppTheme struct {
	dark bool
}

// NewAppTheme creates the theme for the requested variant
func NewAppTheme(dark bool) fyne.Theme {
	return &AppTheme{dark: dark}
}

// Color returns theme colors
func (t *AppTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	variant := theme.VariantLight
	if t.dark {
		variant = theme.VariantDark
	}

	switch name {
	case theme.ColorNameBackground:
		if t.dark {
			return color.RGBA{R: 0x0f, G: 0x11, B: 0x15, A: 255} // matches dark previews
		}
		return color.RGBA{R: 0xf4, G: 0xf5, B: 0xf8, A: 255} // matches light previews
	case theme.ColorNamePrimary:
		return color.RGBA{R: 25, G: 118, B: 210, A: 255} // blue for primary actions
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255} // green for active models
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255} // red for errors
	case theme.ColorNameForeground:
		if t.dark {
			return color.RGBA{R: 235, G: 238, B: 243, A: 255}
		}
		return color.RGBA{R: 33, G: 33, B: 33, A: 255}
	}

	// Use default colors for everything else
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3 // Reduced from default 4
	case theme.SizeNameInnerPadding:
		return 6 // Reduced from default 8
	case theme.SizeNameText:
		return 13 // Reduced from default 14
	case theme.SizeNameHeadingText:
		return 16 // Reduced from default 18
	case theme.SizeNameCaptionText:
		return 10 // Reduced from default 11
	}

	return theme.DefaultTheme().Size(name)
}
