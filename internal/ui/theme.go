package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Accent colors of the countdown.
var (
	pinkLight = color.NRGBA{R: 236, G: 72, B: 153, A: 255}  // pink-500
	pinkDark  = color.NRGBA{R: 244, G: 114, B: 182, A: 255} // pink-400
	trackLite = color.NRGBA{R: 229, G: 231, B: 235, A: 255} // gray-200
	trackDark = color.NRGBA{R: 55, G: 65, B: 81, A: 255}    // gray-700
)

// CountdownTheme pins the light or dark variant regardless of the OS setting.
type CountdownTheme struct {
	Dark bool
}

// NewCountdownTheme creates the theme for the given variant.
func NewCountdownTheme(dark bool) fyne.Theme {
	return &CountdownTheme{Dark: dark}
}

func (t *CountdownTheme) variant() fyne.ThemeVariant {
	if t.Dark {
		return theme.VariantDark
	}
	return theme.VariantLight
}

// Color returns theme colors
func (t *CountdownTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	v := t.variant()
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return accent(t.Dark)
	case theme.ColorNameBackground:
		if t.Dark {
			return color.NRGBA{R: 17, G: 24, B: 39, A: 255} // gray-900
		}
		return color.NRGBA{R: 243, G: 244, B: 246, A: 255} // gray-100
	case theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
		if t.Dark {
			return color.NRGBA{R: 31, G: 41, B: 55, A: 255} // gray-800
		}
		return color.White
	}
	return theme.DefaultTheme().Color(name, v)
}

// Font returns theme fonts
func (t *CountdownTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CountdownTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *CountdownTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

func accent(dark bool) color.Color {
	if dark {
		return pinkDark
	}
	return pinkLight
}

func track(dark bool) color.Color {
	if dark {
		return trackDark
	}
	return trackLite
}
