// Package ui provides the ScaleButton gallery application.
//
// This file defines a compact Fyne theme whose light/dark variant follows the
// gallery configuration.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/piwi3910/scalebutton/internal/model"
)

// GalleryTheme wraps the default Fyne theme with compact sizing overrides
// and an optional forced variant.
type GalleryTheme struct {
	base    fyne.Theme
	forced  bool
	variant fyne.ThemeVariant
}

// NewGalleryTheme creates a theme that follows the system variant.
func NewGalleryTheme() *GalleryTheme {
	return &GalleryTheme{base: theme.DefaultTheme()}
}

// SetVariantName forces the light or dark variant. Any other name, including
// model.ThemeSystem, follows the variant the driver asks for.
func (t *GalleryTheme) SetVariantName(name string) {
	switch name {
	case model.ThemeLight:
		t.forced, t.variant = true, theme.VariantLight
	case model.ThemeDark:
		t.forced, t.variant = true, theme.VariantDark
	default:
		t.forced = false
	}
}

// Color delegates to the base theme, substituting the forced variant.
func (t *GalleryTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.forced {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *GalleryTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *GalleryTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *GalleryTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
