package model

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Blend factors used to derive hover and splash colors from the background.
const (
	hoverBlend  = 0.12
	splashBlend = 0.28
)

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa" into an NRGBA color.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse alpha of %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// Palette is the set of resolved colors a button paints with.
type Palette struct {
	Background color.Color
	Hover      color.Color
	Splash     color.Color
	TempText   color.Color
}

// Palette resolves the style's hex colors. Unset or invalid hover and splash
// colors are derived from the background; with no background they fall back
// to the given theme colors.
func (s ButtonStyle) Palette(fallbackHover, fallbackSplash, fallbackText color.Color) Palette {
	p := Palette{
		Background: color.Transparent,
		Hover:      fallbackHover,
		Splash:     fallbackSplash,
		TempText:   fallbackText,
	}

	bg, bgErr := ParseHexColor(s.BackgroundColor)
	if bgErr == nil {
		p.Background = bg
		p.Hover = blendTowardsWhite(bg, hoverBlend)
		p.Splash = blendTowardsWhite(bg, splashBlend)
	}
	if c, err := ParseHexColor(s.HoverColor); err == nil {
		p.Hover = c
	}
	if c, err := ParseHexColor(s.SplashColor); err == nil {
		p.Splash = c
	}
	if c, err := ParseHexColor(s.TempButtonTextColor); err == nil {
		p.TempText = c
	}
	return p
}

func blendTowardsWhite(c color.NRGBA, t float64) color.NRGBA {
	base, ok := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	if !ok {
		return c
	}
	r, g, b := base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: c.A}
}
