package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB colour with straight alpha.
type Color struct {
	colorful.Color
	A float64
}

// Transparent is the zero-alpha colour.
var Transparent = Color{}

// RGB returns an opaque colour from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, A: 1}
}

var namedColors = map[string]Color{
	"black":   RGB(0, 0, 0),
	"white":   RGB(255, 255, 255),
	"red":     RGB(255, 0, 0),
	"green":   RGB(0, 128, 0),
	"blue":    RGB(0, 0, 255),
	"yellow":  RGB(255, 255, 0),
	"cyan":    RGB(0, 255, 255),
	"magenta": RGB(255, 0, 255),
	"gray":    RGB(128, 128, 128),
	"grey":    RGB(128, 128, 128),
	"orange":  RGB(255, 165, 0),
	"purple":  RGB(128, 0, 128),
}

// ParseColor parses a named colour, "transparent", or a hex colour in
// #rgb, #rrggbb or #rrggbbaa form.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return Transparent, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, errors.Newf("parse colour %q: not a name or hex value", s)
	}
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, errors.Wrapf(err, "parse colour %q", s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrapf(err, "parse colour %q", s)
	}
	return Color{Color: c, A: alpha}, nil
}

// WithOpacity scales the alpha channel by o.
func (c Color) WithOpacity(o float64) Color {
	c.A *= o
	return c
}

// Over composites c over bg.
func (c Color) Over(bg Color) Color {
	if c.A >= 1 || bg.A <= 0 {
		return c
	}
	a := c.A + bg.A*(1-c.A)
	if a <= 0 {
		return Transparent
	}
	// Blend in linear RGB, weighted by each layer's contribution.
	mixed := bg.BlendLinearRgb(c.Color, c.A/a)
	return Color{Color: mixed.Clamped(), A: a}
}

// RGBA8 returns 8-bit channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	r, g, b = c.Clamped().RGB255()
	return r, g, b, uint8(c.A*255 + 0.5)
}

// String renders the colour as #rrggbb, or #rrggbbaa when translucent.
func (c Color) String() string {
	r, g, b, a := c.RGBA8()
	if a == 255 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}
