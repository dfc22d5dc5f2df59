// Package led contains the LED color primitives: colors, frame buffers,
// blending and gamma correction.
package led

import (
	"encoding"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor is a color in RGB order, one byte per channel. It matches the
// order of bytes sent to the LED controller.
type RGBColor [3]uint8

var _ encoding.TextUnmarshaler = (*RGBColor)(nil)

// RGB creates a new RGBColor.
func RGB(r, g, b uint8) RGBColor {
	return RGBColor{r, g, b}
}

// Colors tweaked to look right on WS2812Bs.
var (
	Red     = RGB(255, 0, 0)
	Orange  = RGB(255, 78, 0)
	Yellow  = RGB(255, 237, 0)
	Green   = RGB(0, 255, 23)
	Cyan    = RGB(0, 247, 255)
	Blue    = RGB(0, 21, 255)
	Magenta = RGB(190, 0, 255)
	White   = RGB(255, 255, 255)
	Off     = RGB(0, 0, 0)
)

// NamedColors maps the accepted color names to their values.
var NamedColors = map[string]RGBColor{
	"red":     Red,
	"orange":  Orange,
	"yellow":  Yellow,
	"green":   Green,
	"cyan":    Cyan,
	"blue":    Blue,
	"magenta": Magenta,
	"white":   White,
	"off":     Off,
}

// ParseColor parses either a color name from NamedColors or a hex color such
// as "#ff5400".
func ParseColor(s string) (RGBColor, error) {
	if c, ok := NamedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Off, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return FromColorful(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RGBColor) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Hex returns the color as "#rrggbb".
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// String implements fmt.Stringer.
func (c RGBColor) String() string {
	return c.Hex()
}

// IsOff returns true if all channels are zero.
func (c RGBColor) IsOff() bool {
	return c == Off
}

// Scale multiplies every channel by factor, clamped to [0, 1], rounding to
// the nearest value.
func (c RGBColor) Scale(factor float64) RGBColor {
	switch {
	case factor <= 0:
		return Off
	case factor >= 1:
		return c
	}
	return RGBColor{
		uint8(math.Round(float64(c[0]) * factor)),
		uint8(math.Round(float64(c[1]) * factor)),
		uint8(math.Round(float64(c[2]) * factor)),
	}
}

// Colorful converts the color into a colorful.Color.
func (c RGBColor) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c[0]) / 255,
		G: float64(c[1]) / 255,
		B: float64(c[2]) / 255,
	}
}

// FromColorful converts a colorful.Color, clamping out-of-gamut values.
func FromColorful(c colorful.Color) RGBColor {
	r, g, b := c.Clamped().RGB255()
	return RGBColor{r, g, b}
}

// RotateHue returns the color with its hue shifted by the given number of
// degrees. Saturation and value are kept.
func (c RGBColor) RotateHue(degrees float64) RGBColor {
	h, s, v := c.Colorful().Hsv()
	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}
	return FromColorful(colorful.Hsv(h, s, v))
}

// Hue returns a fully saturated, full value color of the given hue in
// degrees.
func Hue(degrees float64) RGBColor {
	h := math.Mod(degrees, 360)
	if h < 0 {
		h += 360
	}
	return FromColorful(colorful.Hsv(h, 1, 1))
}
