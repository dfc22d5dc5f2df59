package led

import (
	"fmt"
	"math"
)

// BlendMode is the compositing rule used when a color is drawn over a pixel
// that already holds one.
type BlendMode uint8

const (
	// BlendOver replaces the base color with the incoming color.
	BlendOver BlendMode = iota
	// BlendAlpha linearly interpolates from the base color towards the
	// incoming color by the alpha weight.
	BlendAlpha
	// BlendAdd adds the incoming color to the base color, saturating each
	// channel at 255.
	BlendAdd
)

// String returns a string representation of the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendOver:
		return "over"
	case BlendAlpha:
		return "alpha"
	case BlendAdd:
		return "add"
	default:
		return fmt.Sprintf("BlendMode(%d)", m)
	}
}

// Blend combines base and incoming under the given mode. Alpha is only used
// by BlendAlpha and is clamped to [0, 1]. Unknown modes behave as BlendOver.
func Blend(base, incoming RGBColor, mode BlendMode, alpha float64) RGBColor {
	switch mode {
	case BlendAlpha:
		return lerp(base, incoming, alpha)
	case BlendAdd:
		return RGBColor{
			addChannel(base[0], incoming[0]),
			addChannel(base[1], incoming[1]),
			addChannel(base[2], incoming[2]),
		}
	default:
		return incoming
	}
}

func lerp(base, incoming RGBColor, alpha float64) RGBColor {
	if alpha >= 1 {
		return incoming
	}
	if alpha <= 0 {
		return base
	}
	return RGBColor{
		lerpChannel(base[0], incoming[0], alpha),
		lerpChannel(base[1], incoming[1], alpha),
		lerpChannel(base[2], incoming[2], alpha),
	}
}

func lerpChannel(a, b uint8, alpha float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*alpha
	return uint8(math.Round(v))
}

func addChannel(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}
