package led

import "unsafe"

// LEDs describes a strip of LEDs. It is a preallocated slice of RGBColor.
type LEDs []RGBColor

// NewLEDs creates a new strip of LEDs. Colors are initialized to black
// (off).
func NewLEDs(numLEDs int) LEDs {
	return make(LEDs, numLEDs)
}

// AsPixels returns the LED strip as a slice of uint8 values. Each LED is
// represented by three values, one for each color channel. The returned slice
// shares memory with l.
func (l LEDs) AsPixels() []uint8 {
	if len(l) == 0 {
		return nil
	}
	return unsafe.Slice((*uint8)(unsafe.Pointer(&l[0])), 3*len(l))
}

// Blend blends c into the LED at the given index.
func (l LEDs) Blend(i int, c RGBColor, mode BlendMode, alpha float64) {
	l[i] = Blend(l[i], c, mode, alpha)
}

// Clear turns every LED off.
func (l LEDs) Clear() {
	for i := range l {
		l[i] = Off
	}
}

// Fade scales every LED by the given factor in [0, 1], rounding down so that
// repeated fading always reaches black.
func (l LEDs) Fade(factor float64) {
	if factor >= 1 {
		return
	}
	if factor <= 0 {
		l.Clear()
		return
	}
	for i, c := range l {
		l[i] = RGBColor{
			uint8(float64(c[0]) * factor),
			uint8(float64(c[1]) * factor),
			uint8(float64(c[2]) * factor),
		}
	}
}

// Correct applies the corrector to every LED in place.
func (l LEDs) Correct(c Corrector) {
	for i := range l {
		l[i] = c.Color(l[i])
	}
}
