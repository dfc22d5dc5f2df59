package led

// gammaTable maps a linear intensity to a perceptually corrected drive value.
// Tuned for WS2812B parts.
var gammaTable = [256]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2,
	2, 3, 3, 3, 3, 3, 3, 3, 4, 4, 4, 4, 4, 5, 5, 5,
	5, 6, 6, 6, 6, 7, 7, 7, 7, 8, 8, 8, 9, 9, 9, 10,
	10, 10, 11, 11, 11, 12, 12, 13, 13, 13, 14, 14, 15, 15, 16, 16,
	17, 17, 18, 18, 19, 19, 20, 20, 21, 21, 22, 22, 23, 24, 24, 25,
	25, 26, 27, 27, 28, 29, 29, 30, 31, 32, 32, 33, 34, 35, 35, 36,
	37, 38, 39, 39, 40, 41, 42, 43, 44, 45, 46, 47, 48, 49, 50, 50,
	51, 52, 54, 55, 56, 57, 58, 59, 60, 61, 62, 63, 64, 66, 67, 68,
	69, 70, 72, 73, 74, 75, 77, 78, 79, 81, 82, 83, 85, 86, 87, 89,
	90, 92, 93, 95, 96, 98, 99, 101, 102, 104, 105, 107, 109, 110, 112, 114,
	115, 117, 119, 120, 122, 124, 126, 127, 129, 131, 133, 135, 137, 138, 140, 142,
	144, 146, 148, 150, 152, 154, 156, 158, 160, 162, 164, 167, 169, 171, 173, 175,
	177, 180, 182, 184, 186, 189, 191, 193, 196, 198, 200, 203, 205, 208, 210, 213,
	215, 218, 220, 223, 225, 228, 231, 233, 236, 239, 241, 244, 247, 249, 252, 255,
}

// Gamma returns the gamma corrected value of a linear intensity.
func Gamma(v uint8) uint8 {
	return gammaTable[v]
}

// Scale8 scales v by scale/255, rounding to the nearest value. Scale8(v, 255)
// is v and Scale8(v, 0) is 0.
func Scale8(v, scale uint8) uint8 {
	return uint8((uint16(v)*uint16(scale) + 127) / 255)
}

// Corrector applies gamma correction and a brightness scale to colors before
// they are sent to the LEDs.
type Corrector struct {
	// Brightness is the output scale applied after gamma correction.
	Brightness uint8
}

// NewCorrector creates a corrector from a raw brightness reading. The reading
// is gamma corrected and then raised to at least minBrightness so that the
// ring never goes fully dark.
func NewCorrector(reading, minBrightness uint8) Corrector {
	b := Gamma(reading)
	if b < minBrightness {
		b = minBrightness
	}
	return Corrector{Brightness: b}
}

// Channel corrects a single channel value.
func (c Corrector) Channel(v uint8) uint8 {
	return Scale8(Gamma(v), c.Brightness)
}

// Color corrects every channel of a color.
func (c Corrector) Color(rgb RGBColor) RGBColor {
	return RGBColor{
		c.Channel(rgb[0]),
		c.Channel(rgb[1]),
		c.Channel(rgb[2]),
	}
}
