package clockface

import "libdb.so/ringclock/internal/led"

// Scheme is a named palette for the clock hands.
type Scheme struct {
	Name   string       `toml:"name"`
	Hour   led.RGBColor `toml:"hour"`
	Minute led.RGBColor `toml:"minute"`
	Second led.RGBColor `toml:"second"`
}

// Catalog is an ordered list of color schemes.
type Catalog []Scheme

// DefaultCatalog is the built-in list of color schemes.
var DefaultCatalog = Catalog{
	{"primary", led.Red, led.Green, led.Blue},
	{"frost", led.White, led.White, led.RGB(0, 130, 255)},
	{"ember", led.White, led.White, led.RGB(255, 25, 0)},
	{"dusk", led.RGB(64, 0, 128), led.RGB(255, 72, 0), led.RGB(255, 164, 0)},
	{"sunrise", led.RGB(255, 25, 0), led.RGB(255, 84, 0), led.RGB(255, 224, 0)},
	{"ocean", led.RGB(0, 0, 255), led.RGB(0, 84, 255), led.RGB(0, 255, 255)},
	{"neon", led.RGB(255, 0, 96), led.RGB(255, 84, 0), led.RGB(0, 255, 164)},
}

// Len returns the number of schemes.
func (c Catalog) Len() int {
	return len(c)
}

// Get returns the scheme at index i. The index wraps around, so any value is
// valid as long as the catalog is not empty.
func (c Catalog) Get(i int) Scheme {
	n := len(c)
	return c[((i%n)+n)%n]
}
