// Package clockface renders the time of day onto a ring of LEDs and keeps
// track of the selected clock mode and color scheme.
package clockface

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall clock time snapshot. Hours are in [0, 24), minutes and
// seconds are in [0, 60).
type TimeOfDay struct {
	Hours   int
	Minutes int
	Seconds int
}

// TimeOfDayFrom returns the wall clock time of t in its own location.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay{Hours: h, Minutes: m, Seconds: s}
}

// String formats the time as "15:04:05".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

// Mode is a clock mode, a visual style for displaying the time.
type Mode uint8

const (
	// RingClock draws every hand as an anti-aliased halo, later hands
	// alpha-blended over earlier ones.
	RingClock Mode = iota
	// DotClock draws every hand as a single pixel.
	DotClock
	// DotClockTrail is DotClock with a fading trail behind every hand.
	DotClockTrail
	// DotClockGlow draws every hand as a halo, overlapping halos adding up.
	DotClockGlow
	// DotClockColorChange is DotClock with the scheme hue rotating once an
	// hour.
	DotClockColorChange
	// DotClockTimeColor is DotClock with every hand colored by its own
	// position on the ring.
	DotClockTimeColor

	// ModeCount is the number of clock modes.
	ModeCount
)

var modeNames = [ModeCount]string{
	RingClock:           "ring",
	DotClock:            "dot",
	DotClockTrail:       "dot-trail",
	DotClockGlow:        "dot-glow",
	DotClockColorChange: "dot-color-change",
	DotClockTimeColor:   "dot-time-color",
}

// String returns a string representation of the mode.
func (m Mode) String() string {
	if m < ModeCount {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	return (m + 1) % ModeCount
}

// Valid returns true if m is a known mode.
func (m Mode) Valid() bool {
	return m < ModeCount
}
