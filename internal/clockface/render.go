package clockface

import (
	"math"

	"libdb.so/ringclock/internal/led"
)

// Options configures a Renderer.
type Options struct {
	// RingSize is the number of LEDs on the ring.
	RingSize int
	// TwelveHour makes the hour hand go around twice a day instead of once.
	TwelveHour bool
	// ShowSecondHand enables the second hand.
	ShowSecondHand bool
	// Reverse makes indices run counter-clockwise.
	Reverse bool
	// HourGlowWidth, MinuteGlowWidth and SecondGlowWidth are the number of
	// pixels a halo spreads in each direction of its center.
	HourGlowWidth   float64
	MinuteGlowWidth float64
	SecondGlowWidth float64
	// TrailDecay is the factor trails are multiplied by every frame.
	TrailDecay float64
}

// DefaultOptions returns the options for a 24 LED ring.
func DefaultOptions() Options {
	return Options{
		RingSize:        24,
		TwelveHour:      true,
		ShowSecondHand:  true,
		HourGlowWidth:   2,
		MinuteGlowWidth: 1.5,
		SecondGlowWidth: 1,
		TrailDecay:      0.95,
	}
}

// Positions are the continuous positions of the hands, in pixels from the
// 12 o'clock pixel going clockwise. Every position is in [0, RingSize).
type Positions struct {
	Hour   float64
	Minute float64
	Second float64
}

// Renderer draws frames of a clock face. Pixel 0 is the 12 o'clock position
// and indices increase clockwise, unless Reverse is set.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	opts  Options
	frame led.LEDs
	// trail is only used by DotClockTrail and survives across frames.
	trail    led.LEDs
	lastMode Mode
}

// NewRenderer creates a new renderer. It panics if the ring size is not
// positive.
func NewRenderer(opts Options) *Renderer {
	if opts.RingSize < 1 {
		panic("clockface: ring size must be positive")
	}
	return &Renderer{
		opts:     opts,
		frame:    led.NewLEDs(opts.RingSize),
		trail:    led.NewLEDs(opts.RingSize),
		lastMode: ModeCount,
	}
}

// Positions computes the hand positions for the given time. The hour hand
// sweeps with the minutes and seconds, and the minute hand with the seconds.
func (r *Renderer) Positions(t TimeOfDay) Positions {
	n := float64(r.opts.RingSize)

	hourSpan := 24.0
	hours := float64(t.Hours)
	if r.opts.TwelveHour {
		hourSpan = 12
		hours = float64(t.Hours % 12)
	}
	hours += float64(t.Minutes)/60 + float64(t.Seconds)/3600
	minutes := float64(t.Minutes) + float64(t.Seconds)/60

	return Positions{
		Hour:   wrap(hours/hourSpan*n, n),
		Minute: wrap(minutes/60*n, n),
		Second: wrap(float64(t.Seconds)/60*n, n),
	}
}

type hand struct {
	pos   float64
	color led.RGBColor
	width float64
}

// hands returns the hands to draw, in drawing order.
func (r *Renderer) hands(t TimeOfDay, mode Mode, scheme Scheme) []hand {
	p := r.Positions(t)
	hands := make([]hand, 0, 3)
	hands = append(hands,
		hand{p.Hour, scheme.Hour, r.opts.HourGlowWidth},
		hand{p.Minute, scheme.Minute, r.opts.MinuteGlowWidth})
	if r.opts.ShowSecondHand {
		hands = append(hands, hand{p.Second, scheme.Second, r.opts.SecondGlowWidth})
	}

	switch mode {
	case DotClockColorChange:
		shift := float64(t.Minutes*60+t.Seconds) / 3600 * 360
		for i := range hands {
			hands[i].color = hands[i].color.RotateHue(shift)
		}
	case DotClockTimeColor:
		for i := range hands {
			hands[i].color = led.Hue(hands[i].pos / float64(r.opts.RingSize) * 360)
		}
	}

	return hands
}

// Render draws one frame. Hands are drawn hour first, then minute, then
// second. The returned buffer is owned by the renderer and is only valid
// until the next call to Render.
//
// The time must be valid; out of range components are not checked.
func (r *Renderer) Render(t TimeOfDay, mode Mode, scheme Scheme) led.LEDs {
	r.frame.Clear()
	hands := r.hands(t, mode, scheme)

	switch mode {
	case RingClock:
		for _, h := range hands {
			r.drawHalo(r.frame, h, led.BlendAlpha)
		}

	case DotClockGlow:
		for _, h := range hands {
			r.drawHalo(r.frame, h, led.BlendAdd)
		}

	case DotClockTrail:
		if r.lastMode != DotClockTrail {
			r.trail.Clear()
		}
		r.trail.Fade(r.opts.TrailDecay)
		for _, h := range hands {
			r.drawDot(r.trail, h)
		}
		copy(r.frame, r.trail)

	default:
		for _, h := range hands {
			r.drawDot(r.frame, h)
		}
	}

	r.lastMode = mode
	return r.frame
}

func (r *Renderer) drawDot(dst led.LEDs, h hand) {
	i := int(math.Floor(h.pos+0.5)) % r.opts.RingSize
	dst.Blend(r.index(i), h.color, led.BlendOver, 1)
}

// drawHalo draws a hand whose intensity falls off linearly with the distance
// from its center, reaching zero at width+1 pixels away.
func (r *Renderer) drawHalo(dst led.LEDs, h hand, mode led.BlendMode) {
	n := float64(r.opts.RingSize)
	reach := h.width + 1

	for i := 0; i < r.opts.RingSize; i++ {
		d := ringDistance(float64(i), h.pos, n)
		if d >= reach {
			continue
		}
		intensity := 1 - d/reach

		switch mode {
		case led.BlendAlpha:
			dst.Blend(r.index(i), h.color, led.BlendAlpha, intensity)
		default:
			dst.Blend(r.index(i), h.color.Scale(intensity), mode, 1)
		}
	}
}

// index maps a logical clockwise index to a physical one.
func (r *Renderer) index(i int) int {
	if r.opts.Reverse {
		return (r.opts.RingSize - i) % r.opts.RingSize
	}
	return i
}

func wrap(v, n float64) float64 {
	v = math.Mod(v, n)
	if v < 0 {
		v += n
	}
	return v
}

// ringDistance is the shortest distance between a and b on a ring of size n.
func ringDistance(a, b, n float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, n-d)
}
