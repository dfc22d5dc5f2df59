package clockface

import (
	"slices"
	"testing"

	"libdb.so/ringclock/internal/led"
)

var primary = DefaultCatalog[0]

func allModes() []Mode {
	modes := make([]Mode, 0, ModeCount)
	for m := Mode(0); m < ModeCount; m++ {
		modes = append(modes, m)
	}
	return modes
}

func eachTime(step int, f func(TimeOfDay)) {
	for s := 0; s < 24*3600; s += step {
		f(TimeOfDay{Hours: s / 3600, Minutes: s / 60 % 60, Seconds: s % 60})
	}
}

func TestRenderFrameSize(t *testing.T) {
	for _, size := range []int{1, 12, 24, 60} {
		opts := DefaultOptions()
		opts.RingSize = size
		r := NewRenderer(opts)

		for _, mode := range allModes() {
			eachTime(997, func(tod TimeOfDay) {
				if got := len(r.Render(tod, mode, primary)); got != size {
					t.Fatalf("size %d, mode %v, time %v: got %d pixels", size, mode, tod, got)
				}
			})
		}
	}
}

func TestPositions(t *testing.T) {
	tests := []struct {
		name       string
		twelveHour bool
		time       TimeOfDay
		want       Positions
	}{
		{"midnight", true, TimeOfDay{0, 0, 0}, Positions{0, 0, 0}},
		{"six", true, TimeOfDay{6, 0, 0}, Positions{12, 0, 0}},
		{"half past three", true, TimeOfDay{3, 30, 0}, Positions{7, 12, 0}},
		{"noon wraps", true, TimeOfDay{12, 0, 0}, Positions{0, 0, 0}},
		{"evening", true, TimeOfDay{18, 0, 30}, Positions{12 + 1.0/60, 0.2, 12}},
		{"noon on 24h", false, TimeOfDay{12, 0, 0}, Positions{12, 0, 0}},
		{"evening on 24h", false, TimeOfDay{18, 0, 0}, Positions{18, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.TwelveHour = tt.twelveHour
			got := NewRenderer(opts).Positions(tt.time)

			const eps = 1e-9
			if !near(got.Hour, tt.want.Hour, eps) ||
				!near(got.Minute, tt.want.Minute, eps) ||
				!near(got.Second, tt.want.Second, eps) {
				t.Errorf("Positions(%v) = %+v, want %+v", tt.time, got, tt.want)
			}
		})
	}
}

func near(a, b, eps float64) bool {
	d := a - b
	return d < eps && d > -eps
}

func TestRingClockHourIndicator(t *testing.T) {
	r := NewRenderer(DefaultOptions())

	frame := r.Render(TimeOfDay{6, 0, 0}, RingClock, primary)
	if frame[12] != primary.Hour {
		t.Errorf("06:00:00 pixel 12 = %v, want hour color %v", frame[12], primary.Hour)
	}
	// Symmetric falloff around the center.
	if frame[11] != frame[13] || frame[10] != frame[14] {
		t.Errorf("hour halo is not symmetric: %v", frame[9:16])
	}
	if !frame[15].IsOff() || !frame[9].IsOff() {
		t.Errorf("hour halo wider than configured: %v", frame[9:16])
	}

	mono := Scheme{Hour: led.Red, Minute: led.Red, Second: led.Red}
	frame = r.Render(TimeOfDay{0, 0, 0}, RingClock, mono)
	if frame[0] != led.Red {
		t.Errorf("00:00:00 pixel 0 = %v, want %v", frame[0], led.Red)
	}
	if !frame[12].IsOff() {
		t.Errorf("00:00:00 pixel 12 = %v, want off", frame[12])
	}
}

func TestDotClock(t *testing.T) {
	r := NewRenderer(DefaultOptions())

	frame := r.Render(TimeOfDay{6, 0, 0}, DotClock, primary)
	want := led.NewLEDs(24)
	want[12] = primary.Hour
	want[0] = primary.Second // minute is drawn first, second wins
	if !slices.Equal(frame, want) {
		t.Errorf("06:00:00 = %v, want %v", frame, want)
	}

	// 03:20:45: hour 7.29 -> 7, minute 8.3 -> 8, second 18.
	frame = r.Render(TimeOfDay{3, 20, 45}, DotClock, primary)
	want = led.NewLEDs(24)
	want[7] = primary.Hour
	want[8] = primary.Minute
	want[18] = primary.Second
	if !slices.Equal(frame, want) {
		t.Errorf("03:20:45 = %v, want %v", frame, want)
	}
}

func TestReverse(t *testing.T) {
	opts := DefaultOptions()
	opts.Reverse = true
	opts.ShowSecondHand = false
	r := NewRenderer(opts)

	frame := r.Render(TimeOfDay{3, 0, 0}, DotClock, primary)
	if frame[18] != primary.Hour {
		t.Errorf("reversed 03:00 hour at %v, want pixel 18", frame)
	}
	if frame[0] != primary.Minute {
		t.Errorf("reversed 03:00 minute not at the reference pixel: %v", frame)
	}
}

func TestGlowAdds(t *testing.T) {
	r := NewRenderer(DefaultOptions())

	frame := r.Render(TimeOfDay{0, 0, 0}, DotClockGlow, primary)
	if frame[0] != led.White {
		t.Errorf("overlapping halos = %v, want saturated %v", frame[0], led.White)
	}

	frame = r.Render(TimeOfDay{6, 0, 0}, DotClockGlow, primary)
	if frame[12] != led.Red {
		t.Errorf("hour center = %v", frame[12])
	}
	if frame[11] != led.RGB(170, 0, 0) || frame[10] != led.RGB(85, 0, 0) {
		t.Errorf("hour falloff = %v %v", frame[10], frame[11])
	}
}

func TestHiddenSecondHand(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowSecondHand = false

	other := primary
	other.Second = led.Magenta

	for _, mode := range allModes() {
		a := NewRenderer(opts)
		b := NewRenderer(opts)
		eachTime(61, func(tod TimeOfDay) {
			fa := a.Render(tod, mode, primary)
			fb := b.Render(tod, mode, other)
			if !slices.Equal(fa, fb) {
				t.Fatalf("mode %v at %v: second color leaked into the frame", mode, tod)
			}
		})
	}
}

func TestStatelessModesDoNotReuseFrames(t *testing.T) {
	reused := NewRenderer(DefaultOptions())

	for _, mode := range allModes() {
		if mode == DotClockTrail {
			continue
		}
		eachTime(313, func(tod TimeOfDay) {
			got := slices.Clone(reused.Render(tod, mode, primary))
			want := NewRenderer(DefaultOptions()).Render(tod, mode, primary)
			if !slices.Equal(got, want) {
				t.Fatalf("mode %v at %v: stale pixels from a previous frame", mode, tod)
			}
		})
	}
}

func TestTrail(t *testing.T) {
	r := NewRenderer(DefaultOptions())

	r.Render(TimeOfDay{0, 0, 5}, DotClockTrail, primary) // second at pixel 2
	frame := r.Render(TimeOfDay{0, 0, 10}, DotClockTrail, primary)

	if frame[4] != primary.Second {
		t.Errorf("current second = %v, want %v", frame[4], primary.Second)
	}
	if frame[2].IsOff() || frame[2] == primary.Second {
		t.Errorf("trail pixel = %v, want a faded %v", frame[2], primary.Second)
	}

	for i := 0; i < 500; i++ {
		frame = r.Render(TimeOfDay{0, 0, 10}, DotClockTrail, primary)
	}
	if !frame[2].IsOff() {
		t.Errorf("trail never faded out: %v", frame[2])
	}

	r.Render(TimeOfDay{0, 0, 5}, DotClockTrail, primary)
	r.Render(TimeOfDay{0, 0, 5}, DotClock, primary)
	frame = r.Render(TimeOfDay{0, 0, 10}, DotClockTrail, primary)
	if !frame[2].IsOff() {
		t.Errorf("trail survived a mode change: %v", frame[2])
	}
}

func TestColorModes(t *testing.T) {
	r := NewRenderer(DefaultOptions())

	// Half an hour in, the hue has turned half way around.
	frame := r.Render(TimeOfDay{6, 30, 0}, DotClockColorChange, primary)
	if frame[13] != led.RGB(0, 255, 255) {
		t.Errorf("color change hour = %v, want cyan", frame[13])
	}

	frame = r.Render(TimeOfDay{6, 0, 0}, DotClockTimeColor, primary)
	if frame[12] != led.RGB(0, 255, 255) {
		t.Errorf("time color hour = %v, want cyan", frame[12])
	}
	if frame[0] != led.RGB(255, 0, 0) {
		t.Errorf("time color second = %v, want red", frame[0])
	}
}

func TestCatalogGet(t *testing.T) {
	n := DefaultCatalog.Len()
	if n != 7 {
		t.Fatalf("default catalog has %d schemes, want 7", n)
	}
	if DefaultCatalog.Get(n) != DefaultCatalog.Get(0) {
		t.Errorf("Get(%d) did not wrap", n)
	}
	if DefaultCatalog.Get(-1) != DefaultCatalog.Get(n-1) {
		t.Errorf("Get(-1) did not wrap")
	}
}

func TestModeString(t *testing.T) {
	for _, m := range allModes() {
		if m.String() == "" {
			t.Errorf("mode %d has no name", m)
		}
	}
	if ModeCount.Valid() {
		t.Errorf("ModeCount is a valid mode")
	}
}
