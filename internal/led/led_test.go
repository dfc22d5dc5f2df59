package led

import (
	"bytes"
	"testing"
)

func TestBlend(t *testing.T) {
	tests := []struct {
		name     string
		base     RGBColor
		incoming RGBColor
		mode     BlendMode
		alpha    float64
		want     RGBColor
	}{
		{"over ignores base", RGB(10, 20, 30), RGB(1, 2, 3), BlendOver, 0.5, RGB(1, 2, 3)},
		{"over onto off", Off, Red, BlendOver, 0, Red},
		{"add saturates", RGB(250, 250, 250), RGB(20, 20, 20), BlendAdd, 1, RGB(255, 255, 255)},
		{"add below limit", RGB(100, 0, 5), RGB(20, 30, 0), BlendAdd, 1, RGB(120, 30, 5)},
		{"alpha half", RGB(0, 0, 200), RGB(200, 100, 0), BlendAlpha, 0.5, RGB(100, 50, 100)},
		{"alpha zero keeps base", RGB(1, 2, 3), White, BlendAlpha, 0, RGB(1, 2, 3)},
		{"alpha one takes incoming", RGB(1, 2, 3), White, BlendAlpha, 1, White},
		{"alpha clamps above one", RGB(1, 2, 3), White, BlendAlpha, 3, White},
		{"unknown mode is over", RGB(1, 2, 3), Blue, BlendMode(42), 0, Blue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Blend(tt.base, tt.incoming, tt.mode, tt.alpha)
			if got != tt.want {
				t.Errorf("Blend(%v, %v, %v, %v) = %v, want %v",
					tt.base, tt.incoming, tt.mode, tt.alpha, got, tt.want)
			}
		})
	}
}

func TestBlendDeterministic(t *testing.T) {
	base := RGB(17, 99, 201)
	in := RGB(240, 3, 77)
	for _, mode := range []BlendMode{BlendOver, BlendAlpha, BlendAdd} {
		first := Blend(base, in, mode, 0.37)
		for i := 0; i < 100; i++ {
			if got := Blend(base, in, mode, 0.37); got != first {
				t.Fatalf("%v: call %d returned %v, first call returned %v", mode, i, got, first)
			}
		}
	}
}

func TestGamma(t *testing.T) {
	if Gamma(0) != 0 {
		t.Errorf("Gamma(0) = %d, want 0", Gamma(0))
	}
	if Gamma(255) != 255 {
		t.Errorf("Gamma(255) = %d, want 255", Gamma(255))
	}
	for i := 1; i < 256; i++ {
		if Gamma(uint8(i)) < Gamma(uint8(i-1)) {
			t.Errorf("Gamma is decreasing at %d: %d < %d", i, Gamma(uint8(i)), Gamma(uint8(i-1)))
		}
	}
}

func TestScale8(t *testing.T) {
	for v := 0; v < 256; v++ {
		if got := Scale8(uint8(v), 255); got != uint8(v) {
			t.Errorf("Scale8(%d, 255) = %d", v, got)
		}
		if got := Scale8(uint8(v), 0); got != 0 {
			t.Errorf("Scale8(%d, 0) = %d", v, got)
		}
	}
	if got := Scale8(200, 128); got != 100 {
		t.Errorf("Scale8(200, 128) = %d, want 100", got)
	}
}

func TestCorrector(t *testing.T) {
	t.Run("full brightness is plain gamma", func(t *testing.T) {
		c := NewCorrector(255, 4)
		if got := c.Color(RGB(0, 128, 255)); got != RGB(0, Gamma(128), 255) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("min brightness floor", func(t *testing.T) {
		c := NewCorrector(0, 4)
		if c.Brightness != 4 {
			t.Errorf("brightness = %d, want 4", c.Brightness)
		}
		if got := c.Channel(255); got == 0 {
			t.Errorf("full channel went dark at the brightness floor")
		}
	})

	t.Run("reading is gamma corrected", func(t *testing.T) {
		c := NewCorrector(128, 4)
		if c.Brightness != Gamma(128) {
			t.Errorf("brightness = %d, want %d", c.Brightness, Gamma(128))
		}
	})
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    RGBColor
		wantErr bool
	}{
		{"red", Red, false},
		{"Magenta", Magenta, false},
		{"#ff5400", RGB(255, 84, 0), false},
		{"#00A4FF", RGB(0, 164, 255), false},
		{"chartreuse-ish", Off, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRotateHue(t *testing.T) {
	if got := Red.RotateHue(0); got != Red {
		t.Errorf("zero rotation changed red to %v", got)
	}
	if got := Red.RotateHue(360); got != Red {
		t.Errorf("full rotation changed red to %v", got)
	}
	if got := Red.RotateHue(120); got != RGB(0, 255, 0) {
		t.Errorf("red rotated by 120 = %v, want pure green", got)
	}
	if got := Hue(240); got != RGB(0, 0, 255) {
		t.Errorf("Hue(240) = %v, want pure blue", got)
	}
}

func TestLEDs(t *testing.T) {
	leds := NewLEDs(3)
	leds[0] = RGB(1, 2, 3)
	leds[2] = RGB(200, 100, 50)

	if got := leds.AsPixels(); !bytes.Equal(got, []uint8{1, 2, 3, 0, 0, 0, 200, 100, 50}) {
		t.Errorf("AsPixels = %v", got)
	}

	leds.Fade(0.5)
	if leds[2] != RGB(100, 50, 25) {
		t.Errorf("faded = %v", leds[2])
	}

	leds.Clear()
	for i, c := range leds {
		if !c.IsOff() {
			t.Errorf("led %d not cleared: %v", i, c)
		}
	}

	if NewLEDs(0).AsPixels() != nil {
		t.Errorf("empty strip returned pixels")
	}
}
