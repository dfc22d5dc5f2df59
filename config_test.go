package ringclock

import (
	"strings"
	"testing"
	"time"

	"libdb.so/ringclock/internal/clockface"
	"libdb.so/ringclock/internal/led"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
}

func TestParseConfig(t *testing.T) {
	const src = `
device = "/dev/ttyUSB1"
timezone = "UTC"
interval = "50ms"
twelve_hour = false
reverse = true

[button]
long_press = "500ms"
repeat = "2s"

[[scheme]]
name = "mono"
hour = "white"
minute = "#808080"
second = "red"

[[scheme]]
name = "sea"
hour = "blue"
minute = "cyan"
second = "#00ffa4"
`

	cfg, err := ParseConfig(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Device != "/dev/ttyUSB1" {
		t.Errorf("device = %q", cfg.Device)
	}
	if time.Duration(cfg.Interval) != 50*time.Millisecond {
		t.Errorf("interval = %v", time.Duration(cfg.Interval))
	}
	if time.Duration(cfg.Button.LongPress) != 500*time.Millisecond || time.Duration(cfg.Button.Repeat) != 2*time.Second {
		t.Errorf("button = %+v", cfg.Button)
	}
	if cfg.TwelveHour || !cfg.Reverse {
		t.Errorf("twelve_hour = %v, reverse = %v", cfg.TwelveHour, cfg.Reverse)
	}

	// Keys left out keep their defaults.
	if cfg.RingSize != 24 || cfg.Baud != 115200 || !cfg.ShowSecondHand {
		t.Errorf("defaults lost: ring_size = %d, baud = %d, show_second_hand = %v",
			cfg.RingSize, cfg.Baud, cfg.ShowSecondHand)
	}

	catalog := cfg.Catalog()
	if catalog.Len() != 2 {
		t.Fatalf("catalog has %d schemes, want 2", catalog.Len())
	}
	want := clockface.Scheme{Name: "mono", Hour: led.White, Minute: led.RGB(128, 128, 128), Second: led.Red}
	if catalog.Get(0) != want {
		t.Errorf("scheme 0 = %+v, want %+v", catalog.Get(0), want)
	}
	if catalog.Get(1).Second != led.RGB(0, 255, 164) {
		t.Errorf("scheme 1 second = %v", catalog.Get(1).Second)
	}

	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Errorf("Location = %v, %v", loc, err)
	}
}

func TestParseConfigBadColor(t *testing.T) {
	const src = `
[[scheme]]
hour = "not-a-color"
`
	if _, err := ParseConfig(strings.NewReader(src)); err == nil {
		t.Error("bad color was accepted")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero ring", func(c *Config) { c.RingSize = 0 }},
		{"zero interval", func(c *Config) { c.Interval = 0 }},
		{"negative debug interval", func(c *Config) { c.DebugInterval = -1 }},
		{"ring can go dark", func(c *Config) { c.MinBrightness = 0 }},
		{"trail never fades", func(c *Config) { c.TrailDecay = 1 }},
		{"negative glow", func(c *Config) { c.Glow.Minute = -1 }},
		{"zero long press", func(c *Config) { c.Button.LongPress = 0 }},
		{"unknown timezone", func(c *Config) { c.Timezone = "Nowhere/Atlantis" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("invalid config passed validation")
			}
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	if DefaultConfig().Catalog().Len() != clockface.DefaultCatalog.Len() {
		t.Error("default config does not use the built-in schemes")
	}
}
