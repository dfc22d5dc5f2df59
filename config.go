package ringclock

import (
	"encoding"
	"io"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"libdb.so/ringclock/internal/clockface"
)

// Config is the configuration for the ringclock daemon.
type Config struct {
	// Device is the path to the device file of the LED ring controller.
	// This is usually /dev/ttyUSB0 or /dev/ttyACM0.
	Device string `toml:"device"`
	// Baud is the baud rate for the serial connection.
	Baud int `toml:"baud"`
	// StateFile is the file that persists the clock mode and color scheme.
	StateFile string `toml:"state_file"`
	// Timezone is the IANA name of the displayed time zone. "Local" or empty
	// uses the system time zone.
	Timezone string `toml:"timezone"`

	// RingSize is the number of LEDs on the ring.
	RingSize int `toml:"ring_size"`
	// Interval is the time between two frames.
	Interval TOMLDuration `toml:"interval"`
	// DebugInterval is the time between two status log lines. Zero disables
	// them.
	DebugInterval TOMLDuration `toml:"debug_interval"`
	// MinBrightness is the lowest brightness the ring is dimmed to.
	MinBrightness uint8 `toml:"min_brightness"`
	// TwelveHour makes the hour hand go around twice a day.
	TwelveHour bool `toml:"twelve_hour"`
	// ShowSecondHand enables the second hand.
	ShowSecondHand bool `toml:"show_second_hand"`
	// Reverse is for rings whose indices run counter-clockwise.
	Reverse bool `toml:"reverse"`
	// TrailDecay is the factor trails fade by every frame.
	TrailDecay float64 `toml:"trail_decay"`

	Glow   GlowConfig   `toml:"glow"`
	Button ButtonConfig `toml:"button"`
	// Schemes replaces the built-in color schemes if not empty.
	Schemes []clockface.Scheme `toml:"scheme"`
}

// GlowConfig is the halo width of each hand, in pixels on each side.
type GlowConfig struct {
	Hour   float64 `toml:"hour"`
	Minute float64 `toml:"minute"`
	Second float64 `toml:"second"`
}

// ButtonConfig is the timing of the button press classifier.
type ButtonConfig struct {
	// LongPress is how long a press is held to count as a long press.
	LongPress TOMLDuration `toml:"long_press"`
	// Repeat is how often a long press repeats while still held.
	Repeat TOMLDuration `toml:"repeat"`
}

// DefaultConfig returns the configuration for a 24 LED ring.
func DefaultConfig() *Config {
	opts := clockface.DefaultOptions()
	return &Config{
		Device:         "/dev/ttyACM0",
		Baud:           115200,
		StateFile:      "ringclock.state",
		Timezone:       "Local",
		RingSize:       opts.RingSize,
		Interval:       TOMLDuration(30 * time.Millisecond),
		DebugInterval:  TOMLDuration(2 * time.Second),
		MinBrightness:  4,
		TwelveHour:     opts.TwelveHour,
		ShowSecondHand: opts.ShowSecondHand,
		TrailDecay:     opts.TrailDecay,
		Glow: GlowConfig{
			Hour:   opts.HourGlowWidth,
			Minute: opts.MinuteGlowWidth,
			Second: opts.SecondGlowWidth,
		},
		Button: ButtonConfig{
			LongPress: TOMLDuration(300 * time.Millisecond),
			Repeat:    TOMLDuration(1500 * time.Millisecond),
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.RingSize < 1 || c.RingSize > 0xFFFF {
		return errors.Errorf("invalid ring size %d", c.RingSize)
	}

	if c.Interval <= 0 {
		return errors.New("interval must be positive")
	}

	if c.DebugInterval < 0 {
		return errors.New("debug interval must not be negative")
	}

	if c.MinBrightness == 0 {
		return errors.New("min brightness must be positive")
	}

	if c.TrailDecay < 0 || c.TrailDecay >= 1 {
		return errors.Errorf("trail decay %v is not in [0, 1)", c.TrailDecay)
	}

	if c.Glow.Hour < 0 || c.Glow.Minute < 0 || c.Glow.Second < 0 {
		return errors.New("glow widths must not be negative")
	}

	if c.Button.LongPress <= 0 {
		return errors.New("long press delay must be positive")
	}

	if len(c.Schemes) > 0xFF {
		return errors.Errorf("too many color schemes (%d)", len(c.Schemes))
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Catalog returns the color schemes to cycle through.
func (c *Config) Catalog() clockface.Catalog {
	if len(c.Schemes) > 0 {
		return clockface.Catalog(c.Schemes)
	}
	return clockface.DefaultCatalog
}

// RenderOptions returns the renderer options of the configuration.
func (c *Config) RenderOptions() clockface.Options {
	return clockface.Options{
		RingSize:        c.RingSize,
		TwelveHour:      c.TwelveHour,
		ShowSecondHand:  c.ShowSecondHand,
		Reverse:         c.Reverse,
		HourGlowWidth:   c.Glow.Hour,
		MinuteGlowWidth: c.Glow.Minute,
		SecondGlowWidth: c.Glow.Second,
		TrailDecay:      c.TrailDecay,
	}
}

// Location returns the time zone to display.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timezone %q", c.Timezone)
	}
	return loc, nil
}

// TOMLDuration is a duration that can be parsed from TOML.
type TOMLDuration time.Duration

var (
	_ encoding.TextUnmarshaler = (*TOMLDuration)(nil)
	_ encoding.TextMarshaler   = (*TOMLDuration)(nil)
)

func (d *TOMLDuration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = TOMLDuration(duration)
	return nil
}

func (d TOMLDuration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// ParseConfig parses a configuration from a reader. Keys that are not set
// keep their DefaultConfig values.
func ParseConfig(r io.Reader) (*Config, error) {
	config := DefaultConfig()
	if err := toml.NewDecoder(r).Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}
