package ringclock

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"libdb.so/ringclock/internal/button"
	"libdb.so/ringclock/internal/clockface"
	"libdb.so/ringclock/internal/led"
)

// TimeSource provides the wall clock time to display.
type TimeSource interface {
	// Now returns the current time of day. It must not block.
	Now() clockface.TimeOfDay
}

// BrightnessInput provides the raw brightness reading of the potentiometer.
type BrightnessInput interface {
	// ReadBrightness returns the latest reading, scaled to [0, 255].
	ReadBrightness() uint8
}

// ButtonInput provides already classified button events.
type ButtonInput interface {
	// PollEvent pops the next pending event, if any. It must not block.
	PollEvent() (button.Event, bool)
}

var _ ButtonInput = (*button.Queue)(nil)

// StateStore persists the clock state across power cycles.
type StateStore interface {
	Load() (clockface.State, error)
	Save(clockface.State) error
}

// LEDDriver pushes a frame to the LEDs.
type LEDDriver interface {
	// Show displays the given frame. The frame is only valid for the duration
	// of the call.
	Show(led.LEDs) error
}

// StatusSink receives the status after every frame. It is optional.
type StatusSink interface {
	ShowStatus(Status)
}

// Status is a snapshot of the clock, used for diagnostics.
type Status struct {
	Time       clockface.TimeOfDay
	Mode       clockface.Mode
	Scheme     clockface.Scheme
	SchemeIdx  int
	Brightness uint8
}

// LogValue implements slog.LogValuer.
func (s Status) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("time", s.Time.String()),
		slog.String("mode", s.Mode.String()),
		slog.Int("scheme", s.SchemeIdx),
		slog.String("scheme_name", s.Scheme.Name),
		slog.Int("brightness", int(s.Brightness)))
}

// Peripherals are the collaborators of a Loop.
type Peripherals struct {
	Time       TimeSource
	Brightness BrightnessInput
	Buttons    ButtonInput
	Store      StateStore
	LEDs       LEDDriver
	// Status is optional.
	Status StatusSink
}

func (p Peripherals) validate() error {
	switch {
	case p.Time == nil:
		return errors.New("missing time source")
	case p.Brightness == nil:
		return errors.New("missing brightness input")
	case p.Buttons == nil:
		return errors.New("missing button input")
	case p.Store == nil:
		return errors.New("missing state store")
	case p.LEDs == nil:
		return errors.New("missing LED driver")
	}
	return nil
}

// Loop is the render loop. Every tick it drains the button events into the
// mode controller, persists a changed state, renders the clock face, corrects
// it for gamma and brightness and shows it.
//
// A Loop runs on a single goroutine; it is not safe for concurrent use.
type Loop struct {
	cfg        *Config
	logger     *slog.Logger
	io         Peripherals
	catalog    clockface.Catalog
	renderer   *clockface.Renderer
	controller *clockface.Controller
	out        led.LEDs
	lastStatus time.Time
}

// NewLoop creates a new render loop and loads the persisted state.
func NewLoop(cfg *Config, io Peripherals, logger *slog.Logger) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	if err := io.validate(); err != nil {
		return nil, err
	}

	catalog := cfg.Catalog()

	state, err := io.Store.Load()
	if err != nil {
		logger.Warn(
			"failed to load clock state, using defaults",
			"error", err)
	}

	controller := clockface.NewController(state, catalog.Len())
	if controller.WasReset() {
		logger.Warn(
			"persisted clock state is out of range, reset to defaults",
			"scheme", state.Scheme,
			"mode", int(state.Mode))
	}

	return &Loop{
		cfg:        cfg,
		logger:     logger,
		io:         io,
		catalog:    catalog,
		renderer:   clockface.NewRenderer(cfg.RenderOptions()),
		controller: controller,
		out:        led.NewLEDs(cfg.RingSize),
	}, nil
}

// Controller returns the mode controller of the loop.
func (l *Loop) Controller() *clockface.Controller {
	return l.controller
}

// Run ticks the loop at the configured interval until ctx is canceled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(l.cfg.Interval))
	defer ticker.Stop()

	l.Tick(time.Now())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.Tick(now)
		}
	}
}

// Tick renders and shows a single frame. The given time is only used to pace
// the status log; the displayed time comes from the time source.
func (l *Loop) Tick(now time.Time) {
	for {
		ev, ok := l.io.Buttons.PollEvent()
		if !ok {
			break
		}
		l.controller.Handle(ev)
		l.logger.Debug(
			"handled button event",
			"event", ev,
			"mode", l.controller.Mode(),
			"scheme", l.controller.SchemeIndex())
	}

	if state, dirty := l.controller.Persist(); dirty {
		if err := l.io.Store.Save(state); err != nil {
			l.logger.Warn(
				"failed to save clock state",
				"error", err)
		}
	}

	status := Status{
		Time:       l.io.Time.Now(),
		Mode:       l.controller.Mode(),
		SchemeIdx:  l.controller.SchemeIndex(),
		Brightness: l.io.Brightness.ReadBrightness(),
	}
	status.Scheme = l.catalog.Get(status.SchemeIdx)

	frame := l.renderer.Render(status.Time, status.Mode, status.Scheme)
	copy(l.out, frame)
	l.out.Correct(led.NewCorrector(status.Brightness, l.cfg.MinBrightness))

	// The status must be current when the frame is drawn.
	if l.io.Status != nil {
		l.io.Status.ShowStatus(status)
	}

	if err := l.io.LEDs.Show(l.out); err != nil {
		l.logger.Warn(
			"failed to show frame",
			"error", err)
	}

	if l.cfg.DebugInterval > 0 && now.Sub(l.lastStatus) >= time.Duration(l.cfg.DebugInterval) {
		l.lastStatus = now
		l.logger.Info("clock status", "status", status)
	}
}

// SystemClock is a TimeSource reading the system clock.
type SystemClock struct {
	Location *time.Location
}

// Now implements TimeSource.
func (c SystemClock) Now() clockface.TimeOfDay {
	t := time.Now()
	if c.Location != nil {
		t = t.In(c.Location)
	}
	return clockface.TimeOfDayFrom(t)
}
