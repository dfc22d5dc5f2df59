// Package termled shows the LED ring in a terminal. It stands in for the ring
// controller: it draws frames, turns key presses into button events and keeps
// a brightness value adjusted from the keyboard.
package termled

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"libdb.so/ringclock"
	"libdb.so/ringclock/internal/button"
	"libdb.so/ringclock/internal/led"
)

// ErrQuit is returned by Run when the user asks to quit.
var ErrQuit = errors.New("quit requested")

// brightnessStep is how much a single key press changes the brightness.
const brightnessStep = 16

var (
	offStyle    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(48, 48, 48))
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Screen is a terminal LED ring.
type Screen struct {
	screen     tcell.Screen
	reverse    bool
	buttons    *button.Queue
	brightness atomic.Uint32

	mu     sync.Mutex
	status string
}

var (
	_ ringclock.LEDDriver       = (*Screen)(nil)
	_ ringclock.BrightnessInput = (*Screen)(nil)
	_ ringclock.ButtonInput     = (*Screen)(nil)
	_ ringclock.StatusSink      = (*Screen)(nil)
)

// Open opens the terminal. Reverse must match the reverse setting of the
// renderer so that the clock is not drawn mirrored.
func Open(brightness uint8, reverse bool) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create screen")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to init screen")
	}
	return New(screen, brightness, reverse), nil
}

// New wraps an initialized tcell screen.
func New(screen tcell.Screen, brightness uint8, reverse bool) *Screen {
	s := &Screen{
		screen:  screen,
		reverse: reverse,
		buttons: button.NewQueue(0),
	}
	s.brightness.Store(uint32(brightness))
	return s
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}

// Run handles terminal events until ctx is canceled or the user quits. The
// screen is finalized when ctx is canceled.
func (s *Screen) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !s.handleKey(ev.Key(), ev.Rune()) {
					return ErrQuit
				}
			case *tcell.EventResize:
				s.screen.Sync()
			}
		}
	}
}

// handleKey applies a key press. It returns false if the user wants to quit.
func (s *Screen) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		s.buttons.Push(button.LongPress)
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r {
	case 'q':
		return false
	case ' ':
		s.buttons.Push(button.ShortPress)
	case '+', '=':
		s.adjustBrightness(brightnessStep)
	case '-', '_':
		s.adjustBrightness(-brightnessStep)
	}
	return true
}

func (s *Screen) adjustBrightness(delta int) {
	v := int(s.brightness.Load()) + delta
	v = max(0, min(255, v))
	s.brightness.Store(uint32(v))
}

// ReadBrightness implements ringclock.BrightnessInput.
func (s *Screen) ReadBrightness() uint8 {
	return uint8(s.brightness.Load())
}

// PollEvent implements ringclock.ButtonInput.
func (s *Screen) PollEvent() (button.Event, bool) {
	return s.buttons.PollEvent()
}

// ShowStatus implements ringclock.StatusSink.
func (s *Screen) ShowStatus(st ringclock.Status) {
	s.mu.Lock()
	s.status = fmt.Sprintf("%s  mode %s  scheme %d %s  brightness %d",
		st.Time, st.Mode, st.SchemeIdx, st.Scheme.Name, st.Brightness)
	s.mu.Unlock()
}

// Show implements ringclock.LEDDriver. LEDs are laid out clockwise from the
// top of the circle, or counter-clockwise for a reversed ring.
func (s *Screen) Show(leds led.LEDs) error {
	w, h := s.screen.Size()
	s.screen.Clear()

	for i, p := range layout(len(leds), w, h-2, s.reverse) {
		c := leds[i]
		if c.IsOff() {
			s.screen.SetContent(p.x, p.y, '·', nil, offStyle)
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2])))
		s.screen.SetContent(p.x, p.y, '●', nil, style)
	}

	s.mu.Lock()
	status := s.status
	s.mu.Unlock()

	help := "space: mode  enter: scheme  +/-: brightness  q: quit"
	drawText(s.screen, 0, h-2, status, statusStyle)
	drawText(s.screen, 0, h-1, help, statusStyle)

	s.screen.Show()
	return nil
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

type point struct{ x, y int }

// layout places n LEDs on a circle that fits in a w by h area. Terminal
// cells are about twice as tall as they are wide, so the circle is stretched
// horizontally. A reversed ring runs counter-clockwise.
func layout(n, w, h int, reverse bool) []point {
	cx := float64((w - 1) / 2)
	cy := float64((h - 1) / 2)
	rx := math.Min(2*cy, cx)
	ry := rx / 2

	points := make([]point, n)
	for i := range points {
		a := 2 * math.Pi * float64(i) / float64(n)
		if reverse {
			a = -a
		}
		points[i] = point{
			x: int(math.Round(cx + rx*math.Sin(a))),
			y: int(math.Round(cy - ry*math.Cos(a))),
		}
	}
	return points
}
