// Package ringclock drives an addressable LED ring clock. The clock face is
// rendered on the host and streamed to the ring controller over a serial
// line; the controller reports the button and the brightness potentiometer
// back.
package ringclock

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"golang.org/x/sync/errgroup"
	"libdb.so/ringclock/internal/button"
	"libdb.so/ringclock/internal/led"
	"libdb.so/ringclock/internal/nvstate"
	"libdb.so/ringclock/ledserial"
)

// ackTimeout is how long a frame may stay unacknowledged before the daemon
// gives up waiting and sends the next one.
const ackTimeout = time.Second

// Daemon is the ringclock daemon for a ring controller attached over serial.
type Daemon struct {
	cfg    *Config
	logger *slog.Logger
}

// NewDaemon creates a new ringclock daemon.
func NewDaemon(cfg *Config, logger *slog.Logger) (*Daemon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &Daemon{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Run starts the daemon. It blocks until the given context is canceled.
func (d *Daemon) Run(ctx context.Context) error {
	port, err := serial.Open(d.cfg.Device, &serial.Mode{
		BaudRate: d.cfg.Baud,
	})
	if err != nil {
		return errors.Wrap(err, "failed to open serial port")
	}
	defer port.Close()

	return d.run(ctx, port)
}

func (d *Daemon) run(ctx context.Context, port serial.Port) error {
	loc, err := d.cfg.Location()
	if err != nil {
		return err
	}

	h := &serialHost{
		Daemon:     d,
		port:       port,
		start:      time.Now(),
		buttons:    button.NewQueue(0),
		classifier: button.NewClassifier(time.Duration(d.cfg.Button.LongPress), time.Duration(d.cfg.Button.Repeat)),
		brightness: 255,
	}

	h.loop, err = NewLoop(d.cfg, Peripherals{
		Time:       SystemClock{Location: loc},
		Brightness: h,
		Buttons:    h.buttons,
		Store:      nvstate.NewFile(d.cfg.StateFile),
		LEDs:       h,
	}, d.logger)
	if err != nil {
		return err
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		<-ctx.Done()
		d.logger.Debug("closing serial port")
		if err := port.Close(); err != nil {
			return errors.Wrap(err, "failed to close serial port")
		}
		return ctx.Err()
	})

	outPackets := make(chan ledserial.OutgoingPacket)
	errg.Go(func() error {
		return h.mainLoop(ctx, outPackets)
	})
	errg.Go(func() error {
		return h.readPackets(ctx, outPackets)
	})

	return errg.Wait()
}

// serialHost is the state of a running daemon. Everything except readPackets
// runs on the mainLoop goroutine.
type serialHost struct {
	*Daemon
	port serial.Port
	loop *Loop

	start      time.Time
	buttons    *button.Queue
	classifier *button.Classifier
	brightness uint8

	initialized bool
	awaitingAck bool
	sentAt      time.Time
}

var (
	_ BrightnessInput = (*serialHost)(nil)
	_ LEDDriver       = (*serialHost)(nil)
)

// ReadBrightness implements BrightnessInput. It returns the last reading
// reported by the controller.
func (h *serialHost) ReadBrightness() uint8 {
	return h.brightness
}

// Show implements LEDDriver.
func (h *serialHost) Show(leds led.LEDs) error {
	if err := h.writePacket(ledserial.SetPacket{Pix: leds.AsPixels()}); err != nil {
		return err
	}
	h.awaitingAck = true
	h.sentAt = time.Now()
	return nil
}

func (h *serialHost) mainLoop(ctx context.Context, packets <-chan ledserial.OutgoingPacket) error {
	h.logger.Debug("waiting 100ms for the read loop to start...")
	time.Sleep(100 * time.Millisecond)

	if err := h.initialize(ctx); err != nil {
		return err
	}

	frameTicker := time.NewTicker(time.Duration(h.cfg.Interval))
	defer frameTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case p := <-packets:
			if err := h.handlePacket(p); err != nil {
				return err
			}

		case now := <-frameTicker.C:
			if ev, ok := h.classifier.Poll(now.Sub(h.start)); ok {
				h.buttons.Push(ev)
			}

			if h.awaitingAck {
				if now.Sub(h.sentAt) < ackTimeout {
					continue
				}
				h.logger.Warn(
					"controller did not acknowledge in time, resending",
					"timeout", ackTimeout)
			}

			if !h.initialized {
				if err := h.initialize(ctx); err != nil {
					return err
				}
				continue
			}

			h.loop.Tick(now)
		}
	}
}

func (h *serialHost) initialize(ctx context.Context) error {
	h.logger.Debug("sending initialize packet")
	if err := h.writePacket(ledserial.InitializePacket{
		NumLEDs: uint16(h.cfg.RingSize),
	}); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(err, "failed to initialize LEDs")
	}
	h.awaitingAck = true
	h.sentAt = time.Now()
	return nil
}

func (h *serialHost) handlePacket(p ledserial.OutgoingPacket) error {
	switch p := p.(type) {
	case ledserial.AckPacket:
		h.awaitingAck = false
		if p.IncomingPacketType == ledserial.TypeInitializePacket {
			h.initialized = true
		}

	case ledserial.ButtonPacket:
		h.logger.Debug(
			"received button edge from controller",
			"pressed", p.Pressed,
			"millis", p.Millis)

		edge := button.Edge{Pressed: p.Pressed, At: time.Since(h.start)}
		if ev, ok := h.classifier.Feed(edge); ok {
			h.buttons.Push(ev)
		}

	case ledserial.BrightnessPacket:
		h.brightness = p.Value

	case ledserial.ErrorPacket:
		// The controller dropped whatever it was reading. Every frame is
		// complete, so the next tick repairs the ring.
		h.logger.Warn(
			"received error packet from controller",
			"message", p.Message)
		h.awaitingAck = false

	case ledserial.PanicPacket:
		h.logger.Error("controller unrecoverably panicked")
		return errors.New("controller panicked")

	case ledserial.LogPacket:
		h.logger.Info(
			"received log packet from controller",
			"message", p.Message)

	default:
		return fmt.Errorf("received unknown packet from controller: %s", p.Type())
	}

	return nil
}

func (h *serialHost) readPackets(ctx context.Context, dst chan<- ledserial.OutgoingPacket) error {
	if err := h.port.SetReadTimeout(serial.NoTimeout); err != nil {
		return errors.Wrap(err, "failed to reset read timeout")
	}

	for ctx.Err() == nil {
		p, err := ledserial.ReadOutgoingPacket(h.port, ledserial.ReadContext{})
		if err != nil {
			// A short read indicates a timeout. This is expected.
			// Ignore the error and try again.
			if errors.Is(err, io.EOF) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, "failed to read packet")
		}

		h.logger.Debug(
			"received packet from controller",
			"type", p.Type())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case dst <- p:
			// ok
		}
	}

	return ctx.Err()
}

func (h *serialHost) writePacket(p ledserial.IncomingPacket) error {
	h.logger.Debug(
		"writing packet",
		"type", p.Type())

	if err := ledserial.WriteIncomingPacket(h.port, p); err != nil {
		return errors.Wrapf(err, "failed to write %s packet", p.Type())
	}

	return nil
}
