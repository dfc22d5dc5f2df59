package main

import (
	"machine"
	"sync"

	"tinygo.org/x/drivers/ws2812"
)

// linkState is what the onboard LED reports about the link to the host.
type linkState uint8

const (
	linkWaiting linkState = iota // no initialize packet yet
	linkReady
	linkFailed // last packet was dropped
)

// statusLED drives the onboard RGB LED of the XIAO RP2040. It is dim blue
// until the host initializes the ring, dim green afterwards and red after a
// dropped packet. It turns amber while the button is held.
type statusLED struct {
	mu    sync.Mutex
	dev   ws2812.Device
	power machine.Pin
	state linkState
	held  bool
}

func newStatusLED() *statusLED {
	// https://wiki.seeedstudio.com/XIAO-RP2040-with-Arduino/
	power := machine.GPIO11
	power.Configure(machine.PinConfig{Mode: machine.PinOutput})
	power.High()

	machine.GPIO12.Configure(machine.PinConfig{Mode: machine.PinOutput})

	l := &statusLED{
		dev:   ws2812.New(machine.GPIO12),
		power: power,
	}
	l.show()
	return l
}

// SetLink updates the link state. Repeated states do not rewrite the LED.
func (l *statusLED) SetLink(state linkState) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == state {
		return
	}
	l.state = state
	l.show()
}

// SetHeld reports whether the button is held down.
func (l *statusLED) SetHeld(held bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.held = held
	l.show()
}

func (l *statusLED) show() {
	switch {
	case l.held:
		writeLEDRGB(l.dev, 48, 24, 0)
	case l.state == linkFailed:
		writeLEDRGB(l.dev, 48, 0, 0)
	case l.state == linkReady:
		writeLEDRGB(l.dev, 0, 8, 0)
	default:
		writeLEDRGB(l.dev, 0, 0, 8)
	}
}
