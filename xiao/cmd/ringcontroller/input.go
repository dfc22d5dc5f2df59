package main

import (
	"machine"
	"time"

	"libdb.so/ringclock/ledserial"
)

const (
	inputPollInterval = 5 * time.Millisecond
	// debounceDelay is how long the button must be stable before an edge is
	// reported.
	debounceDelay = 20 * time.Millisecond
	// brightnessHysteresis is the smallest change of the potentiometer that
	// is reported, to hide ADC noise.
	brightnessHysteresis = 3
)

// Inputs samples the button and the brightness potentiometer.
type Inputs struct {
	Button machine.Pin
	Pot    machine.ADC
}

// ConfigureInputs configures the button pin, pulled up and active low, and
// the potentiometer ADC.
func ConfigureInputs(buttonPin, potPin machine.Pin) Inputs {
	buttonPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	machine.InitADC()
	pot := machine.ADC{Pin: potPin}
	pot.Configure(machine.ADCConfig{})

	return Inputs{Button: buttonPin, Pot: pot}
}

// PollInputs reports debounced button edges and brightness changes to the
// host forever.
func (d *Device) PollInputs(in Inputs) {
	start := time.Now()

	pressed := false
	lastRaw := false
	lastChange := start

	lastBrightness := -brightnessHysteresis - 1

	for {
		now := time.Now()

		raw := !in.Button.Get()
		if raw != lastRaw {
			lastRaw = raw
			lastChange = now
		}
		if raw != pressed && now.Sub(lastChange) >= debounceDelay {
			pressed = raw
			d.status.SetHeld(pressed)
			d.sendPacket(ledserial.ButtonPacket{
				Pressed: pressed,
				Millis:  uint32(now.Sub(start).Milliseconds()),
			})
		}

		// The ADC returns 16 bits regardless of its real resolution.
		brightness := int(in.Pot.Get() >> 8)
		if diff := brightness - lastBrightness; diff > brightnessHysteresis || diff < -brightnessHysteresis ||
			(brightness != lastBrightness && (brightness == 0 || brightness == 255)) {
			lastBrightness = brightness
			d.sendPacket(ledserial.BrightnessPacket{Value: uint8(brightness)})
		}

		time.Sleep(inputPollInterval)
	}
}
