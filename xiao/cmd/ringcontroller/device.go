package main

import (
	"fmt"
	"machine"
	"sync"

	"libdb.so/ringclock/ledserial"
	"tinygo.org/x/drivers/ws2812"
)

// Device stores the current state of the device.
type Device struct {
	serial serialPort
	led    ws2812.Device
	status *statusLED

	// writeMu serializes packets written by the packet loop and the input
	// poller.
	writeMu   sync.Mutex
	numLEDs   uint16
	ledBuffer []byte
}

// NewDevice creates a new device.
func NewDevice(serial machine.Serialer, ledPin machine.Pin) *Device {
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &Device{
		serial: serialPort{Serialer: serial},
		led:    ws2812.New(ledPin),
		status: newStatusLED(),
	}
}

// Run runs the device loop forever.
func (d *Device) Run() {
	for {
		p, err := d.readPacket()
		if err == nil {
			err = d.handlePacket(p)
		}

		if err != nil {
			d.status.SetLink(linkFailed)
			d.logError(err)
			continue
		}

		if d.numLEDs > 0 {
			d.status.SetLink(linkReady)
		}
	}
}

func (d *Device) log(msg string) {
	d.sendPacket(ledserial.LogPacket{Message: msg})
}

func (d *Device) logError(err error) {
	d.sendPacket(ledserial.ErrorPacket{Message: err.Error()})
}

func (d *Device) sendPacket(p ledserial.OutgoingPacket) {
	d.writeMu.Lock()
	ledserial.WriteOutgoingPacket(d.serial, p)
	d.writeMu.Unlock()
}

func (d *Device) readPacket() (ledserial.IncomingPacket, error) {
	return ledserial.ReadIncomingPacket(d.serial, ledserial.ReadContext{
		NumLEDs:   d.numLEDs,
		LEDBuffer: d.ledBuffer,
	})
}

func (d *Device) handlePacket(p ledserial.IncomingPacket) error {
	switch p := p.(type) {
	case ledserial.InitializePacket:
		if p.NumLEDs < 1 {
			return fmt.Errorf("invalid number of LEDs: %d", p.NumLEDs)
		}
		d.numLEDs = p.NumLEDs
		d.ledBuffer = make([]byte, 3*int(p.NumLEDs))
		d.clearLEDs(true)
		d.log(fmt.Sprintf("ring initialized with %d LEDs", p.NumLEDs))

	case ledserial.ClearPacket:
		d.clearLEDs(false)

	case ledserial.SetPacket:
		if len(p.Pix) != 3*int(d.numLEDs) {
			return fmt.Errorf("invalid number of pixels: %d", len(p.Pix)/3)
		}
		// WS2812s take green first.
		for i := 0; i+2 < len(p.Pix); i += 3 {
			writeLEDRGB(d.led, p.Pix[i], p.Pix[i+1], p.Pix[i+2])
		}

	default:
		return fmt.Errorf("unknown packet type: %T", p)
	}

	d.sendPacket(ledserial.AckPacket{
		IncomingPacketType: p.Type(),
	})
	return nil
}

// clearLEDs turns the ring off. If signalReady is set, the first LED is lit
// red and the last one blue so that the orientation of the ring is visible.
func (d *Device) clearLEDs(signalReady bool) {
	n := int(d.numLEDs)
	for i := 0; i < n; i++ {
		switch {
		case signalReady && i == 0:
			writeLEDRGB(d.led, 255, 0, 0)
		case signalReady && i == n-1:
			writeLEDRGB(d.led, 0, 0, 255)
		default:
			writeLEDRGB(d.led, 0, 0, 0)
		}
	}
}

func writeLEDRGB(led ws2812.Device, r, g, b uint8) {
	led.WriteByte(g)
	led.WriteByte(r)
	led.WriteByte(b)
}
