package main

import (
	"io"
	"machine"
	"time"
)

// serialPollInterval is how long Read sleeps while nothing is buffered.
const serialPollInterval = time.Millisecond

// serialPort adapts a machine.Serialer, which only moves single bytes, to an
// io.ReadWriter for the ledserial codec.
type serialPort struct {
	machine.Serialer
}

var _ io.ReadWriter = serialPort{}

// Read blocks until at least one byte has arrived, then returns as many
// buffered bytes as fit into b.
func (s serialPort) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	for s.Buffered() == 0 {
		time.Sleep(serialPollInterval)
	}

	n := min(s.Buffered(), len(b))
	for i := range n {
		c, err := s.ReadByte()
		if err != nil {
			return i, err
		}
		b[i] = c
	}
	return n, nil
}

func (s serialPort) Write(b []byte) (int, error) {
	for i, c := range b {
		if err := s.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(b), nil
}
