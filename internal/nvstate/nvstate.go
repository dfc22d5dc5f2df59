// Package nvstate stores the clock state in a small file that plays the role
// of the microcontroller EEPROM: the scheme index at byte 0 and the clock mode
// at byte 1.
package nvstate

import (
	"io"
	"io/fs"
	"os"

	"github.com/pkg/errors"
	"libdb.so/ringclock/internal/clockface"
)

const (
	addrColorScheme = 0
	addrClockMode   = 1
	stateSize       = 2
)

// erased is the value of a byte that has never been written.
const erased = 0xFF

// File is a state store backed by a file.
type File struct {
	Path string
}

// NewFile creates a new file store. The file is created on the first Save.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Load reads the state. A missing or short file reads as erased bytes, which
// the controller treats as uninitialized.
func (f *File) Load() (clockface.State, error) {
	buf := [stateSize]byte{erased, erased}

	file, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return decode(buf), nil
		}
		return decode(buf), errors.Wrap(err, "failed to open state file")
	}
	defer file.Close()

	if _, err := io.ReadFull(file, buf[:]); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return decode(buf), errors.Wrap(err, "failed to read state file")
	}

	return decode(buf), nil
}

// Save writes both bytes of the state in place.
func (f *File) Save(s clockface.State) error {
	file, err := os.OpenFile(f.Path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to open state file")
	}

	if _, err := file.WriteAt([]byte{addrColorScheme: s.Scheme, addrClockMode: byte(s.Mode)}, 0); err != nil {
		file.Close()
		return errors.Wrap(err, "failed to write state file")
	}

	return errors.Wrap(file.Close(), "failed to close state file")
}

func decode(buf [stateSize]byte) clockface.State {
	return clockface.State{
		Scheme: buf[addrColorScheme],
		Mode:   clockface.Mode(buf[addrClockMode]),
	}
}
