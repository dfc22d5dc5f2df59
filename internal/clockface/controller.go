package clockface

import "libdb.so/ringclock/internal/button"

// State is the persisted part of the clock: the selected color scheme and
// clock mode. On storage, it is two single bytes.
type State struct {
	Scheme uint8
	Mode   Mode
}

// Valid returns true if the state is within range for a catalog of the given
// size.
func (s State) Valid(schemeCount int) bool {
	return int(s.Scheme) < schemeCount && s.Mode.Valid()
}

// Controller holds the current clock mode and color scheme and advances them
// on button events. It is not safe for concurrent use.
type Controller struct {
	state   State
	schemes int
	dirty   bool
	reset   bool
}

// NewController creates a controller from the persisted state. A state that
// is out of range, such as uninitialized storage, is treated as corrupt and
// replaced by the zero state, which is then due to be persisted.
func NewController(persisted State, schemeCount int) *Controller {
	if schemeCount < 1 {
		panic("clockface: scheme count must be positive")
	}

	c := &Controller{
		state:   persisted,
		schemes: schemeCount,
	}
	if !persisted.Valid(schemeCount) {
		c.state = State{}
		c.reset = true
		c.dirty = true
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Mode returns the current clock mode.
func (c *Controller) Mode() Mode {
	return c.state.Mode
}

// SchemeIndex returns the current color scheme index.
func (c *Controller) SchemeIndex() int {
	return int(c.state.Scheme)
}

// WasReset returns true if the persisted state given to NewController was
// discarded.
func (c *Controller) WasReset() bool {
	return c.reset
}

// Handle applies a button event. A short press advances the clock mode and a
// long press advances the color scheme.
func (c *Controller) Handle(ev button.Event) {
	switch ev {
	case button.ShortPress:
		c.state.Mode = c.state.Mode.Next()
	case button.LongPress:
		c.state.Scheme = uint8((int(c.state.Scheme) + 1) % c.schemes)
	default:
		return
	}
	c.dirty = true
}

// Persist returns the state and true if it changed since the last call, in
// which case the caller must save it. The dirty flag is cleared.
func (c *Controller) Persist() (State, bool) {
	if !c.dirty {
		return c.state, false
	}
	c.dirty = false
	return c.state, true
}
