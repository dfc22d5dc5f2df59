// Package button turns raw button edges into discrete press events.
package button

import (
	"fmt"
	"sync"
	"time"
)

// Event is a classified button press.
type Event uint8

const (
	// ShortPress is a press released before the long press delay.
	ShortPress Event = iota
	// LongPress is a press held for at least the long press delay.
	LongPress
)

// String returns a string representation of the event.
func (e Event) String() string {
	switch e {
	case ShortPress:
		return "short"
	case LongPress:
		return "long"
	default:
		return fmt.Sprintf("Event(%d)", e)
	}
}

// Edge is a raw transition of the button. At is a monotonic timestamp; only
// differences between timestamps matter.
type Edge struct {
	Pressed bool
	At      time.Duration
}

// Classifier classifies raw edges into events. A press released before
// LongPress is a ShortPress. A press held for LongPress emits a
// single LongPress right away, and then one more for every further Repeat the
// same press is held. Nothing else emits.
//
// A Classifier is not safe for concurrent use.
type Classifier struct {
	LongPress time.Duration
	Repeat    time.Duration

	down      bool
	downAt    time.Duration
	nextLong  time.Duration
	longFired bool
}

// NewClassifier creates a new classifier.
func NewClassifier(longPress, repeat time.Duration) *Classifier {
	return &Classifier{
		LongPress: longPress,
		Repeat:    repeat,
	}
}

// Feed feeds a raw edge into the classifier. It returns the event completed by
// this edge, if any.
func (c *Classifier) Feed(e Edge) (Event, bool) {
	if e.Pressed {
		if c.down {
			return 0, false
		}
		c.down = true
		c.downAt = e.At
		c.nextLong = e.At + c.LongPress
		c.longFired = false
		return 0, false
	}

	if !c.down {
		return 0, false
	}
	c.down = false

	if c.longFired {
		return 0, false
	}
	// The hold crossed the threshold but nobody polled in time.
	if e.At-c.downAt >= c.LongPress {
		return LongPress, true
	}
	return ShortPress, true
}

// Poll reports a LongPress if the current press has been held past the next
// threshold at the given time. It must be called periodically while the
// button is down.
func (c *Classifier) Poll(now time.Duration) (Event, bool) {
	if !c.down || now < c.nextLong {
		return 0, false
	}

	c.longFired = true
	if c.Repeat > 0 {
		c.nextLong += c.Repeat
		if c.nextLong <= now {
			// Skip the thresholds missed by a late poll.
			missed := (now-c.nextLong)/c.Repeat + 1
			c.nextLong += missed * c.Repeat
		}
	} else {
		c.nextLong = 1<<63 - 1
	}

	return LongPress, true
}

// Queue is a bounded FIFO of events. When full, the oldest event is dropped.
// It is safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	events []Event
	limit  int
}

// DefaultQueueSize is the default bound of a Queue.
const DefaultQueueSize = 16

// NewQueue creates a new queue holding at most limit events. A limit below 1
// uses DefaultQueueSize.
func NewQueue(limit int) *Queue {
	if limit < 1 {
		limit = DefaultQueueSize
	}
	return &Queue{
		events: make([]Event, 0, limit),
		limit:  limit,
	}
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == q.limit {
		copy(q.events, q.events[1:])
		q.events = q.events[:len(q.events)-1]
	}
	q.events = append(q.events, e)
}

// PollEvent pops the oldest event. It never blocks.
func (q *Queue) PollEvent() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return 0, false
	}
	e := q.events[0]
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]
	return e, true
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
