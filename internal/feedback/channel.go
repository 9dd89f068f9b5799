package feedback

import "sync"

// DefaultBuffer is the channel capacity used when none is given.
const DefaultBuffer = 32

// Channel delivers events over a buffered channel.
// The TUI reads Events() to flash the status line.
type Channel struct {
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewChannel creates a channel notifier holding up to size events.
func NewChannel(size int) *Channel {
	if size < 1 {
		size = DefaultBuffer
	}
	return &Channel{
		events: make(chan Event, size),
		done:   make(chan struct{}),
	}
}

// Notify queues e. When the buffer is full the oldest event is dropped.
func (c *Channel) Notify(e Event) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.events <- e:
		return
	default:
	}

	// Full: drop oldest, retry once.
	select {
	case <-c.events:
	default:
	}
	select {
	case c.events <- e:
	default:
	}
}

// Events returns the receive side.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// Done is closed once Close is called.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Close stops delivery. Safe to call more than once.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
