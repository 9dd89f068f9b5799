// Package feedback carries the cues the session emits while a player works a
// stage. Events are fire-and-forget: a notifier must never block the caller.
package feedback

import (
	"io"
	"sync"
	"sync/atomic"
)

// Event is a feedback cue.
type Event string

const (
	Click   Event = "click"   // Any accepted pick or control press
	Success Event = "success" // A pick unlocked a feature
	Error   Event = "error"   // A full pick set did not match
	Unlock  Event = "unlock"  // A full pick set matched
)

// Notifier receives feedback events.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

// Notify calls f(e).
func (f NotifierFunc) Notify(e Event) { f(e) }

// Discard drops every event.
var Discard Notifier = NotifierFunc(func(Event) {})

// Recorder keeps every event it receives. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Notify appends e.
func (r *Recorder) Notify(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Last returns the most recent event, if any.
func (r *Recorder) Last() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return "", false
	}
	return r.events[len(r.events)-1], true
}

// Reset forgets recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// Mute gates another notifier behind a toggle.
type Mute struct {
	next  Notifier
	muted atomic.Bool
}

// NewMute wraps next. The initial state is muted when muted is true.
func NewMute(next Notifier, muted bool) *Mute {
	m := &Mute{next: next}
	m.muted.Store(muted)
	return m
}

// Notify forwards e unless muted.
func (m *Mute) Notify(e Event) {
	if m.muted.Load() {
		return
	}
	m.next.Notify(e)
}

// Toggle flips the mute state and returns the new value.
func (m *Mute) Toggle() bool {
	for {
		cur := m.muted.Load()
		if m.muted.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// Muted reports the current mute state.
func (m *Mute) Muted() bool {
	return m.muted.Load()
}

// Bell rings the terminal bell on error and unlock. Write errors are ignored.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a bell that writes to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Notify writes BEL for the events that deserve attention.
func (b *Bell) Notify(e Event) {
	if e != Error && e != Unlock {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.w.Write([]byte{'\a'})
}

// Multi fans an event out to several notifiers in order.
type Multi []Notifier

// Notify forwards e to every non-nil notifier.
func (m Multi) Notify(e Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(e)
		}
	}
}
