package ui

import (
	"time"
)

// frameTimers is a TimerScheduler whose callbacks fire from the model's
// tick handler instead of a background goroutine, keeping the engine on
// the tea event loop.
type frameTimers struct {
	nextID  uint64
	pending []pendingTimer
}

type pendingTimer struct {
	id       uint64
	deadline time.Time
	fn       func()
}

func (t *frameTimers) Schedule(d time.Duration, fn func()) func() {
	t.nextID++
	id := t.nextID
	t.pending = append(t.pending, pendingTimer{
		id:       id,
		deadline: time.Now().Add(d),
		fn:       fn,
	})
	return func() {
		for i, p := range t.pending {
			if p.id == id {
				t.pending = append(t.pending[:i], t.pending[i+1:]...)
				return
			}
		}
	}
}

// fire runs every timer whose deadline has passed
func (t *frameTimers) fire(now time.Time) {
	var due []func()
	remaining := t.pending[:0]
	for _, p := range t.pending {
		if !p.deadline.After(now) {
			due = append(due, p.fn)
		} else {
			remaining = append(remaining, p)
		}
	}
	t.pending = remaining
	for _, fn := range due {
		fn()
	}
}

// frameLoop is a FrameScheduler driven by the model's tick handler
type frameLoop struct {
	fn func(now time.Time)
}

func (l *frameLoop) Start(fn func(now time.Time)) func() {
	l.fn = fn
	return func() {
		l.fn = nil
	}
}

// tick advances the loop one frame if it is running
func (l *frameLoop) tick(now time.Time) {
	if l.fn != nil {
		l.fn(now)
	}
}
