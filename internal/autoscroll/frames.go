package autoscroll

import (
	"time"
)

// TickerFrames is a FrameScheduler backed by a time.Ticker. It is the
// default for hosts without their own frame clock; callbacks arrive on a
// separate goroutine, so such hosts must funnel them back onto their event
// loop before touching engine state.
type TickerFrames struct {
	Interval time.Duration
}

// Start begins invoking fn on the ticker cadence until the returned stop
// function is called
func (t TickerFrames) Start(fn func(now time.Time)) func() {
	interval := t.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}

	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case now := <-ticker.C:
				fn(now)
			case <-done:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}
