// Package autoscroll converts pointer proximity to a scroll container's
// edges into a continuous scroll velocity and drives the scroll on an
// animation-frame cadence.
package autoscroll

import (
	"time"

	"go.uber.org/zap"

	"draglist/internal/domain"
)

// Viewport is the scrollable container the scroller drives. Hosts supply
// an implementation; the engine has no knowledge of rendering internals.
type Viewport interface {
	// Bounds returns the visible rectangle of the container in viewport
	// coordinates.
	Bounds() domain.Rect
	// ScrollOffset returns the current scroll offsets. Offsets are zero at
	// the start extreme.
	ScrollOffset() domain.Point
	// MaxScrollOffset returns the maximum scrollable offsets.
	MaxScrollOffset() domain.Point
	// ScrollBy scrolls by delta and returns the delta actually achieved,
	// which may be smaller when a scroll boundary is hit.
	ScrollBy(delta domain.Point) domain.Point
}

// Resolver locates the scroll container for a gesture. Resolution may
// complete asynchronously, after the gesture has already started; done is
// invoked with a nil Viewport when no container can be found.
type Resolver interface {
	Resolve(done func(Viewport, error))
}

// FrameScheduler invokes a callback on a fixed animation-frame cadence
// until stopped. Hosts must serialize the callback onto the same logical
// thread as pointer handling.
type FrameScheduler interface {
	Start(fn func(now time.Time)) (stop func())
}

// State reports whether the scroller is currently driving the container
type State uint8

const (
	// StateIdle is the default scroll state.
	StateIdle State = iota
	// StateScrolling is reported while a nonzero velocity is applied on
	// each frame.
	StateScrolling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "StateIdle"
	case StateScrolling:
		return "StateScrolling"
	default:
		panic("invalid State")
	}
}

// Scroller computes edge-proximity velocities and applies them to the
// viewport each frame, reporting the actual deltas achieved so the caller
// can compensate pointer-relative math.
type Scroller struct {
	cfg        domain.AutoScrollConfig
	frames     FrameScheduler
	onScrolled func(actual domain.Point)
	log        *zap.Logger

	viewport Viewport
	velocity domain.Point
	lastPos  domain.Point
	stopLoop func()
}

// New creates a scroller. onScrolled receives the actual scroll delta after
// each applied frame and may be nil.
func New(cfg domain.AutoScrollConfig, frames FrameScheduler, onScrolled func(domain.Point), log *zap.Logger) *Scroller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scroller{
		cfg:        cfg,
		frames:     frames,
		onScrolled: onScrolled,
		log:        log,
	}
}

// SetViewport attaches the resolved scroll container. May be called after
// the gesture has started; until then every update is a no-op.
func (s *Scroller) SetViewport(v Viewport) {
	s.viewport = v
}

// Viewport returns the attached scroll container, if any
func (s *Scroller) Viewport() Viewport {
	return s.viewport
}

// State reports the scroll state
func (s *Scroller) State() State {
	if s.stopLoop != nil {
		return StateScrolling
	}
	return StateIdle
}

// Velocity returns the most recently computed per-frame velocity
func (s *Scroller) Velocity() domain.Point {
	return s.velocity
}

// Update recomputes the velocity for the pointer position and starts or
// stops the frame loop accordingly
func (s *Scroller) Update(pos domain.Point) {
	s.lastPos = pos
	s.velocity = s.VelocityFor(pos)

	if s.velocity.IsZero() {
		s.Stop()
		return
	}
	if s.stopLoop == nil {
		s.log.Debug("autoscroll started",
			zap.Float64("vx", s.velocity.X),
			zap.Float64("vy", s.velocity.Y))
		s.stopLoop = s.frames.Start(s.Tick)
	}
}

// Tick applies one frame of scrolling. The frame scheduler calls this; it
// is also the seam tests drive directly.
func (s *Scroller) Tick(now time.Time) {
	if s.stopLoop == nil || s.viewport == nil {
		return
	}
	actual := s.viewport.ScrollBy(s.velocity)
	if !actual.IsZero() && s.onScrolled != nil {
		s.onScrolled(actual)
	}
	// A boundary may have been reached; recompute from the last pointer
	// position so the loop winds down without waiting for another move.
	s.velocity = s.VelocityFor(s.lastPos)
	if s.velocity.IsZero() {
		s.Stop()
	}
}

// Stop halts the frame loop and zeroes the velocity
func (s *Scroller) Stop() {
	if s.stopLoop != nil {
		s.stopLoop()
		s.stopLoop = nil
		s.log.Debug("autoscroll stopped")
	}
	s.velocity = domain.Point{}
}

// VelocityFor computes the per-frame scroll velocity for a pointer
// position without mutating scroller state.
//
// Each edge contributes when the pointer is within ThresholdPx of it and
// the container can still scroll further in that direction. Opposing edges
// are mutually exclusive per axis.
func (s *Scroller) VelocityFor(pos domain.Point) domain.Point {
	if !s.cfg.Enabled || s.viewport == nil {
		return domain.Point{}
	}

	bounds := s.viewport.Bounds()
	offset := s.viewport.ScrollOffset()
	max := s.viewport.MaxScrollOffset()

	var v domain.Point
	if d := pos.Y - bounds.Top; d < s.cfg.ThresholdPx && offset.Y > 0 {
		v.Y = -s.speed(d)
	} else if d := bounds.Bottom - pos.Y; d < s.cfg.ThresholdPx && offset.Y < max.Y {
		v.Y = s.speed(d)
	}
	if d := pos.X - bounds.Left; d < s.cfg.ThresholdPx && offset.X > 0 {
		v.X = -s.speed(d)
	} else if d := bounds.Right - pos.X; d < s.cfg.ThresholdPx && offset.X < max.X {
		v.X = s.speed(d)
	}
	return v
}

// speed maps a distance-from-edge to a speed magnitude. The 0.1 intensity
// floor guarantees a minimum creep speed rather than a hard cutoff at the
// threshold boundary; distance at or past the edge saturates to full
// intensity.
func (s *Scroller) speed(distance float64) float64 {
	intensity := 1.0
	if distance > 0 {
		intensity = 1 - distance/s.cfg.ThresholdPx
		if intensity < 0.1 {
			intensity = 0.1
		}
		if intensity > 1 {
			intensity = 1
		}
	}
	speed := intensity * s.cfg.MaxSpeedPxPerFrame * s.cfg.Acceleration
	if speed > s.cfg.MaxSpeedPxPerFrame {
		speed = s.cfg.MaxSpeedPxPerFrame
	}
	return speed
}
