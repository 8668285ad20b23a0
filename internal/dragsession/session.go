// Package dragsession owns the lifecycle of one press-hold-drag-release
// gesture: activation gating, live position tracking, orchestration of
// geometry, displacement and auto-scroll, and emission of lifecycle events
// culminating in a committed or cancelled reorder.
package dragsession

import (
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"draglist/internal/autoscroll"
	"draglist/internal/domain"
	"draglist/internal/eventbus"
	"draglist/internal/geometry"
)

// Session is the drag state machine. One gesture may be live at a time;
// presses arriving while another gesture is live are ignored.
//
// The session is single-threaded by contract: the host must serialize
// pointer events, timer callbacks and scroll frames onto one logical
// thread. All gesture fields are overwritten in place across transitions;
// no state object is allocated mid-gesture.
type Session struct {
	registry *geometry.Registry
	hits     *geometry.HitTester
	scroller *autoscroll.Scroller
	bus      eventbus.EventBus
	log      *zap.Logger
	opts     Options

	phase         Phase
	gestureID     string
	draggedID     string
	originIndex   int
	overIndex     int
	overItemID    string
	initialPos    domain.Point
	currentPos    domain.Point
	pointerOffset domain.Point
	scrollDelta   domain.Point
	cancelTimer   func()
	resolveSeq    uint64
}

// New creates an idle session
func New(registry *geometry.Registry, scroller *autoscroll.Scroller, bus eventbus.EventBus, opts Options, log *zap.Logger) *Session {
	if bus == nil {
		bus = &eventbus.NullBus{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Timers == nil {
		opts.Timers = AfterFuncTimer{}
	}
	s := &Session{
		registry: registry,
		hits:     geometry.NewHitTester(registry),
		scroller: scroller,
		bus:      bus,
		log:      log,
		opts:     opts,
	}
	s.resetFields()
	return s
}

// Phase returns the current gesture phase
func (s *Session) Phase() Phase {
	return s.phase
}

// Snapshot returns an immutable copy of the session state
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Phase:                   s.phase,
		GestureID:               s.gestureID,
		DraggedID:               s.draggedID,
		OriginIndex:             s.originIndex,
		OverIndex:               s.overIndex,
		OverItemID:              s.overItemID,
		InitialPosition:         s.initialPos,
		CurrentPosition:         s.currentPos,
		PointerOffsetWithinItem: s.pointerOffset,
		AccumulatedScrollDelta:  s.scrollDelta,
	}
}

// PointerDown begins a pending gesture on the item with itemID. When
// itemID is empty the item is resolved by hit-testing the position.
// Non-primary presses and presses while a gesture is live are ignored.
func (s *Session) PointerDown(ev PointerEvent, itemID string) {
	if !ev.Primary || s.phase != PhaseIdle {
		return
	}
	if itemID == "" {
		hit, ok := s.hits.Locate(ev.Position, "")
		if !ok {
			return
		}
		itemID = hit.ID
	}
	rec, ok := s.registry.Get(itemID)
	if !ok {
		s.log.Warn("press on unregistered item", zap.String("item", itemID))
		return
	}

	s.phase = PhasePending
	s.gestureID = uuid.NewString()
	s.draggedID = itemID
	s.originIndex = rec.Index
	s.initialPos = ev.Position
	s.currentPos = ev.Position

	delay := s.opts.Activation.DelayMs
	if delay <= 0 {
		s.activate()
		return
	}
	s.cancelTimer = s.opts.Timers.Schedule(millis(delay), s.activateByDelay)
}

// PointerMove feeds a pointer move into the session
func (s *Session) PointerMove(ev PointerEvent) {
	switch s.phase {
	case PhasePending:
		s.currentPos = ev.Position
		if d := s.opts.Activation.DistancePx; d > 0 && distance(s.initialPos, ev.Position) >= d {
			s.activate()
			if s.phase == PhaseActive {
				s.moveActive(ev.Position)
			}
		}
	case PhaseActive:
		s.moveActive(ev.Position)
	}
}

// PointerUp commits the gesture. A release before activation is a tap and
// emits nothing.
func (s *Session) PointerUp(ev PointerEvent) {
	if s.phase == PhaseActive {
		s.moveActive(ev.Position)
	}
	s.finish(false)
}

// PointerCancel cancels the gesture, e.g. on loss of the global pointer
// track
func (s *Session) PointerCancel() {
	s.finish(true)
}

// Cancel cancels the gesture programmatically (escape key, host request)
func (s *Session) Cancel() {
	s.finish(true)
}

// ApplyScrollDelta accrues an actual scroll delta reported by the
// auto-scroller and re-derives the over target from the compensated
// position. Without the compensation the dragged element would slip
// relative to the pointer as the content scrolls beneath it.
func (s *Session) ApplyScrollDelta(actual domain.Point) {
	if s.phase != PhaseActive {
		return
	}
	s.scrollDelta = s.scrollDelta.Add(actual)
	if !s.ensureDragged() {
		return
	}
	s.updateOver()
	s.publishMove()
}

// activateByDelay fires when the activation timer elapses before the
// distance threshold is crossed
func (s *Session) activateByDelay() {
	if s.phase != PhasePending {
		return
	}
	s.activate()
}

// activate transitions Pending to Active. phase and draggedID only ever
// change together, within a single transition.
func (s *Session) activate() {
	s.stopTimer()

	rec, ok := s.registry.Get(s.draggedID)
	if !ok {
		// The item vanished between press and activation; treat the
		// gesture as a tap.
		s.log.Warn("dragged item vanished before activation", zap.String("item", s.draggedID))
		s.resetFields()
		return
	}

	s.phase = PhaseActive
	s.originIndex = rec.Index
	s.overIndex = rec.Index
	s.overItemID = ""
	s.pointerOffset = s.initialPos.Sub(domain.Point{X: rec.Bounds.Left, Y: rec.Bounds.Top})
	s.scrollDelta = domain.Point{}

	s.resolveViewport()
	s.pulse()

	s.log.Info("drag started",
		zap.String("gesture", s.gestureID),
		zap.String("item", s.draggedID),
		zap.Int("origin", s.originIndex))
	s.bus.Publish(domain.DragStartedEvent{
		GestureID:   s.gestureID,
		ItemID:      s.draggedID,
		OriginIndex: s.originIndex,
	})
}

// resolveViewport kicks off scroll-container resolution. Resolution may
// complete after the gesture has moved on, or after it has ended; a stale
// or failed resolution leaves auto-scroll inactive and everything else
// proceeds.
func (s *Session) resolveViewport() {
	if s.opts.Resolver == nil || s.scroller == nil {
		return
	}
	seq := s.resolveSeq
	s.opts.Resolver.Resolve(func(vp autoscroll.Viewport, err error) {
		if s.resolveSeq != seq || s.phase != PhaseActive {
			return
		}
		if err != nil || vp == nil {
			s.log.Debug("scroll container resolution failed", zap.Error(err))
			return
		}
		s.scroller.SetViewport(vp)
		s.scroller.Update(s.currentPos)
	})
}

// moveActive handles one pointer move while active. The order is fixed:
// position update, scroll evaluation, hit test, then notifications, so
// rendering always derives from the post-scroll-compensated position.
func (s *Session) moveActive(pos domain.Point) {
	switch s.opts.AxisLock {
	case LockX:
		pos.X = s.initialPos.X
	case LockY:
		pos.Y = s.initialPos.Y
	}
	s.currentPos = pos

	if s.scroller != nil {
		s.scroller.Update(pos)
	}
	if !s.ensureDragged() {
		return
	}
	s.updateOver()
	s.publishMove()
}

// ensureDragged cancels the gesture when the dragged item's record has
// been removed from the registry mid-gesture
func (s *Session) ensureDragged() bool {
	if _, ok := s.registry.Get(s.draggedID); !ok {
		s.log.Warn("dragged item vanished, cancelling",
			zap.String("gesture", s.gestureID),
			zap.String("item", s.draggedID))
		s.finish(true)
		return false
	}
	return true
}

// updateOver re-runs the hit test against the scroll-compensated pointer
// position, retaining the previous over index on a miss
func (s *Session) updateOver() {
	hitPos := s.currentPos.Add(s.scrollDelta)
	hit, ok := s.hits.Locate(hitPos, s.draggedID)
	if !ok {
		return
	}
	if hit.Index == s.overIndex && hit.ID == s.overItemID {
		return
	}
	changed := hit.Index != s.overIndex
	s.overIndex = hit.Index
	s.overItemID = hit.ID
	if changed {
		s.pulse()
		s.bus.Publish(domain.DragOverEvent{
			GestureID:  s.gestureID,
			ItemID:     s.draggedID,
			OverIndex:  s.overIndex,
			OverItemID: s.overItemID,
		})
	}
}

func (s *Session) publishMove() {
	s.bus.Publish(domain.DragMovedEvent{
		GestureID:      s.gestureID,
		ItemID:         s.draggedID,
		Position:       s.currentPos,
		DeltaFromStart: s.currentPos.Sub(s.initialPos).Add(s.scrollDelta),
	})
}

// finish terminates the gesture. Cancellation is synchronous and total:
// the scroll loop halts and all session fields reset in one step.
func (s *Session) finish(cancelled bool) {
	switch s.phase {
	case PhasePending:
		// Released or cancelled before activation: a tap, not a drag.
		s.stopTimer()
		s.resetFields()
		return
	case PhaseActive:
	default:
		return
	}

	s.phase = PhaseEnding
	if s.scroller != nil {
		s.scroller.Stop()
	}

	from := s.originIndex
	to := s.overIndex
	if cancelled {
		to = from
	}
	s.pulse()
	s.log.Info("drag ended",
		zap.String("gesture", s.gestureID),
		zap.String("item", s.draggedID),
		zap.Int("from", from),
		zap.Int("to", to),
		zap.Bool("cancelled", cancelled))
	s.bus.Publish(domain.DragEndedEvent{
		GestureID: s.gestureID,
		ItemID:    s.draggedID,
		FromIndex: from,
		ToIndex:   to,
		Cancelled: cancelled,
	})

	s.resetFields()
}

// resetFields returns every gesture field to its idle value. phase and
// draggedID change together here as in activate.
func (s *Session) resetFields() {
	s.phase = PhaseIdle
	s.gestureID = ""
	s.draggedID = ""
	s.originIndex = -1
	s.overIndex = -1
	s.overItemID = ""
	s.initialPos = domain.Point{}
	s.currentPos = domain.Point{}
	s.pointerOffset = domain.Point{}
	s.scrollDelta = domain.Point{}
	s.resolveSeq++
	s.stopTimer()
}

func (s *Session) stopTimer() {
	if s.cancelTimer != nil {
		s.cancelTimer()
		s.cancelTimer = nil
	}
}

func (s *Session) pulse() {
	if s.opts.Haptics != nil {
		s.opts.Haptics.Pulse()
	}
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func distance(a, b domain.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Hypot(dx, dy)
}
