package dragsession

import (
	"time"

	"draglist/internal/autoscroll"
	"draglist/internal/domain"
)

// Phase tracks the gesture lifecycle
type Phase uint8

const (
	// PhaseIdle is the default state, no gesture in progress.
	PhaseIdle Phase = iota
	// PhasePending is a press waiting to qualify as a drag.
	PhasePending
	// PhaseActive is a live drag.
	PhaseActive
	// PhaseEnding is the transient state while the final reorder
	// instruction is emitted.
	PhaseEnding
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "PhaseIdle"
	case PhasePending:
		return "PhasePending"
	case PhaseActive:
		return "PhaseActive"
	case PhaseEnding:
		return "PhaseEnding"
	default:
		panic("invalid Phase")
	}
}

// Kind is a pointer event kind
type Kind uint8

const (
	KindPress Kind = iota
	KindMove
	KindRelease
	KindCancel
)

// PointerEvent is a low level pointer event in viewport coordinates.
// Primary discriminates the primary button or single touch point.
type PointerEvent struct {
	Kind     Kind
	Position domain.Point
	Time     time.Time
	Primary  bool
}

// AxisLock pins one pointer axis to its activation-time value
type AxisLock uint8

const (
	LockNone AxisLock = iota
	LockX
	LockY
)

// TimerScheduler schedules a single callback after a delay. Hosts with
// their own event loop should deliver the callback on that loop.
type TimerScheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// AfterFuncTimer is a TimerScheduler backed by time.AfterFunc. The callback
// fires on its own goroutine, so hosts with a serialized event loop should
// wrap it rather than use it directly.
type AfterFuncTimer struct{}

func (AfterFuncTimer) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Haptics is an optional discrete feedback capability, pulsed at drag
// start, on each over-index change, and at drag end. Absence and failures
// are silently ignored.
type Haptics interface {
	Pulse()
}

// Options configures a session
type Options struct {
	Activation domain.ActivationConfig
	AxisLock   AxisLock
	Timers     TimerScheduler
	Haptics    Haptics
	// Resolver locates the scroll container at activation. Nil disables
	// auto-scroll entirely.
	Resolver autoscroll.Resolver
}

// Snapshot is an immutable copy of the session state, published after each
// transition and safe to read from anywhere
type Snapshot struct {
	Phase                   Phase
	GestureID               string
	DraggedID               string
	OriginIndex             int
	OverIndex               int
	OverItemID              string
	InitialPosition         domain.Point
	CurrentPosition         domain.Point
	PointerOffsetWithinItem domain.Point
	AccumulatedScrollDelta  domain.Point
}
