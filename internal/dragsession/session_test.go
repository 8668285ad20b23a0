package dragsession

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draglist/internal/domain"
	"draglist/internal/eventbus"
	"draglist/internal/geometry"
)

// manualTimer is a TimerScheduler the tests fire by hand
type manualTimer struct {
	fn        func()
	delay     time.Duration
	scheduled int
	cancelled int
}

func (mt *manualTimer) Schedule(d time.Duration, fn func()) func() {
	mt.fn = fn
	mt.delay = d
	mt.scheduled++
	return func() {
		if mt.fn != nil {
			mt.fn = nil
			mt.cancelled++
		}
	}
}

func (mt *manualTimer) fire() {
	if mt.fn != nil {
		fn := mt.fn
		mt.fn = nil
		fn()
	}
}

// recorder captures drag lifecycle events in dispatch order
type recorder struct {
	events []eventbus.DomainEvent
}

func newRecorder(bus eventbus.EventBus) *recorder {
	rec := &recorder{}
	capture := func(e eventbus.DomainEvent) { rec.events = append(rec.events, e) }
	bus.Subscribe(eventbus.EventDragStarted, capture)
	bus.Subscribe(eventbus.EventDragMoved, capture)
	bus.Subscribe(eventbus.EventDragOver, capture)
	bus.Subscribe(eventbus.EventDragEnded, capture)
	return rec
}

func (r *recorder) started() []domain.DragStartedEvent {
	var out []domain.DragStartedEvent
	for _, e := range r.events {
		if ev, ok := e.(domain.DragStartedEvent); ok {
			out = append(out, ev)
		}
	}
	return out
}

func (r *recorder) overs() []domain.DragOverEvent {
	var out []domain.DragOverEvent
	for _, e := range r.events {
		if ev, ok := e.(domain.DragOverEvent); ok {
			out = append(out, ev)
		}
	}
	return out
}

func (r *recorder) ended() []domain.DragEndedEvent {
	var out []domain.DragEndedEvent
	for _, e := range r.events {
		if ev, ok := e.(domain.DragEndedEvent); ok {
			out = append(out, ev)
		}
	}
	return out
}

// newTestSession builds a session over 5 stacked rows, 10px tall each
func newTestSession(t *testing.T, opts Options) (*Session, *geometry.Registry, *recorder, *manualTimer) {
	t.Helper()

	reg := geometry.NewRegistry()
	for i := 0; i < 5; i++ {
		top := float64(i * 10)
		err := reg.Register(itemID(i), i, domain.Rect{Left: 0, Top: top, Right: 100, Bottom: top + 9})
		require.NoError(t, err)
	}

	timer := &manualTimer{}
	if opts.Timers == nil {
		opts.Timers = timer
	}
	if opts.Activation == (domain.ActivationConfig{}) {
		opts.Activation = domain.ActivationConfig{DelayMs: 150, DistancePx: 5}
	}

	bus := eventbus.New(nil)
	rec := newRecorder(bus)
	s := New(reg, nil, bus, opts, nil)
	return s, reg, rec, timer
}

func itemID(i int) string {
	return []string{"alpha", "bravo", "charlie", "delta", "echo"}[i]
}

func press(s *Session, x, y float64) {
	s.PointerDown(PointerEvent{Kind: KindPress, Position: domain.Point{X: x, Y: y}, Primary: true}, "")
}

func move(s *Session, x, y float64) {
	s.PointerMove(PointerEvent{Kind: KindMove, Position: domain.Point{X: x, Y: y}, Primary: true})
}

func release(s *Session, x, y float64) {
	s.PointerUp(PointerEvent{Kind: KindRelease, Position: domain.Point{X: x, Y: y}, Primary: true})
}

func TestActivationByDistanceBeatsDelay(t *testing.T) {
	s, _, rec, timer := newTestSession(t, Options{})

	press(s, 50, 5)
	assert.Equal(t, PhasePending, s.Phase())
	assert.Equal(t, 1, timer.scheduled)
	assert.Equal(t, 150*time.Millisecond, timer.delay)

	// A 6px move crosses the 5px threshold long before the 150ms delay.
	move(s, 50, 11)
	assert.Equal(t, PhaseActive, s.Phase())
	require.Len(t, rec.started(), 1)
	assert.Equal(t, 0, rec.started()[0].OriginIndex)
	assert.Equal(t, 1, timer.cancelled, "the losing activation path is cancelled")
}

func TestActivationByDelayWhileStationary(t *testing.T) {
	s, _, rec, timer := newTestSession(t, Options{})

	press(s, 50, 5)
	move(s, 52, 6) // under the 5px threshold
	assert.Equal(t, PhasePending, s.Phase())
	assert.Empty(t, rec.started())

	timer.fire()
	assert.Equal(t, PhaseActive, s.Phase())
	require.Len(t, rec.started(), 1)

	snap := s.Snapshot()
	assert.Equal(t, 0, snap.OriginIndex)
	assert.Equal(t, 0, snap.OverIndex, "over index defaults to origin at activation")
}

func TestReleaseBeforeActivationIsATap(t *testing.T) {
	s, _, rec, _ := newTestSession(t, Options{})

	press(s, 50, 5)
	release(s, 50, 5)

	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, rec.events, "a tap emits no drag events")
}

func TestCommitEmitsSingleEndEvent(t *testing.T) {
	s, _, rec, timer := newTestSession(t, Options{})

	press(s, 50, 5)
	timer.fire()
	move(s, 50, 15)
	move(s, 50, 25)
	move(s, 50, 35)
	release(s, 50, 35)

	overs := rec.overs()
	require.NotEmpty(t, overs)
	assert.Equal(t, 3, overs[len(overs)-1].OverIndex)

	ends := rec.ended()
	require.Len(t, ends, 1)
	assert.Equal(t, 0, ends[0].FromIndex)
	assert.Equal(t, 3, ends[0].ToIndex)
	assert.False(t, ends[0].Cancelled)
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestCancellationAlwaysReturnsToOrigin(t *testing.T) {
	s, _, rec, timer := newTestSession(t, Options{})

	press(s, 50, 5)
	timer.fire()
	move(s, 50, 25)
	move(s, 50, 42)
	require.Equal(t, 4, s.Snapshot().OverIndex)

	s.Cancel()

	ends := rec.ended()
	require.Len(t, ends, 1)
	assert.Equal(t, ends[0].FromIndex, ends[0].ToIndex,
		"cancel discards the observed over index")
	assert.True(t, ends[0].Cancelled)
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestCancelResetsAllSessionFields(t *testing.T) {
	s, _, _, timer := newTestSession(t, Options{})

	press(s, 50, 5)
	timer.fire()
	move(s, 60, 27)
	s.Cancel()

	snap := s.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Empty(t, snap.DraggedID)
	assert.Empty(t, snap.GestureID)
	assert.Equal(t, -1, snap.OriginIndex)
	assert.Equal(t, -1, snap.OverIndex)
	assert.True(t, snap.CurrentPosition.IsZero())
	assert.True(t, snap.AccumulatedScrollDelta.IsZero())
}

func TestSecondPressIgnoredWhileLive(t *testing.T) {
	s, _, rec, timer := newTestSession(t, Options{})

	press(s, 50, 5)
	timer.fire()

	// Another press, on a different item, must not disturb the gesture.
	s.PointerDown(PointerEvent{Kind: KindPress, Position: domain.Point{X: 50, Y: 25}, Primary: true}, "")
	assert.Equal(t, "alpha", s.Snapshot().DraggedID)
	require.Len(t, rec.started(), 1)
}

func TestNonPrimaryPressIgnored(t *testing.T) {
	s, _, _, _ := newTestSession(t, Options{})

	s.PointerDown(PointerEvent{Kind: KindPress, Position: domain.Point{X: 50, Y: 5}, Primary: false}, "")
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestHitTestMissRetainsPreviousOverIndex(t *testing.T) {
	s, _, _, timer := newTestSession(t, Options{})

	press(s, 50, 5)
	timer.fire()
	move(s, 50, 25)
	require.Equal(t, 2, s.Snapshot().OverIndex)

	// Far outside every registered bound: keep the last known target.
	move(s, 50, 400)
	assert.Equal(t, 2, s.Snapshot().OverIndex)
}

func TestVanishedDraggedItemCancels(t *testing.T) {
	s, reg, rec, timer := newTestSession(t, Options{})

	press(s, 50, 5)
	timer.fire()
	move(s, 50, 25)

	reg.Unregister("alpha")
	move(s, 50, 35)

	ends := rec.ended()
	require.Len(t, ends, 1)
	assert.True(t, ends[0].Cancelled)
	assert.Equal(t, ends[0].FromIndex, ends[0].ToIndex)
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestAxisLockPinsLockedAxis(t *testing.T) {
	s, _, _, timer := newTestSession(t, Options{AxisLock: LockX})

	press(s, 50, 5)
	timer.fire()
	move(s, 90, 25)

	snap := s.Snapshot()
	assert.Equal(t, 50.0, snap.CurrentPosition.X, "x is pinned to its activation-time value")
	assert.Equal(t, 25.0, snap.CurrentPosition.Y)
}

func TestScrollDeltaCompensatesHitTesting(t *testing.T) {
	s, _, rec, timer := newTestSession(t, Options{})

	press(s, 50, 5)
	timer.fire()

	// Content scrolled 30px beneath a stationary pointer: the hit test
	// must resolve against the compensated position.
	s.ApplyScrollDelta(domain.Point{Y: 30})

	snap := s.Snapshot()
	assert.Equal(t, domain.Point{Y: 30}, snap.AccumulatedScrollDelta)
	assert.Equal(t, 3, snap.OverIndex)

	overs := rec.overs()
	require.NotEmpty(t, overs)
	assert.Equal(t, 3, overs[len(overs)-1].OverIndex)
}

func TestPointerOffsetAnchorsWithinItem(t *testing.T) {
	s, _, _, timer := newTestSession(t, Options{})

	press(s, 37, 7)
	timer.fire()

	snap := s.Snapshot()
	assert.Equal(t, domain.Point{X: 37, Y: 7}, snap.PointerOffsetWithinItem)
}

func TestOverEventOnlyOnIndexChange(t *testing.T) {
	s, _, rec, timer := newTestSession(t, Options{})

	press(s, 50, 5)
	timer.fire()
	move(s, 50, 15)
	move(s, 51, 15)
	move(s, 52, 16)

	require.Len(t, rec.overs(), 1, "repeat hits on the same index are silent")
	assert.Equal(t, 1, rec.overs()[0].OverIndex)
	assert.Equal(t, "bravo", rec.overs()[0].OverItemID)
}

func TestIdleSnapshotDefaults(t *testing.T) {
	s, _, _, _ := newTestSession(t, Options{})

	snap := s.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, -1, snap.OriginIndex)
	assert.Equal(t, -1, snap.OverIndex)
	assert.Empty(t, snap.DraggedID)
}

func TestHapticsPulsedOnLifecycle(t *testing.T) {
	pulses := 0
	s, _, _, timer := newTestSession(t, Options{Haptics: pulseFunc(func() { pulses++ })})

	press(s, 50, 5)
	timer.fire() // start
	move(s, 50, 15)
	move(s, 50, 25) // two over changes
	release(s, 50, 25)

	assert.Equal(t, 4, pulses, "start, two over changes, end")
}

type pulseFunc func()

func (f pulseFunc) Pulse() { f() }
