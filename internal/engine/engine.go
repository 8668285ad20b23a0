// Package engine wires the geometry registry, hit tester, auto-scroller
// and drag session into one reorder engine usable from any UI-event
// source.
package engine

import (
	"go.uber.org/zap"

	"draglist/internal/autoscroll"
	"draglist/internal/displace"
	"draglist/internal/domain"
	"draglist/internal/dragsession"
	"draglist/internal/eventbus"
	"draglist/internal/geometry"
)

// Options configures an engine instance
type Options struct {
	Activation domain.ActivationConfig
	AutoScroll domain.AutoScrollConfig
	Axis       displace.Axis
	AxisLock   dragsession.AxisLock
	// Gap is the layout's inter-item gap along Axis, included in the
	// displacement extent.
	Gap float64
	// Frames schedules the auto-scroll loop. Defaults to a 60Hz ticker.
	Frames autoscroll.FrameScheduler
	// Timers schedules the activation delay. Defaults to time.AfterFunc.
	Timers dragsession.TimerScheduler
	// Resolver locates the scroll container at activation; nil disables
	// auto-scroll.
	Resolver autoscroll.Resolver
	Haptics  dragsession.Haptics
}

// Engine is a drag-reorder engine instance. One gesture may be live at a
// time; all methods must be called from the host's event loop.
type Engine struct {
	registry *geometry.Registry
	scroller *autoscroll.Scroller
	session  *dragsession.Session
	bus      eventbus.EventBus
	axis     displace.Axis
	gap      float64
	log      *zap.Logger
}

// New creates an engine publishing lifecycle events on bus
func New(bus eventbus.EventBus, opts Options, log *zap.Logger) *Engine {
	if bus == nil {
		bus = &eventbus.NullBus{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Frames == nil {
		opts.Frames = autoscroll.TickerFrames{}
	}

	e := &Engine{
		registry: geometry.NewRegistry(),
		bus:      bus,
		axis:     opts.Axis,
		gap:      opts.Gap,
		log:      log,
	}
	e.scroller = autoscroll.New(opts.AutoScroll, opts.Frames, e.onScrolled, log.Named("autoscroll"))
	e.session = dragsession.New(e.registry, e.scroller, bus, dragsession.Options{
		Activation: opts.Activation,
		AxisLock:   opts.AxisLock,
		Timers:     opts.Timers,
		Haptics:    opts.Haptics,
		Resolver:   opts.Resolver,
	}, log.Named("session"))
	return e
}

func (e *Engine) onScrolled(actual domain.Point) {
	e.session.ApplyScrollDelta(actual)
}

// Mount registers an item's geometry. Call again on every
// geometry-affecting change: the registry has no invalidation signal of
// its own.
func (e *Engine) Mount(id string, index int, bounds domain.Rect) error {
	return e.registry.Register(id, index, bounds)
}

// Unmount removes an item. Unknown ids are a no-op.
func (e *Engine) Unmount(id string) {
	e.registry.Unregister(id)
}

// Registry exposes the geometry registry for hosts that hit-test
// themselves
func (e *Engine) Registry() *geometry.Registry {
	return e.registry
}

// PointerDown forwards a qualifying press. itemID may be empty to resolve
// the pressed item by hit test.
func (e *Engine) PointerDown(ev dragsession.PointerEvent, itemID string) {
	e.session.PointerDown(ev, itemID)
}

// PointerMove forwards a pointer move
func (e *Engine) PointerMove(ev dragsession.PointerEvent) {
	e.session.PointerMove(ev)
}

// PointerUp forwards a release, committing the gesture
func (e *Engine) PointerUp(ev dragsession.PointerEvent) {
	e.session.PointerUp(ev)
}

// PointerCancel cancels the gesture on loss of the pointer track
func (e *Engine) PointerCancel() {
	e.session.PointerCancel()
}

// CancelDrag cancels the gesture programmatically
func (e *Engine) CancelDrag() {
	e.session.Cancel()
}

// Dragging reports whether a drag is active
func (e *Engine) Dragging() bool {
	return e.session.Phase() == dragsession.PhaseActive
}

// Snapshot returns the current session snapshot
func (e *Engine) Snapshot() dragsession.Snapshot {
	return e.session.Snapshot()
}

// Scroller exposes the auto-scroller, mainly so hosts driving their own
// frame clock can call its Tick
func (e *Engine) Scroller() *autoscroll.Scroller {
	return e.scroller
}

// OffsetFor returns the displacement offset the item should render with
// under the current gesture. Zero when idle, for the dragged item itself,
// and for items outside the displaced interval.
func (e *Engine) OffsetFor(id string) domain.Point {
	snap := e.session.Snapshot()
	if snap.Phase != dragsession.PhaseActive || id == snap.DraggedID {
		return domain.Point{}
	}
	rec, ok := e.registry.Get(id)
	if !ok {
		return domain.Point{}
	}
	dragged, ok := e.registry.Get(snap.DraggedID)
	if !ok {
		return domain.Point{}
	}
	extent := displace.Extent(e.axis, dragged.Bounds, e.gap)
	return displace.Shift(e.axis, snap.OriginIndex, snap.OverIndex, rec.Index, extent)
}
