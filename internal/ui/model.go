package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"

	"draglist/internal/autoscroll"
	"draglist/internal/config"
	"draglist/internal/displace"
	"draglist/internal/domain"
	"draglist/internal/dragsession"
	"draglist/internal/engine"
	"draglist/internal/eventbus"
	"draglist/internal/logic"
	"draglist/internal/ui/views"
)

const frameInterval = 33 * time.Millisecond

// tickMsg drives the engine's timers and the auto-scroll loop on the tea
// event loop
type tickMsg time.Time

// Model is the bubbletea model hosting the drag-reorder engine over a
// task list
type Model struct {
	store  *logic.MemoryItemStore
	eng    *engine.Engine
	bus    eventbus.EventBus
	cfg    *config.Config
	log    *zap.Logger
	zones  *zone.Manager
	styles *views.Styles
	keys   KeyMap
	help   help.Model
	timers *frameTimers
	frames *frameLoop

	width           int
	height          int
	cursor          int
	offset          int
	scrollRemainder float64
	mounted         map[string]bool
	status          string
	pulseUntil      time.Time
	quitting        bool
}

// NewModel creates the UI model and wires the engine to the bus
func NewModel(cfg *config.Config, store *logic.MemoryItemStore, bus eventbus.EventBus, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}

	m := &Model{
		store:   store,
		bus:     bus,
		cfg:     cfg,
		log:     log,
		zones:   zone.New(),
		styles:  views.NewStyles(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		timers:  &frameTimers{},
		frames:  &frameLoop{},
		width:   80,
		height:  24,
		mounted: make(map[string]bool),
	}
	m.eng = engine.New(bus, engine.Options{
		Activation: cfg.EngineActivation(),
		AutoScroll: cfg.EngineAutoScroll(),
		Axis:       displace.Vertical,
		AxisLock:   dragsession.LockX,
		Gap:        1,
		Frames:     m.frames,
		Timers:     m.timers,
		Resolver:   m,
		Haptics:    m,
	}, log.Named("engine"))

	// The bus dispatches synchronously, and drag events only originate
	// from Update, so these handlers run on the tea loop.
	bus.Subscribe(eventbus.EventDragEnded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(domain.DragEndedEvent); ok {
			m.handleDragEnded(ev)
		}
	})
	return m
}

// Pulse implements the engine's discrete feedback capability as a brief
// visual pulse in the status bar
func (m *Model) Pulse() {
	m.pulseUntil = time.Now().Add(200 * time.Millisecond)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.syncGeometry()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampViewport()

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		now := time.Time(msg)
		m.timers.fire(now)
		m.frames.tick(now)
		return m, tickCmd()

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	ev := dragsession.PointerEvent{
		Position: domain.Point{X: float64(msg.X), Y: float64(msg.Y)},
		Time:     time.Now(),
		Primary:  msg.Button == tea.MouseButtonLeft,
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			ev.Kind = dragsession.KindPress
			m.eng.PointerDown(ev, m.itemAt(msg))
		case tea.MouseButtonWheelUp:
			m.scrollWheel(-1)
		case tea.MouseButtonWheelDown:
			m.scrollWheel(1)
		}
	case tea.MouseActionMotion:
		ev.Kind = dragsession.KindMove
		ev.Primary = true
		m.eng.PointerMove(ev)
	case tea.MouseActionRelease:
		ev.Kind = dragsession.KindRelease
		ev.Primary = true
		m.eng.PointerUp(ev)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		m.eng.CancelDrag()
		m.autosave()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Cancel):
		m.eng.CancelDrag()

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < m.store.Len()-1 {
			m.cursor++
			m.ensureVisible()
		}

	case key.Matches(msg, keys.MoveUp):
		m.moveItem(m.cursor, m.cursor-1)

	case key.Matches(msg, keys.MoveDown):
		m.moveItem(m.cursor, m.cursor+1)
	}
	return m, nil
}

// moveItem is the keyboard-driven store-level move. It bypasses the drag
// engine entirely: keyboard reordering of gestures is an open gap, and
// these moves exist so the list is still usable without a mouse.
func (m *Model) moveItem(from, to int) {
	if m.eng.Dragging() || to < 0 || to >= m.store.Len() {
		return
	}
	m.store.Move(from, to)
	m.cursor = to
	m.ensureVisible()
	m.afterReorder(from, to)
}

func (m *Model) handleDragEnded(ev domain.DragEndedEvent) {
	ins := ev.Instruction()
	if ins.Cancelled {
		m.status = "drag cancelled"
		return
	}
	if ins.From == ins.To {
		m.status = "no move"
		return
	}
	m.store.Move(ins.From, ins.To)
	m.cursor = ins.To
	m.ensureVisible()
	m.status = fmt.Sprintf("moved %d → %d", ins.From, ins.To)
	m.afterReorder(ins.From, ins.To)
}

func (m *Model) afterReorder(from, to int) {
	m.bus.Publish(domain.ItemsReorderedEvent{From: from, To: to})
	m.bus.Publish(domain.ConfigChangedEvent{Items: m.itemTitles()})
	// Registry indices are stale after the move; re-register immediately
	// rather than waiting for the next frame.
	m.remount()
}

func (m *Model) autosave() {
	if !m.cfg.UISettings.AutosaveOnExit {
		return
	}
	m.bus.Publish(domain.ConfigChangedEvent{Items: m.itemTitles()})
}

func (m *Model) itemTitles() []string {
	items := m.store.Items()
	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}
	return titles
}

// syncGeometry re-registers visible item bounds from the scanned zones.
// While a drag is live the normal refresh is suspended: the session hit-tests
// against activation-time bounds plus the accumulated scroll delta, and
// re-registering scrolled rows at their new screen positions would
// double-count the scroll. Rows the auto-scroll reveals still have to become
// drop targets, so those are added in the activation-time frame instead.
func (m *Model) syncGeometry() {
	if m.eng.Dragging() {
		m.mountIncoming()
		return
	}
	m.remount()
}

// mountIncoming registers rows auto-scroll has revealed since activation,
// translated by the accumulated scroll delta into the frame the session
// hit-tests against. Bounds come from the row grid rather than the zone scan:
// a freshly revealed row has no zone until the next render. Displaced rows
// are skipped, their on-screen position is a visual shift rather than a
// layout position.
func (m *Model) mountIncoming() {
	snap := m.eng.Snapshot()
	delta := snap.AccumulatedScrollDelta
	items := m.store.Items()
	for i := m.offset; i < len(items) && i < m.offset+m.visibleRows(); i++ {
		it := items[i]
		if m.mounted[it.ID] || displace.Shifted(snap.OriginIndex, snap.OverIndex, i) {
			continue
		}
		bounds := m.rowScreenBounds(i)
		bounds.Left += delta.X
		bounds.Right += delta.X
		bounds.Top += delta.Y
		bounds.Bottom += delta.Y
		if err := m.eng.Mount(it.ID, i, bounds); err != nil {
			m.log.Warn("mount rejected", zap.String("item", it.ID), zap.Error(err))
			continue
		}
		m.mounted[it.ID] = true
	}
}

// rowScreenBounds is the screen rectangle the row at index i occupies in the
// current window
func (m *Model) rowScreenBounds(i int) domain.Rect {
	top := float64(m.listTop() + i - m.offset)
	return domain.Rect{Left: 0, Top: top, Right: float64(m.width - 1), Bottom: top}
}

func (m *Model) remount() {
	items := m.store.Items()
	visible := make(map[string]bool, len(items))
	for i := m.offset; i < len(items) && i < m.offset+m.visibleRows(); i++ {
		it := items[i]
		z := m.zones.Get(it.ID)
		if z == nil || z.IsZero() {
			continue
		}
		bounds := domain.Rect{
			Left:   float64(z.StartX),
			Top:    float64(z.StartY),
			Right:  float64(z.EndX),
			Bottom: float64(z.EndY),
		}
		if err := m.eng.Mount(it.ID, i, bounds); err != nil {
			m.log.Warn("mount rejected", zap.String("item", it.ID), zap.Error(err))
			continue
		}
		visible[it.ID] = true
	}
	for id := range m.mounted {
		if !visible[id] {
			m.eng.Unmount(id)
		}
	}
	m.mounted = visible
}

func (m *Model) itemAt(msg tea.MouseMsg) string {
	for _, it := range m.store.Items() {
		z := m.zones.Get(it.ID)
		if z != nil && !z.IsZero() && z.InBounds(msg) {
			return it.ID
		}
	}
	return ""
}

func (m *Model) scrollWheel(rows int) {
	if m.eng.Dragging() {
		return
	}
	m.offset += rows
	m.clampViewport()
}

func (m *Model) listTop() int {
	return 2
}

func (m *Model) visibleRows() int {
	rows := m.height - m.listTop() - 3
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) maxOffset() int {
	max := m.store.Len() - m.visibleRows()
	if max < 0 {
		max = 0
	}
	return max
}

func (m *Model) clampViewport() {
	if m.offset > m.maxOffset() {
		m.offset = m.maxOffset()
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) ensureVisible() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.visibleRows() {
		m.offset = m.cursor - m.visibleRows() + 1
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.eng.Snapshot()
	dragging := snap.Phase == dragsession.PhaseActive
	items := m.store.Items()
	visible := m.visibleRows()

	rows := make([]string, visible)
	for i := m.offset; i < len(items) && i < m.offset+visible; i++ {
		it := items[i]
		if dragging && it.ID == snap.DraggedID {
			continue
		}
		slot := i - m.offset
		if dragging {
			off := m.eng.OffsetFor(it.ID)
			slot += int(math.Round(off.Y))
		}
		if slot < 0 || slot >= visible {
			continue
		}
		rows[slot] = m.renderRow(it, i, snap, dragging)
	}
	if dragging {
		m.renderOverlay(rows, items, snap)
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("draglist"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")
	b.WriteString(m.statusLine(snap, dragging))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	return m.zones.Scan(b.String())
}

func (m *Model) renderRow(it domain.Item, index int, snap dragsession.Snapshot, dragging bool) string {
	label := fmt.Sprintf(" %2d. %s ", index+1, it.Title)

	style := m.styles.Item
	switch {
	case dragging && index == snap.OverIndex:
		style = m.styles.DropTarget
	case dragging && displace.Shifted(snap.OriginIndex, snap.OverIndex, index):
		style = m.styles.Displaced
	case !dragging && index == m.cursor:
		style = m.styles.Cursor
	}
	return m.zones.Mark(it.ID, style.Render(label))
}

// renderOverlay draws the dragged row anchored to the pointer, on top of
// whatever occupies that line
func (m *Model) renderOverlay(rows []string, items []domain.Item, snap dragsession.Snapshot) {
	var dragged domain.Item
	found := false
	for _, it := range items {
		if it.ID == snap.DraggedID {
			dragged = it
			found = true
			break
		}
	}
	if !found {
		return
	}

	line := int(math.Round(snap.CurrentPosition.Y-snap.PointerOffsetWithinItem.Y)) - m.listTop()
	if line < 0 {
		line = 0
	}
	if line >= len(rows) {
		line = len(rows) - 1
	}
	rows[line] = m.zones.Mark(dragged.ID, m.styles.Dragged.Render(fmt.Sprintf(" %s ", dragged.Title)))
}

func (m *Model) statusLine(snap dragsession.Snapshot, dragging bool) string {
	var parts []string
	if dragging {
		parts = append(parts, fmt.Sprintf("dragging %q over %d", snap.DraggedID, snap.OverIndex))
		if m.eng.Scroller().State() == autoscroll.StateScrolling {
			parts = append(parts, "scrolling")
		}
	} else if m.status != "" {
		parts = append(parts, m.status)
	}
	if time.Now().Before(m.pulseUntil) {
		parts = append(parts, m.styles.Pulse.Render("•"))
	}
	if len(parts) == 0 {
		parts = append(parts, m.styles.Dim.Render("press and hold a row, then drag"))
	}
	return m.styles.Status.Render(strings.Join(parts, "  "))
}
