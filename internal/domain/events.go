package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDragStarted    EventType = "DragStarted"
	EventDragMoved      EventType = "DragMoved"
	EventDragOver       EventType = "DragOver"
	EventDragEnded      EventType = "DragEnded"
	EventItemsReordered EventType = "ItemsReordered"
	EventError          EventType = "Error"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
	EventConfigChanged  EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DragStartedEvent is emitted when a pending press activates into a drag
type DragStartedEvent struct {
	GestureID   string
	ItemID      string
	OriginIndex int
}

func (e DragStartedEvent) Type() EventType { return EventDragStarted }

// DragMovedEvent is emitted on every pointer move while a drag is active
type DragMovedEvent struct {
	GestureID      string
	ItemID         string
	Position       Point
	DeltaFromStart Point
}

func (e DragMovedEvent) Type() EventType { return EventDragMoved }

// DragOverEvent is emitted when the index under the pointer changes.
// OverItemID is empty when the pointer is over a gap between items.
type DragOverEvent struct {
	GestureID  string
	ItemID     string
	OverIndex  int
	OverItemID string
}

func (e DragOverEvent) Type() EventType { return EventDragOver }

// DragEndedEvent is emitted exactly once per gesture, whether it commits
// or cancels. FromIndex equals ToIndex when no net move occurred; Cancelled
// is true only on an explicit cancel path, never merely because the index
// did not change.
type DragEndedEvent struct {
	GestureID string
	ItemID    string
	FromIndex int
	ToIndex   int
	Cancelled bool
}

func (e DragEndedEvent) Type() EventType { return EventDragEnded }

// Instruction converts the event into the reorder instruction hosts apply to
// their item order
func (e DragEndedEvent) Instruction() ReorderInstruction {
	return ReorderInstruction{From: e.FromIndex, To: e.ToIndex, Cancelled: e.Cancelled}
}

// ItemsReorderedEvent is emitted after a committed reorder has been applied
// to the item store
type ItemsReorderedEvent struct {
	From int
	To   int
}

func (e ItemsReorderedEvent) Type() EventType { return EventItemsReordered }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Activation ActivationConfig
	AutoScroll AutoScrollConfig
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	Items []string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
