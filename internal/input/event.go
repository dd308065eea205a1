package input

// EventKind tells which fields of an Event are meaningful
type EventKind int

const (
	// EventAction carries a bound key changing state (Action, Pressed).
	EventAction EventKind = iota
	// EventCursor carries the new cursor position (X, Y).
	EventCursor
	// EventScroll carries scroll offsets (X, Y).
	EventScroll
	// EventResize carries the new framebuffer size (Width, Height).
	EventResize
)

// Event is a window event already translated to logical actions
type Event struct {
	Kind    EventKind
	Action  Action
	Pressed bool
	// Repeat is set for auto-repeated key presses.
	Repeat bool
	X, Y   float64
	Width  int
	Height int
}

// ActionEvent builds an EventAction.
func ActionEvent(a Action, pressed bool) Event {
	return Event{Kind: EventAction, Action: a, Pressed: pressed}
}

// CursorEvent builds an EventCursor.
func CursorEvent(x, y float64) Event {
	return Event{Kind: EventCursor, X: x, Y: y}
}

// ScrollEvent builds an EventScroll.
func ScrollEvent(xoff, yoff float64) Event {
	return Event{Kind: EventScroll, X: xoff, Y: yoff}
}

// ResizeEvent builds an EventResize.
func ResizeEvent(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}
