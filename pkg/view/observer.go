package view

import "time"

// EventKind classifies an observed engine event.
type EventKind uint8

const (
	EventMount EventKind = iota
	EventRemount
	EventUnmount
	EventReconcile
)

// String returns the string representation of the EventKind.
func (k EventKind) String() string {
	switch k {
	case EventMount:
		return "mount"
	case EventRemount:
		return "remount"
	case EventUnmount:
		return "unmount"
	case EventReconcile:
		return "reconcile"
	default:
		return "unknown"
	}
}

// Event is reported to observers each time a view callback runs and after
// every list reconciliation pass.
type Event struct {
	Kind EventKind

	// View is the view whose callback ran, or the List for reconcile events.
	View View

	// Node is the resolved node of View.
	Node Node

	// Size, Created, Removed and Duration are only set for reconcile events.
	Size     int
	Created  int
	Removed  int
	Duration time.Duration
}

// Observer receives engine events. Observers run synchronously inside the
// operation that produced the event.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(ev Event) {
	f(ev)
}

func hookEvent(h Hook) EventKind {
	switch h {
	case HookRemount:
		return EventRemount
	case HookUnmount:
		return EventUnmount
	default:
		return EventMount
	}
}
