package dom

// Event is dispatched through listeners registered on nodes.
type Event struct {
	Type    string
	Detail  any
	Bubbles bool

	// Target is the node the event was dispatched on.
	Target *Node

	// CurrentTarget is the node whose listener is running.
	CurrentTarget *Node

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles events.
type Listener func(*Event)

type listener struct {
	fn Listener
}

// AddEventListener registers fn for events of the given type and returns a
// function removing it.
func (n *Node) AddEventListener(typ string, fn Listener) (remove func()) {
	if fn == nil {
		return func() {}
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn}
	n.listeners[typ] = append(n.listeners[typ], l)
	return func() {
		ls := n.listeners[typ]
		for i, x := range ls {
			if x == l {
				n.listeners[typ] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// HasListeners reports whether any listener is registered for typ.
func (n *Node) HasListeners(typ string) bool {
	return len(n.listeners[typ]) > 0
}

// DispatchEvent runs listeners on n and, for bubbling events, on each
// ancestor in turn. It returns false if propagation was stopped.
func (n *Node) DispatchEvent(ev *Event) bool {
	ev.Target = n
	for cur := n; cur != nil; cur = cur.parent {
		ev.CurrentTarget = cur
		for _, l := range append([]*listener(nil), cur.listeners[ev.Type]...) {
			l.fn(ev)
		}
		if ev.stopped {
			return false
		}
		if !ev.Bubbles {
			break
		}
	}
	ev.CurrentTarget = nil
	return true
}
