package el

import (
	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/view"
)

// DefaultEvent is the event type Dispatch uses when none is given.
const DefaultEvent = "viewtree"

// Dispatch sends a bubbling event carrying data from v's element. It returns
// false if a listener stopped propagation.
func Dispatch(v view.View, data any, name string) bool {
	n := element(v)
	if n == nil {
		return true
	}
	if name == "" {
		name = DefaultEvent
	}
	return n.DispatchEvent(&dom.Event{Type: name, Detail: data, Bubbles: true})
}
