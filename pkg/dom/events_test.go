package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDispatchEventBubbles(t *testing.T) {
	outer, inner := NewElement("div"), NewElement("span")
	outer.Append(inner)

	var trace []string
	inner.AddEventListener("hello", func(e *Event) { trace = append(trace, "inner:"+e.CurrentTarget.Tag) })
	outer.AddEventListener("hello", func(e *Event) {
		trace = append(trace, "outer:"+e.Target.Tag)
		if e.Detail != 42 {
			t.Errorf("Detail = %v, want 42", e.Detail)
		}
	})

	if !inner.DispatchEvent(&Event{Type: "hello", Detail: 42, Bubbles: true}) {
		t.Error("DispatchEvent() = false, want true")
	}
	if diff := cmp.Diff([]string{"inner:span", "outer:span"}, trace); diff != "" {
		t.Errorf("trace (-want +got):\n%s", diff)
	}
}

func TestDispatchEventNoBubble(t *testing.T) {
	outer, inner := NewElement("div"), NewElement("span")
	outer.Append(inner)
	called := false
	outer.AddEventListener("x", func(*Event) { called = true })

	inner.DispatchEvent(&Event{Type: "x"})
	if called {
		t.Error("non-bubbling event reached the parent")
	}
}

func TestStopPropagation(t *testing.T) {
	outer, inner := NewElement("div"), NewElement("span")
	outer.Append(inner)
	inner.AddEventListener("x", func(e *Event) { e.StopPropagation() })
	outer.AddEventListener("x", func(*Event) { t.Error("stopped event reached the parent") })

	if inner.DispatchEvent(&Event{Type: "x", Bubbles: true}) {
		t.Error("DispatchEvent() = true, want false")
	}
}

func TestRemoveListener(t *testing.T) {
	n := NewElement("div")
	count := 0
	remove := n.AddEventListener("x", func(*Event) { count++ })
	n.DispatchEvent(&Event{Type: "x"})
	remove()
	n.DispatchEvent(&Event{Type: "x"})

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if n.HasListeners("x") {
		t.Error("HasListeners() = true after removal")
	}
}
