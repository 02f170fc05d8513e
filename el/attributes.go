package el

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/view"
)

// SetAttr sets attributes on v's element. A nil value removes the attribute.
func SetAttr(v view.View, attrs Attrs) {
	if n := element(v); n != nil {
		setAttrs(n, attrs, false)
	}
}

// SetAttribute sets a single attribute on v's element.
func SetAttribute(v view.View, name string, value any) {
	if n := element(v); n != nil {
		setAttr(n, name, value, false)
	}
}

// SetStyle sets one style property on v's element. A nil or empty value
// removes it.
func SetStyle(v view.View, prop string, value any) {
	if n := element(v); n != nil {
		n.SetStyle(prop, styleValue(value))
	}
}

// SetStyles sets several style properties on v's element.
func SetStyles(v view.View, styles Style) {
	if n := element(v); n != nil {
		setStyles(n, styles)
	}
}

// SetData sets a data-* attribute on v's element. A nil value removes it.
func SetData(v view.View, key string, value any) {
	n := element(v)
	if n == nil {
		return
	}
	if value == nil {
		n.RemoveData(key)
		return
	}
	n.SetData(key, fmt.Sprint(value))
}

// SetXlink sets an xlink attribute on v's element. A nil value removes it.
func SetXlink(v view.View, name string, value any) {
	n := element(v)
	if n == nil {
		return
	}
	if value == nil {
		n.RemoveAttributeNS(dom.NamespaceXLink, name)
		return
	}
	n.SetAttributeNS(dom.NamespaceXLink, name, fmt.Sprint(value))
}

// ID returns an id attribute argument.
func ID(id string) Attrs {
	return Attrs{"id": id}
}

// Class returns a class attribute argument.
func Class(classes ...string) Attrs {
	return Attrs{"class": strings.Join(classes, " ")}
}

// Data returns a data-* attribute argument.
func Data(key string, value any) Attrs {
	return Attrs{"dataset": map[string]any{key: value}}
}

// On returns a listener argument for events of type event.
func On(event string, fn dom.Listener) Attrs {
	return Attrs{"on" + event: fn}
}

// OnClick returns a click listener argument.
func OnClick(fn dom.Listener) Attrs {
	return On("click", fn)
}

func element(v view.View) *dom.Node {
	n, _ := view.Resolve(v).(*dom.Node)
	return n
}

func setAttrs(n *dom.Node, attrs map[string]any, initial bool) {
	for name, value := range attrs {
		setAttr(n, name, value, initial)
	}
}

func setAttr(n *dom.Node, name string, value any, initial bool) {
	svg := n.Namespace == dom.NamespaceSVG
	switch name {
	case "style":
		switch s := value.(type) {
		case Style:
			setStyles(n, s)
			return
		case map[string]any:
			setStyles(n, s)
			return
		}
	case "dataset":
		if m, ok := value.(map[string]any); ok {
			for k, v := range m {
				SetData(n, k, v)
			}
			return
		}
	case "xlink":
		if m, ok := value.(map[string]any); ok && svg {
			for k, v := range m {
				SetXlink(n, k, v)
			}
			return
		}
	case "class":
		if initial && value != nil {
			n.AddClass(fmt.Sprint(value))
			return
		}
	}

	if event, ok := strings.CutPrefix(name, "on"); ok {
		switch fn := value.(type) {
		case dom.Listener:
			n.AddEventListener(event, fn)
			return
		case func(*dom.Event):
			n.AddEventListener(event, fn)
			return
		}
	}

	switch v := value.(type) {
	case nil:
		n.RemoveAttribute(name)
	case bool:
		if v {
			n.SetAttribute(name, "")
		} else {
			n.RemoveAttribute(name)
		}
	default:
		n.SetAttribute(name, fmt.Sprint(v))
	}
}

// setStyles applies styles in property name order.
func setStyles(n *dom.Node, styles map[string]any) {
	props := make([]string, 0, len(styles))
	for prop := range styles {
		props = append(props, prop)
	}
	sort.Strings(props)
	for _, prop := range props {
		n.SetStyle(prop, styleValue(styles[prop]))
	}
}

func styleValue(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
