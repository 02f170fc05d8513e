package view

import "reflect"

// NodeType is the host node type discriminator.
type NodeType uint8

const (
	ElementNode    NodeType = iota // <div>, <svg>, etc.
	TextNode                       // Plain text node
	DocumentNode                   // Tree root; always a mount boundary
	ShadowRootNode                 // Mount boundary when shadow boundaries are enabled
	FragmentNode                   // Detached grouping node
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case DocumentNode:
		return "Document"
	case ShadowRootNode:
		return "ShadowRoot"
	case FragmentNode:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// View is anything that exposes a host node. El returns either the Node
// itself or another View wrapping it.
type View interface {
	El() View
}

// Node is a host tree node. Nodes are Views whose El returns themselves.
//
// Inserting a node that already has a parent moves it: implementations detach
// it from its current parent first. Traversal methods return a nil interface
// (never a typed nil) when there is no such node.
type Node interface {
	View
	NodeType() NodeType
	ParentNode() Node
	FirstChild() Node
	NextSibling() Node
	AppendChild(child Node)
	InsertBefore(child, ref Node)
	RemoveChild(child Node)
	ReplaceChild(child, old Node)
}

// Mounter is implemented by views that want onmount notifications.
type Mounter interface {
	OnMount()
}

// Remounter is implemented by views that want onremount notifications.
type Remounter interface {
	OnRemount()
}

// Unmounter is implemented by views that want onunmount notifications.
type Unmounter interface {
	OnUnmount()
}

// Resolve returns the innermost node of v, following El until a Node is
// reached. A nil view resolves to nil.
func Resolve(v View) Node {
	for !isNil(v) {
		if n, ok := v.(Node); ok {
			return n
		}
		v = v.El()
	}
	return nil
}

// isNil reports whether v is nil or an interface holding a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
