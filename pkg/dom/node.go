package dom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vango-dev/viewtree/pkg/view"
)

// Namespace URIs.
const (
	NamespaceHTML  = "http://www.w3.org/1999/xhtml"
	NamespaceSVG   = "http://www.w3.org/2000/svg"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
)

var (
	// ErrHierarchy is the panic value for insertions that would create a cycle.
	ErrHierarchy = errors.New("dom: hierarchy request error")

	// ErrNotChild is the panic value for a reference node under another parent.
	ErrNotChild = errors.New("dom: node is not a child of this node")
)

// Node is a host tree node.
type Node struct {
	Type      view.NodeType
	Tag       string // Element tag name (e.g., "div")
	Namespace string // Element namespace URI, empty for HTML
	Data      string // Content of text nodes

	attrs     map[string]string
	styles    []styleProp
	listeners map[string][]*listener

	parent, first, last, prev, next *Node
}

// NewElement creates an HTML element.
func NewElement(tag string) *Node {
	return &Node{Type: view.ElementNode, Tag: strings.ToLower(tag)}
}

// NewElementNS creates an element in the given namespace. Tag case is kept.
func NewElementNS(ns, tag string) *Node {
	if ns == "" || ns == NamespaceHTML {
		return NewElement(tag)
	}
	return &Node{Type: view.ElementNode, Tag: tag, Namespace: ns}
}

// NewText creates a text node.
func NewText(s string) *Node {
	return &Node{Type: view.TextNode, Data: s}
}

// NewFragment creates a detached fragment.
func NewFragment() *Node {
	return &Node{Type: view.FragmentNode}
}

// NewShadowRoot creates a detached shadow root.
func NewShadowRoot() *Node {
	return &Node{Type: view.ShadowRootNode}
}

// El implements view.View.
func (n *Node) El() view.View {
	return n
}

// NodeType implements view.Node.
func (n *Node) NodeType() view.NodeType {
	return n.Type
}

// ParentNode implements view.Node.
func (n *Node) ParentNode() view.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// FirstChild implements view.Node.
func (n *Node) FirstChild() view.Node {
	if n.first == nil {
		return nil
	}
	return n.first
}

// NextSibling implements view.Node.
func (n *Node) NextSibling() view.Node {
	if n.next == nil {
		return nil
	}
	return n.next
}

// Parent returns the parent node or nil.
func (n *Node) Parent() *Node { return n.parent }

// First returns the first child or nil.
func (n *Node) First() *Node { return n.first }

// Last returns the last child or nil.
func (n *Node) Last() *Node { return n.last }

// Next returns the next sibling or nil.
func (n *Node) Next() *Node { return n.next }

// Prev returns the previous sibling or nil.
func (n *Node) Prev() *Node { return n.prev }

// Children returns the child nodes in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.first; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for a := other; a != nil; a = a.parent {
		if a == n {
			return true
		}
	}
	return false
}

// AppendChild implements view.Node.
func (n *Node) AppendChild(child view.Node) {
	n.insert(asNode(child), nil)
}

// InsertBefore implements view.Node. A nil ref appends.
func (n *Node) InsertBefore(child, ref view.Node) {
	r := asNode(ref)
	if r != nil && r.parent != n {
		panic(ErrNotChild)
	}
	n.insert(asNode(child), r)
}

// RemoveChild implements view.Node.
func (n *Node) RemoveChild(child view.Node) {
	c := asNode(child)
	if c == nil || c.parent != n {
		panic(ErrNotChild)
	}
	c.detach()
}

// ReplaceChild implements view.Node.
func (n *Node) ReplaceChild(child, old view.Node) {
	o := asNode(old)
	if o == nil || o.parent != n {
		panic(ErrNotChild)
	}
	c := asNode(child)
	if c == o {
		return
	}
	n.insert(c, o)
	o.detach()
}

// Append appends children, skipping nil.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.insert(c, nil)
		}
	}
	return n
}

// TextContent returns the concatenated text of the node and its descendants.
func (n *Node) TextContent() string {
	if n.Type == view.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.first; c != nil; c = c.next {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// SetTextContent replaces all children with a single text node. Children are
// detached directly, without lifecycle notifications.
func (n *Node) SetTextContent(s string) {
	if n.Type == view.TextNode {
		n.Data = s
		return
	}
	for n.first != nil {
		n.first.detach()
	}
	if s != "" {
		n.insert(NewText(s), nil)
	}
}

// String returns a short description for debugging.
func (n *Node) String() string {
	switch n.Type {
	case view.TextNode:
		return fmt.Sprintf("#text %q", n.Data)
	case view.ElementNode:
		return "<" + n.Tag + ">"
	default:
		return "#" + strings.ToLower(n.Type.String())
	}
}

func (n *Node) insert(child, ref *Node) {
	if child == nil {
		panic("dom: insert of nil node")
	}
	if child == ref {
		return
	}
	if child.Contains(n) {
		panic(ErrHierarchy)
	}
	if child.Type == view.FragmentNode {
		for c := child.first; c != nil; {
			next := c.next
			n.insert(c, ref)
			c = next
		}
		return
	}

	child.detach()
	child.parent = n
	if ref == nil {
		child.prev = n.last
		if n.last != nil {
			n.last.next = child
		} else {
			n.first = child
		}
		n.last = child
		return
	}
	child.next = ref
	child.prev = ref.prev
	if ref.prev != nil {
		ref.prev.next = child
	} else {
		n.first = child
	}
	ref.prev = child
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		p.first = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		p.last = n.prev
	}
	n.parent, n.prev, n.next = nil, nil, nil
}

// asNode converts an engine node into a *Node. Foreign implementations panic.
func asNode(v view.Node) *Node {
	if v == nil {
		return nil
	}
	n, ok := v.(*Node)
	if !ok {
		panic(fmt.Sprintf("dom: foreign node %T", v))
	}
	return n
}
