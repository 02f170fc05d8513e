package devtools

import (
	"fmt"
	"sync"

	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/view"
)

// Tree is a document and the engine mutating it, guarded for use from HTTP
// handlers.
type Tree struct {
	mu     sync.Mutex
	doc    *dom.Document
	engine *view.Engine
}

// NewTree wraps doc and engine.
func NewTree(doc *dom.Document, engine *view.Engine) *Tree {
	return &Tree{doc: doc, engine: engine}
}

// Do runs fn with exclusive access to the document and engine.
func (t *Tree) Do(fn func(doc *dom.Document, e *view.Engine) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.doc, t.engine)
}

// NodeInfo describes one node of the tree and the engine's state for it.
type NodeInfo struct {
	Type     string     `json:"type"`
	Tag      string     `json:"tag,omitempty"`
	Text     string     `json:"text,omitempty"`
	View     string     `json:"view,omitempty"`
	Mounted  bool       `json:"mounted"`
	Interest [3]int     `json:"interest"`
	Children []NodeInfo `json:"children,omitempty"`
}

// Inspect describes n and its subtree as seen by e.
func Inspect(e *view.Engine, n *dom.Node) NodeInfo {
	info := NodeInfo{
		Type:     n.Type.String(),
		Tag:      n.Tag,
		Mounted:  e.Mounted(n),
		Interest: e.Interest(n),
	}
	if n.Type == view.TextNode {
		info.Text = n.Data
	}
	if v := e.ViewOf(n); v != nil {
		info.View = fmt.Sprintf("%T", v)
	}
	for _, c := range n.Children() {
		info.Children = append(info.Children, Inspect(e, c))
	}
	return info
}
