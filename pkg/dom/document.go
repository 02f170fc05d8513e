package dom

import "github.com/vango-dev/viewtree/pkg/view"

// Document owns a document node with its <html>, <head> and <body>. It is a
// view resolving to the document node.
type Document struct {
	root, html, head, body *Node
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{
		root: &Node{Type: view.DocumentNode},
		html: NewElement("html"),
		head: NewElement("head"),
		body: NewElement("body"),
	}
	d.html.Append(d.head, d.body)
	d.root.Append(d.html)
	return d
}

// El implements view.View.
func (d *Document) El() view.View { return d.root }

// Root returns the document node.
func (d *Document) Root() *Node { return d.root }

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *Node { return d.html }

// Head returns the <head> element.
func (d *Document) Head() *Node { return d.head }

// Body returns the <body> element.
func (d *Document) Body() *Node { return d.body }
