package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/view"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it changes whitespace.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// Doctype writes <!DOCTYPE html> before document nodes.
	Doctype bool
}

// Renderer renders dom trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a view's node, including the node itself.
func (r *Renderer) RenderToString(v view.View) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a view's node to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, v view.View) error {
	node, err := domNode(v)
	if err != nil {
		return err
	}
	return r.renderNode(w, node, 0)
}

// RenderChildren renders the children of a view's node without the node.
func (r *Renderer) RenderChildren(w io.Writer, v view.View) error {
	node, err := domNode(v)
	if err != nil {
		return err
	}
	for c := node.First(); c != nil; c = c.Next() {
		if err := r.renderNode(w, c, 0); err != nil {
			return err
		}
	}
	return nil
}

// OuterHTML renders v's node compactly. Rendering errors yield "".
func OuterHTML(v view.View) string {
	s, _ := NewRenderer(RendererConfig{}).RenderToString(v)
	return s
}

// InnerHTML renders the children of v's node compactly.
func InnerHTML(v view.View) string {
	var buf bytes.Buffer
	if err := NewRenderer(RendererConfig{}).RenderChildren(&buf, v); err != nil {
		return ""
	}
	return buf.String()
}

func domNode(v view.View) (*dom.Node, error) {
	n := view.Resolve(v)
	if n == nil {
		return nil, fmt.Errorf("render: nil view")
	}
	node, ok := n.(*dom.Node)
	if !ok {
		return nil, fmt.Errorf("render: unsupported node type %T", n)
	}
	return node, nil
}

// renderNode dispatches rendering based on node type.
func (r *Renderer) renderNode(w io.Writer, node *dom.Node, depth int) error {
	switch node.Type {
	case view.ElementNode:
		return r.renderElement(w, node, depth)
	case view.TextNode:
		text := node.Data
		if kindOf(node.Parent())&kindRawText == 0 {
			text = escapeText(text)
		}
		_, err := io.WriteString(w, text)
		return err
	case view.DocumentNode:
		if r.config.Doctype {
			if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
				return err
			}
			r.newline(w)
		}
		return r.renderChildren(w, node, depth)
	case view.FragmentNode, view.ShadowRootNode:
		return r.renderChildren(w, node, depth)
	default:
		return fmt.Errorf("render: unknown node type: %d", node.Type)
	}
}

func (r *Renderer) renderChildren(w io.Writer, node *dom.Node, depth int) error {
	for c := node.First(); c != nil; c = c.Next() {
		if err := r.renderNode(w, c, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderElement renders an element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *dom.Node, depth int) error {
	tag := node.Tag
	kind := kindOf(node)

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	for _, a := range node.Attributes() {
		if bareAttr(a) {
			if _, err := fmt.Fprintf(w, " %s", a.Name); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, a.Name, escapeAttr(a.Value)); err != nil {
			return err
		}
	}

	if kind&kindVoid != 0 {
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		r.newline(w)
		return nil
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	hasBlockChildren := node.First() != nil && kind&kindInline == 0 && !onlyText(node)
	if hasBlockChildren {
		r.newline(w)
	}
	for c := node.First(); c != nil; c = c.Next() {
		if err := r.renderNode(w, c, depth+1); err != nil {
			return err
		}
	}
	if r.config.Pretty && hasBlockChildren {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	r.newline(w)
	return nil
}

func onlyText(node *dom.Node) bool {
	for c := node.First(); c != nil; c = c.Next() {
		if c.Type != view.TextNode {
			return false
		}
	}
	return true
}

func (r *Renderer) newline(w io.Writer) {
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
