package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/viewtree/pkg/view"
)

func tags(n *Node) []string {
	var out []string
	for _, c := range n.Children() {
		if c.Type == view.TextNode {
			out = append(out, "#"+c.Data)
			continue
		}
		out = append(out, c.Tag)
	}
	return out
}

func TestInsertMovesNode(t *testing.T) {
	a, b := NewElement("div"), NewElement("div")
	x, y, z := NewElement("x"), NewElement("y"), NewElement("z")
	a.Append(x, y)
	b.Append(z)

	b.InsertBefore(y, z)
	if diff := cmp.Diff([]string{"x"}, tags(a)); diff != "" {
		t.Errorf("a children (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"y", "z"}, tags(b)); diff != "" {
		t.Errorf("b children (-want +got):\n%s", diff)
	}
	if y.Parent() != b {
		t.Errorf("y.Parent() = %v, want %v", y.Parent(), b)
	}

	b.AppendChild(y)
	if diff := cmp.Diff([]string{"z", "y"}, tags(b)); diff != "" {
		t.Errorf("after append (-want +got):\n%s", diff)
	}
}

func TestReplaceChild(t *testing.T) {
	p := NewElement("div")
	a, b, c := NewElement("a"), NewElement("b"), NewElement("c")
	p.Append(a, b, c)

	p.ReplaceChild(c, a)
	if diff := cmp.Diff([]string{"c", "b"}, tags(p)); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}
	if a.Parent() != nil {
		t.Error("replaced node should be detached")
	}
	if p.Last() != b || b.Next() != nil || c.Prev() != nil {
		t.Error("sibling links are inconsistent")
	}
}

func TestRemoveChildNotChildPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrNotChild {
			t.Errorf("recover() = %v, want %v", r, ErrNotChild)
		}
	}()
	NewElement("div").RemoveChild(NewElement("span"))
}

func TestInsertCyclePanics(t *testing.T) {
	outer, inner := NewElement("div"), NewElement("div")
	outer.Append(inner)

	defer func() {
		if r := recover(); r != ErrHierarchy {
			t.Errorf("recover() = %v, want %v", r, ErrHierarchy)
		}
	}()
	inner.AppendChild(outer)
}

func TestFragmentInsertion(t *testing.T) {
	f := NewFragment()
	f.Append(NewElement("a"), NewElement("b"))
	p := NewElement("div")
	p.Append(NewElement("c"))

	p.InsertBefore(f, p.First())
	if diff := cmp.Diff([]string{"a", "b", "c"}, tags(p)); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}
	if f.First() != nil {
		t.Error("fragment should be emptied")
	}
}

func TestViewNodeNilInterfaces(t *testing.T) {
	n := NewElement("div")
	if n.ParentNode() != nil {
		t.Error("ParentNode() should be a nil interface")
	}
	if n.FirstChild() != nil {
		t.Error("FirstChild() should be a nil interface")
	}
	if n.NextSibling() != nil {
		t.Error("NextSibling() should be a nil interface")
	}
}

func TestTextContent(t *testing.T) {
	p := NewElement("P")
	if p.Tag != "p" {
		t.Errorf("Tag = %q, want %q", p.Tag, "p")
	}
	p.Append(NewText("a"), NewElement("b").Append(NewText("b")))
	if got := p.TextContent(); got != "ab" {
		t.Errorf("TextContent() = %q, want %q", got, "ab")
	}
	p.SetTextContent("z")
	if diff := cmp.Diff([]string{"#z"}, tags(p)); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}
}

func TestDocument(t *testing.T) {
	doc := NewDocument()
	if doc.Root().NodeType() != view.DocumentNode {
		t.Errorf("root type = %v", doc.Root().NodeType())
	}
	if view.Resolve(doc) != view.Node(doc.Root()) {
		t.Error("document should resolve to its root node")
	}
	if doc.Body().Parent() != doc.DocumentElement() || doc.Head().Next() != doc.Body() {
		t.Error("unexpected document structure")
	}
}
