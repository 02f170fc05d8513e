package render

import (
	"testing"

	"github.com/vango-dev/viewtree/pkg/dom"
)

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a < b && c > d", "a &lt; b &amp;&amp; c &gt; d"},
		{`"quotes" and 'apostrophes'`, `"quotes" and 'apostrophes'`},
		{"non\u00a0breaking", "non&nbsp;breaking"},
		{"日本語", "日本語"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := escapeText(tt.in); got != tt.want {
			t.Errorf("escapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`say "hi"`, "say &quot;hi&quot;"},
		{"a&b", "a&amp;b"},
		{"<tag>", "<tag>"},
		{"line\nbreak", "line&#10;break"},
	}
	for _, tt := range tests {
		if got := escapeAttr(tt.in); got != tt.want {
			t.Errorf("escapeAttr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		node *dom.Node
		want elementKind
	}{
		{"void", dom.NewElement("img"), kindVoid},
		{"void and inline", dom.NewElement("br"), kindVoid | kindInline},
		{"inline", dom.NewElement("span"), kindInline},
		{"raw text", dom.NewElement("script"), kindRawText},
		{"block", dom.NewElement("div"), 0},
		{"svg namespace", dom.NewElementNS(dom.NamespaceSVG, "image"), 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kindOf(tt.node); got != tt.want {
				t.Errorf("kindOf() = %b, want %b", got, tt.want)
			}
		})
	}
}

func TestRawTextIsNotEscaped(t *testing.T) {
	script := dom.NewElement("script").Append(dom.NewText("if (a < b && c) {}"))
	want := "<script>if (a < b && c) {}</script>"
	if got := OuterHTML(script); got != want {
		t.Errorf("OuterHTML() = %q, want %q", got, want)
	}
}

func TestBareAttr(t *testing.T) {
	tests := []struct {
		attr dom.Attr
		want bool
	}{
		{dom.Attr{Name: "checked"}, true},
		{dom.Attr{Name: "disabled", Value: "disabled"}, true},
		{dom.Attr{Name: "disabled", Value: "false"}, false},
		{dom.Attr{Name: "title"}, false},
	}
	for _, tt := range tests {
		if got := bareAttr(tt.attr); got != tt.want {
			t.Errorf("bareAttr(%+v) = %v, want %v", tt.attr, got, tt.want)
		}
	}
}
