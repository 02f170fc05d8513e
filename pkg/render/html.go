package render

import (
	"strings"

	"github.com/vango-dev/viewtree/pkg/dom"
)

// Escaping follows the HTML fragment serialization algorithm: text escapes
// &, < and >; attribute values escape & and the double quote. Non-breaking
// spaces are written as entities in both so they survive copy and paste.
var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\u00a0", "&nbsp;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		`"`, "&quot;",
		"\u00a0", "&nbsp;",
		"\n", "&#10;",
	)
)

func escapeText(s string) string { return textEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }

// elementKind flags how an HTML element serializes.
type elementKind uint8

const (
	kindVoid    elementKind = 1 << iota // no children, no closing tag
	kindInline                          // no line breaks around it in pretty mode
	kindRawText                         // text children are written unescaped
)

var htmlElements = func() map[string]elementKind {
	m := make(map[string]elementKind)
	add := func(kind elementKind, tags string) {
		for _, tag := range strings.Fields(tags) {
			m[tag] |= kind
		}
	}
	add(kindVoid, "area base br col embed hr img input link meta source track wbr")
	add(kindInline, "a abbr b bdi bdo br cite code data dfn em i kbd label mark q "+
		"s samp small span strong sub sup time u var wbr")
	add(kindRawText, "script style")
	return m
}()

// kindOf returns the serialization flags of n. Elements outside the HTML
// namespace always have closing tags and escaped text.
func kindOf(n *dom.Node) elementKind {
	if n == nil || n.Namespace != "" {
		return 0
	}
	return htmlElements[n.Tag]
}

var booleanAttrs = func() map[string]bool {
	m := make(map[string]bool)
	for _, name := range strings.Fields(`allowfullscreen async autofocus autoplay
		checked controls default defer disabled formnovalidate hidden inert ismap
		itemscope loop multiple muted nomodule novalidate open playsinline readonly
		required reversed selected`) {
		m[name] = true
	}
	return m
}()

// bareAttr reports whether a is a boolean attribute that can be written
// without a value.
func bareAttr(a dom.Attr) bool {
	return booleanAttrs[a.Name] && (a.Value == "" || a.Value == a.Name)
}
