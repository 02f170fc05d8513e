package dom

import (
	"sort"
	"strings"
)

// Attr is a single attribute.
type Attr struct {
	Name  string
	Value string
}

type styleProp struct {
	name, value string
}

// SetAttribute sets an attribute. The style attribute is parsed into
// individual properties.
func (n *Node) SetAttribute(name, value string) {
	if name == "style" {
		n.SetStyleText(value)
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// SetAttributeNS sets a namespaced attribute. XLink attributes are stored
// under their "xlink:" qualified name.
func (n *Node) SetAttributeNS(ns, name, value string) {
	if ns == NamespaceXLink && !strings.HasPrefix(name, "xlink:") {
		name = "xlink:" + name
	}
	n.SetAttribute(name, value)
}

// RemoveAttributeNS removes a namespaced attribute.
func (n *Node) RemoveAttributeNS(ns, name string) {
	if ns == NamespaceXLink && !strings.HasPrefix(name, "xlink:") {
		name = "xlink:" + name
	}
	n.RemoveAttribute(name)
}

// GetAttribute returns an attribute value.
func (n *Node) GetAttribute(name string) (string, bool) {
	if name == "style" {
		s := n.StyleText()
		return s, s != ""
	}
	v, ok := n.attrs[name]
	return v, ok
}

// HasAttribute reports whether the attribute is set.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

// RemoveAttribute removes an attribute.
func (n *Node) RemoveAttribute(name string) {
	if name == "style" {
		n.styles = nil
		return
	}
	delete(n.attrs, name)
}

// Attributes returns all attributes sorted by name, style included.
func (n *Node) Attributes() []Attr {
	out := make([]Attr, 0, len(n.attrs)+1)
	for k, v := range n.attrs {
		out = append(out, Attr{Name: k, Value: v})
	}
	if s := n.StyleText(); s != "" {
		out = append(out, Attr{Name: "style", Value: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ID returns the id attribute.
func (n *Node) ID() string { return n.attrs["id"] }

// ClassName returns the class attribute.
func (n *Node) ClassName() string { return n.attrs["class"] }

// SetClassName sets the class attribute; an empty value removes it.
func (n *Node) SetClassName(class string) {
	class = strings.TrimSpace(class)
	if class == "" {
		n.RemoveAttribute("class")
		return
	}
	n.SetAttribute("class", class)
}

// AddClass appends classes not already present.
func (n *Node) AddClass(classes ...string) {
	existing := strings.Fields(n.ClassName())
	for _, c := range classes {
		for _, f := range strings.Fields(c) {
			if !contains(existing, f) {
				existing = append(existing, f)
			}
		}
	}
	n.SetClassName(strings.Join(existing, " "))
}

// Style returns a style property.
func (n *Node) Style(prop string) string {
	for _, p := range n.styles {
		if p.name == prop {
			return p.value
		}
	}
	return ""
}

// SetStyle sets a style property, keeping first-set order. An empty value
// removes the property.
func (n *Node) SetStyle(prop, value string) {
	prop = strings.TrimSpace(prop)
	for i, p := range n.styles {
		if p.name == prop {
			if value == "" {
				n.styles = append(n.styles[:i], n.styles[i+1:]...)
			} else {
				n.styles[i].value = value
			}
			return
		}
	}
	if value != "" {
		n.styles = append(n.styles, styleProp{name: prop, value: value})
	}
}

// StyleText returns the serialized style attribute.
func (n *Node) StyleText() string {
	if len(n.styles) == 0 {
		return ""
	}
	parts := make([]string, len(n.styles))
	for i, p := range n.styles {
		parts[i] = p.name + ": " + p.value + ";"
	}
	return strings.Join(parts, " ")
}

// SetStyleText replaces all style properties with the parsed declarations.
func (n *Node) SetStyleText(css string) {
	n.styles = nil
	for _, decl := range strings.Split(css, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		n.SetStyle(strings.TrimSpace(name), strings.TrimSpace(value))
	}
}

// Dataset returns the data-* attributes keyed without their prefix.
func (n *Node) Dataset() map[string]string {
	out := make(map[string]string)
	for k, v := range n.attrs {
		if key, ok := strings.CutPrefix(k, "data-"); ok {
			out[key] = v
		}
	}
	return out
}

// SetData sets a data-* attribute.
func (n *Node) SetData(key, value string) {
	n.SetAttribute("data-"+key, value)
}

// RemoveData removes a data-* attribute.
func (n *Node) RemoveData(key string) {
	n.RemoveAttribute("data-" + key)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
