// Package render serializes dom trees to HTML.
//
// Text and attribute values are escaped, void elements have no closing tag,
// boolean attributes with an empty value render as bare names, and attributes
// are written in name order so output is deterministic. Text inside script
// and style elements is written as is. Elements outside the HTML namespace,
// such as SVG, always get a closing tag.
//
//	html := render.OuterHTML(list.El())
//	body := render.InnerHTML(doc.Body())
//
// For development output, enable pretty printing:
//
//	r := render.NewRenderer(render.RendererConfig{Pretty: true})
//	s, err := r.RenderToString(doc.Root())
package render
