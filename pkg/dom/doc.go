// Package dom is an in-memory host node tree for viewtree.
//
// Node implements view.Node, so dom trees can be driven by the view engine:
// parent/child/sibling links, ordered insertion with DOM move semantics, plus
// the attribute, style, dataset and event-listener surface the el package
// builds on.
//
// # Documents
//
// NewDocument returns a document node holding <html>, <head> and <body>.
// Documents are mount boundaries: mounting under an unmounted body walks up to
// the document and fires onmount from there.
//
//	doc := dom.NewDocument()
//	view.Mount(doc.Body(), app)
//
// # Mutation
//
// AppendChild, InsertBefore, RemoveChild and ReplaceChild follow DOM
// semantics: a node inserted elsewhere is first detached from its parent, and
// inserting a fragment moves the fragment's children. Creating a cycle panics
// with ErrHierarchy.
package dom
