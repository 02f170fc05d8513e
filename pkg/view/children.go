package view

import "reflect"

// target is one entry of a flattened child sequence.
type target struct {
	view View
	node Node
}

// SetChildren reconciles parent's children using the default engine.
func SetChildren(parent View, children ...any) {
	Default().SetChildren(parent, children...)
}

// SetChildren makes parent's child nodes exactly the resolved nodes of
// children, in order. Children may be views, nodes, or slices of them nested to
// any depth; nil values, false and nil views render nothing. Nodes already in
// place are left alone, nodes that drop out are unmounted.
func (e *Engine) SetChildren(parent View, children ...any) {
	parentNode := Resolve(parent)
	if parentNode == nil {
		panic("view: set children of nil view")
	}
	targets := flatten(nil, children)
	current := e.traverse(parent, targets, parentNode.FirstChild())
	for current != nil {
		next := current.NextSibling()
		e.Unmount(parent, current)
		current = next
	}
}

// traverse walks the live children starting at current alongside targets and
// returns the first child left over.
func (e *Engine) traverse(parent View, targets []target, current Node) Node {
	for i, t := range targets {
		if t.node == current {
			current = current.NextSibling()
			continue
		}

		var next, following Node
		if current != nil {
			next = current.NextSibling()
		}
		if i+1 < len(targets) {
			following = targets[i+1].node
		}

		// A list-owned view swaps with the current node when the node after
		// current is already what the following slot wants.
		replace := current != nil && e.indexed(t.node) && next == following

		var before View
		if current != nil {
			before = current
		}
		e.Mount(parent, t.view, before, replace)
		if replace {
			current = next
		}
	}
	return current
}

func (e *Engine) indexed(node Node) bool {
	ent := e.nodes[node]
	return ent != nil && ent.indexed
}

func (e *Engine) setIndex(node Node, i int) {
	ent := e.track(node)
	ent.index = i
	ent.indexed = true
}

func (e *Engine) clearIndex(node Node) {
	if ent := e.nodes[node]; ent != nil {
		ent.indexed = false
		e.prune(node, ent)
	}
}

// Index returns the last list position recorded for v's node.
func (e *Engine) Index(v View) (int, bool) {
	if ent := e.nodes[Resolve(v)]; ent != nil && ent.indexed {
		return ent.index, true
	}
	return 0, false
}

// flatten appends the views found in children to dst, depth first.
func flatten(dst []target, children []any) []target {
	for _, c := range children {
		switch v := c.(type) {
		case nil, bool:
			continue
		case View:
			if isNil(v) {
				continue
			}
			if n := Resolve(v); n != nil {
				dst = append(dst, target{view: v, node: n})
			}
		case []any:
			dst = flatten(dst, v)
		case []View:
			for _, cv := range v {
				dst = flatten(dst, []any{cv})
			}
		default:
			rv := reflect.ValueOf(c)
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				continue
			}
			for i := 0; i < rv.Len(); i++ {
				dst = flatten(dst, []any{rv.Index(i).Interface()})
			}
		}
	}
	return dst
}
