package view

import (
	"log/slog"
	"sync/atomic"
)

// entry is the side state the engine keeps for a node.
type entry struct {
	view     View     // logical view owning the node, nil when view == node
	mounted  bool     // live in the mounted tree
	own      Interest // contribution of view alone
	interest Interest // own plus every tracked descendant
	index    int      // last position in an owning List
	indexed  bool
	fired    uint64 // walk sequence of the last hook fired here
	hook     Hook   // hook fired at sequence fired
}

// idle reports whether the entry carries no state worth keeping.
func (e *entry) idle() bool {
	return e.view == nil && !e.mounted && !e.indexed && e.interest.Empty()
}

// Engine mounts and unmounts views and owns the per-node side table.
//
// An Engine is not safe for concurrent use: like the host tree it mutates, it
// belongs to a single UI goroutine. Lifecycle callbacks may re-enter the
// engine.
type Engine struct {
	nodes            map[Node]*entry
	shadowBoundaries bool
	logger           *slog.Logger
	observers        []Observer
	seq              uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. Lifecycle firing is logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithShadowBoundaries makes shadow roots act as mount boundaries, like
// documents: mounting below an unmounted shadow root still fires onmount.
func WithShadowBoundaries(enabled bool) Option {
	return func(e *Engine) {
		e.shadowBoundaries = enabled
	}
}

// WithObserver registers an observer for lifecycle and reconcile events.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		nodes:  make(map[Node]*entry),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine atomic.Pointer[Engine]

func init() {
	defaultEngine.Store(New(WithShadowBoundaries(true)))
}

// Default returns the engine used by the package-level functions.
func Default() *Engine {
	return defaultEngine.Load()
}

// SetDefault replaces the engine used by the package-level functions.
func SetDefault(e *Engine) {
	if e != nil {
		defaultEngine.Store(e)
	}
}

// Observe registers an observer after construction.
func (e *Engine) Observe(o Observer) {
	if o != nil {
		e.observers = append(e.observers, o)
	}
}

// Mount appends child to parent using the default engine.
func Mount(parent, child View) View {
	return Default().Mount(parent, child, nil, false)
}

// MountBefore inserts child before ref using the default engine.
func MountBefore(parent, child, ref View) View {
	return Default().Mount(parent, child, ref, false)
}

// Replace substitutes child for old using the default engine.
func Replace(parent, child, old View) View {
	return Default().Mount(parent, child, old, true)
}

// Unmount detaches child using the default engine.
func Unmount(parent, child View) View {
	return Default().Unmount(parent, child)
}

// Mount attaches child's node under parent and fires lifecycle callbacks.
//
// With a nil before the node is appended. Otherwise it is inserted before
// before's node, or replaces it when replace is true; a replaced node that was
// mounted receives onunmount first. Mounting under the node's current parent
// is a reposition and fires onremount. Mount returns the logical view: when
// child is a bare node bound to a view, that view is returned.
func (e *Engine) Mount(parent, child, before View, replace bool) View {
	parentNode := Resolve(parent)
	node := Resolve(child)
	if parentNode == nil || node == nil {
		panic("view: mount of nil view")
	}

	logical := e.bind(child, node)
	oldParent := node.ParentNode()
	if oldParent != nil && oldParent != parentNode {
		e.unmountSide(node, oldParent)
	}

	if ref := Resolve(before); ref != nil {
		if replace {
			if ref != node {
				e.unmountSide(ref, parentNode)
				parentNode.ReplaceChild(node, ref)
			}
		} else {
			parentNode.InsertBefore(node, ref)
		}
	} else {
		parentNode.AppendChild(node)
	}

	e.mountSide(logical, node, parentNode, oldParent)
	return logical
}

// Unmount runs the unmount side for child and removes its node from the tree.
// It is a no-op when the node has no parent. The logical view is returned.
func (e *Engine) Unmount(parent, child View) View {
	node := Resolve(child)
	if node == nil {
		return child
	}
	logical := child
	if View(node) == child {
		if ent := e.nodes[node]; ent != nil && ent.view != nil {
			logical = ent.view
		}
	}

	current := node.ParentNode()
	if current == nil {
		return logical
	}
	if p := Resolve(parent); p != nil && p != current {
		e.logger.Warn("view: unmount parent mismatch; removing from actual parent",
			"parent", p.NodeType().String(), "actual", current.NodeType().String())
	}

	e.unmountSide(node, current)
	current.RemoveChild(node)
	e.sweep(node)
	return logical
}

// Release unmounts v if it is attached and drops the side state of its whole
// subtree. Use it for views that will not be mounted again; a released view
// mounted later starts over with only its own hooks.
func (e *Engine) Release(v View) {
	node := Resolve(v)
	if node == nil {
		return
	}
	if parent := node.ParentNode(); parent != nil {
		e.Unmount(parent, v)
	}
	e.release(node)
}

// Interest returns the hook interest counters tracked for v's node.
func (e *Engine) Interest(v View) Interest {
	if ent := e.nodes[Resolve(v)]; ent != nil {
		return ent.interest
	}
	return Interest{}
}

// Mounted reports whether v's node is marked live in the mounted tree.
func (e *Engine) Mounted(v View) bool {
	ent := e.nodes[Resolve(v)]
	return ent != nil && ent.mounted
}

// ViewOf returns the view bound to node, or nil.
func (e *Engine) ViewOf(node Node) View {
	if ent := e.nodes[node]; ent != nil {
		return ent.view
	}
	return nil
}

// Tracked returns the number of nodes with side state.
func (e *Engine) Tracked() int {
	return len(e.nodes)
}

// release drops the side state of node and its whole subtree. It is used for
// views a List destroys.
func (e *Engine) release(node Node) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		e.release(c)
	}
	delete(e.nodes, node)
}

// sweep drops the state of nodes in a detached subtree that carry no hook
// interest and no list position. Hooked nodes keep their state so the subtree
// fires again when it is mounted back.
func (e *Engine) sweep(node Node) {
	if ent := e.nodes[node]; ent != nil && ent.interest.Empty() && !ent.indexed {
		delete(e.nodes, node)
	}
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		e.sweep(c)
	}
}

// bind records the view/node relationship and returns the logical view.
func (e *Engine) bind(v View, node Node) View {
	if View(node) == v {
		if ent := e.nodes[node]; ent != nil && ent.view != nil {
			return ent.view
		}
		return v
	}
	e.track(node).view = v
	return v
}

func (e *Engine) track(node Node) *entry {
	ent := e.nodes[node]
	if ent == nil {
		ent = &entry{}
		e.nodes[node] = ent
	}
	return ent
}

func (e *Engine) prune(node Node, ent *entry) {
	if ent.idle() {
		delete(e.nodes, node)
	}
}

// clear drops the interest bookkeeping of node. A node without interest is
// never considered mounted: its mount state is rediscovered from ancestors.
func (e *Engine) clear(node Node) {
	ent := e.nodes[node]
	if ent == nil {
		return
	}
	ent.interest = Interest{}
	ent.own = Interest{}
	ent.mounted = false
	e.prune(node, ent)
}

func (e *Engine) isMounted(node Node) bool {
	ent := e.nodes[node]
	return ent != nil && ent.mounted
}

func (e *Engine) isBoundary(node Node) bool {
	switch node.NodeType() {
	case DocumentNode:
		return true
	case ShadowRootNode:
		return e.shadowBoundaries
	}
	return false
}

// mountSide updates interest counters after node was attached under parent
// and fires onmount or onremount where needed.
func (e *Engine) mountSide(v View, node, parent, oldParent Node) {
	remount := parent == oldParent

	ent := e.nodes[node]
	if !remount && View(node) != v {
		if ent == nil {
			ent = e.track(node)
		}
		own := ownInterest(v)
		ent.interest = ent.interest.sub(ent.own).add(own)
		ent.own = own
	}
	if ent == nil || ent.interest.Empty() {
		e.clear(node)
		return
	}

	if !remount {
		for a := parent; a != nil; a = a.ParentNode() {
			ae := e.track(a)
			ae.interest = ae.interest.add(ent.interest)
		}
	}

	if remount {
		e.trigger(node, HookRemount)
		return
	}
	if e.isMounted(parent) {
		e.trigger(node, HookMount)
		return
	}
	for a := parent; a != nil; a = a.ParentNode() {
		p := a.ParentNode()
		if e.isBoundary(a) || (p != nil && e.isMounted(p)) {
			e.trigger(a, HookMount)
			return
		}
	}
}

// unmountSide fires onunmount on node if it is mounted and removes its
// interest from every ancestor starting at parent.
func (e *Engine) unmountSide(node, parent Node) {
	ent := e.nodes[node]
	if ent == nil || ent.interest.Empty() {
		e.clear(node)
		return
	}
	if ent.mounted {
		e.trigger(node, HookUnmount)
	}

	// Read after firing: callbacks may have restructured the subtree.
	removed := ent.interest
	for a := parent; a != nil; a = a.ParentNode() {
		ae := e.nodes[a]
		if ae == nil {
			continue
		}
		ae.interest = ae.interest.sub(removed)
		if ae.interest.Empty() {
			e.clear(a)
		}
	}
}

// trigger starts a firing walk at node.
func (e *Engine) trigger(node Node, h Hook) {
	e.seq++
	e.fire(node, h, e.seq)
}

// fire sets the mounted flag of node, runs its view's callback and descends
// into children that carry interest, in sibling order. A remount leaves the
// flag alone: repositioning inside a detached subtree does not attach it.
// Children already in the state h leads to, or that already received h from a
// walk started by one of the callbacks, are skipped.
func (e *Engine) fire(node Node, h Hook, seq uint64) {
	ent := e.nodes[node]
	if ent == nil {
		return
	}
	if h != HookRemount {
		ent.mounted = h == HookMount
	}
	ent.fired, ent.hook = seq, h
	if ent.interest.Empty() {
		return
	}

	if ent.view != nil && call(ent.view, h) {
		e.logger.Debug("view: lifecycle", "hook", h.String(), "node", node.NodeType().String())
		e.emit(Event{Kind: hookEvent(h), View: ent.view, Node: node})
	}

	for c := node.FirstChild(); c != nil; {
		next := c.NextSibling()
		ce := e.nodes[c]
		if ce != nil && !ce.interest.Empty() && !settled(ce, h, seq) {
			e.fire(c, h, seq)
		}
		c = next
	}
}

// settled reports whether a child walk with h must skip ent.
func settled(ent *entry, h Hook, seq uint64) bool {
	switch {
	case ent.fired > seq && ent.hook == h:
		return true
	case h == HookMount:
		return ent.mounted
	case h == HookUnmount:
		return !ent.mounted
	}
	return false
}

func (e *Engine) emit(ev Event) {
	for _, o := range e.observers {
		o.Observe(ev)
	}
}
