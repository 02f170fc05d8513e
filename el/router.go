package el

import (
	"github.com/vango-dev/viewtree/internal/errors"
	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/view"
)

// RouteFunc builds the view for a route each time the route is entered. The
// router releases the view from the engine when the route is left.
type RouteFunc func(init, data any) view.View

// Router shows one of several named views inside its element.
type Router struct {
	el      *dom.Node
	routes  map[string]any
	init    any
	route   string
	routed  bool
	current view.View
	built   bool
	b       Builder
}

// NewRouter creates a router rendering into parent, a query string or a view.
// Route values are views, shown as is, or RouteFuncs.
func NewRouter(parent any, routes map[string]any, init any, opts ...Option) (*Router, error) {
	b := builderFor(opts)
	var el *dom.Node
	switch p := parent.(type) {
	case string:
		el = b.H(p)
	case view.View:
		el = element(p)
	}
	if el == nil {
		return nil, errors.New(errors.CodeInvalidRoute).WithDetailf("parent %T has no element", parent)
	}

	for name, r := range routes {
		switch r.(type) {
		case view.View, RouteFunc, func(any, any) view.View:
		default:
			return nil, errors.New(errors.CodeInvalidRoute).WithDetailf("route %q is %T", name, r)
		}
	}
	return &Router{el: el, routes: routes, init: init, b: b}, nil
}

// El implements view.View.
func (r *Router) El() view.View {
	return r.el
}

// Route returns the current route name.
func (r *Router) Route() string {
	return r.route
}

// View returns the view of the current route, or nil for an unknown route.
func (r *Router) View() view.View {
	return r.current
}

// Update switches to route when it changed, then passes data to the current
// view if it implements Updater. Unknown routes render nothing.
func (r *Router) Update(route string, data any) {
	if !r.routed || route != r.route {
		e := r.b.Engine()
		prev, prevBuilt := r.current, r.built
		r.route, r.routed = route, true
		r.built = false
		switch rv := r.routes[route].(type) {
		case RouteFunc:
			r.current, r.built = rv(r.init, data), true
		case func(any, any) view.View:
			r.current, r.built = rv(r.init, data), true
		case view.View:
			r.current = rv
		default:
			r.current = nil
		}
		e.SetChildren(r.el, r.current)
		if prevBuilt && prev != nil && prev != r.current {
			e.Release(prev)
		}
	}
	if u, ok := r.current.(Updater); ok {
		u.Update(data)
	}
}
