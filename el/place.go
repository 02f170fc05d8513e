package el

import (
	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/view"
)

// Place reserves a spot in its parent with an empty text node and shows a
// view there on demand.
type Place struct {
	el          view.Node
	placeholder *dom.Node
	fixed       view.View
	build       func(init any) view.View
	init        any
	current     view.View
	visible     bool
	b           Builder
}

// NewPlace creates a place showing v, an element or a view instance.
func NewPlace(v view.View, opts ...Option) *Place {
	p := newPlace(opts)
	p.fixed = v
	return p
}

// NewPlaceFunc creates a place that builds a fresh view with init each time it
// becomes visible. A built view is released from the engine once hidden.
func NewPlaceFunc(build func(init any) view.View, init any, opts ...Option) *Place {
	p := newPlace(opts)
	p.build = build
	p.init = init
	return p
}

func newPlace(opts []Option) *Place {
	ph := dom.NewText("")
	return &Place{el: ph, placeholder: ph, b: builderFor(opts)}
}

// El implements view.View. It resolves to the placeholder while hidden.
func (p *Place) El() view.View {
	return p.el
}

// Visible reports whether the view is shown.
func (p *Place) Visible() bool {
	return p.visible
}

// View returns the shown view instance, or nil.
func (p *Place) View() view.View {
	return p.current
}

// Update shows or hides the view. A shown view implementing Updater receives
// data.
func (p *Place) Update(visible bool, data any) {
	e := p.b.Engine()
	parent := p.el.ParentNode()
	if visible {
		if !p.visible {
			v := p.fixed
			if v == nil {
				v = p.build(p.init)
			}
			if parent != nil {
				e.Mount(parent, v, p.placeholder, false)
				e.Unmount(parent, p.placeholder)
			}
			p.el = view.Resolve(v)
			if _, bare := v.(view.Node); !bare {
				p.current = v
			}
		}
		if u, ok := p.current.(Updater); ok {
			u.Update(data)
		}
	} else if p.visible {
		shown := p.current
		if shown == nil {
			shown = p.el
		}
		if parent != nil {
			e.Mount(parent, p.placeholder, shown, false)
			e.Unmount(parent, shown)
		}
		p.el = p.placeholder
		if p.fixed == nil {
			e.Release(shown)
			p.current = nil
		}
	}
	p.visible = visible
}
