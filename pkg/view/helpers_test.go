package view_test

import (
	"strings"

	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/view"
)

type trace struct {
	log []string
}

func (t *trace) add(s string) {
	t.log = append(t.log, s)
}

type counts struct {
	Mount, Remount, Unmount int
}

func (t *trace) counts() counts {
	var c counts
	for _, s := range t.log {
		switch {
		case strings.HasSuffix(s, " remount"):
			c.Remount++
		case strings.HasSuffix(s, " unmount"):
			c.Unmount++
		case strings.HasSuffix(s, " mount"):
			c.Mount++
		}
	}
	return c
}

// item implements every lifecycle callback.
type item struct {
	name string
	el   *dom.Node
	t    *trace
}

func newItem(name string, t *trace) *item {
	return &item{name: name, el: dom.NewElement("p"), t: t}
}

func (i *item) El() view.View { return i.el }
func (i *item) OnMount()      { i.t.add(i.name + " mount") }
func (i *item) OnRemount()    { i.t.add(i.name + " remount") }
func (i *item) OnUnmount()    { i.t.add(i.name + " unmount") }

type mountOnly struct {
	el *dom.Node
	t  *trace
}

func (m *mountOnly) El() view.View { return m.el }
func (m *mountOnly) OnMount()      { m.t.add("m mount") }

type unmountOnly struct {
	el *dom.Node
	t  *trace
}

func (u *unmountOnly) El() view.View { return u.el }
func (u *unmountOnly) OnUnmount()    { u.t.add("u unmount") }

type remountOnly struct {
	el *dom.Node
	t  *trace
}

func (r *remountOnly) El() view.View { return r.el }
func (r *remountOnly) OnRemount()    { r.t.add("r remount") }

// plain is a view without callbacks.
type plain struct {
	el *dom.Node
}

func (p *plain) El() view.View { return p.el }
