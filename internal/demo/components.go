package demo

import (
	"context"
	"fmt"

	"github.com/vango-dev/viewtree/el"
	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/view"
)

// Traced is a component logging each of its lifecycle callbacks.
type Traced struct {
	Name string
	el   *dom.Node
	env  *Env
}

// NewTraced builds a traced component around env.El.H(query, args...).
func (env *Env) NewTraced(name, query string, args ...any) *Traced {
	return &Traced{Name: name, el: env.El.H(query, args...), env: env}
}

func (t *Traced) El() view.View { return t.el }
func (t *Traced) OnMount()      { t.env.Logf("   %s mount", t.Name) }
func (t *Traced) OnRemount()    { t.env.Logf("   %s remount", t.Name) }
func (t *Traced) OnUnmount()    { t.env.Logf("   %s unmount", t.Name) }

// Update implements el.Updater by replacing the text content.
func (t *Traced) Update(data any) {
	if data != nil {
		t.el.SetTextContent(fmt.Sprint(data))
	}
}

// Row is a traced list item showing a string.
type Row struct {
	Traced
}

func (env *Env) newRow(init any, item string, _ int, _ []string) (view.View, error) {
	return &Row{Traced: Traced{Name: "row " + item, el: env.El.H("li"), env: env}}, nil
}

// Update implements view.ItemUpdater.
func (r *Row) Update(_ context.Context, item string, index int, _ []string) {
	r.el.SetTextContent(item)
	el.SetData(r, "index", index)
}
