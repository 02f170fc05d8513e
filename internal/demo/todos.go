package demo

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/vango-dev/viewtree/el"
	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/view"
)

// Todo is one item of the todo app.
type Todo struct {
	ID    int
	Title string
	Done  bool
}

// TodoApp is a small keyed-list application the devtools server drives.
type TodoApp struct {
	env     *Env
	list    *view.List[Todo]
	summary *dom.Node
	items   []Todo
	nextID  int
	rng     *rand.Rand
}

type todoView struct {
	Traced
	check *dom.Node
	title *dom.Node
}

// NewTodoApp creates the app with the given initial titles. seed fixes the
// shuffle order.
func NewTodoApp(env *Env, seed uint64, titles ...string) *TodoApp {
	a := &TodoApp{
		env: env,
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
	for _, t := range titles {
		a.nextID++
		a.items = append(a.items, Todo{ID: a.nextID, Title: t})
	}
	a.list = el.List("ul.todos", a.newTodoView, view.PropKey[Todo]("ID"), nil,
		view.WithEngine(env.Engine))
	a.summary = env.El.H("p.summary")
	return a
}

func (a *TodoApp) newTodoView(_ any, t Todo, _ int, _ []Todo) (view.View, error) {
	v := &todoView{Traced: Traced{Name: fmt.Sprintf("todo %d", t.ID), env: a.env}}
	v.el = a.env.El.H("li",
		el.Ref(&v.check, a.env.El.H("input", el.Attrs{"type": "checkbox"})),
		el.Ref(&v.title, a.env.El.H("span.title")),
	)
	return v, nil
}

// Update implements view.ItemUpdater.
func (v *todoView) Update(_ context.Context, t Todo, _ int, _ []Todo) {
	v.title.SetTextContent(t.Title)
	el.SetAttribute(v.check, "checked", t.Done)
	el.SetData(v, "id", t.ID)
	if t.Done {
		v.el.SetClassName("done")
	} else {
		v.el.SetClassName("")
	}
}

// Mount attaches the app to the document body and renders the items.
func (a *TodoApp) Mount(ctx context.Context) error {
	body := a.env.Doc.Body()
	a.env.Mount(body, a.env.El.H("h1", "todos"))
	a.env.Mount(body, a.list)
	a.env.Mount(body, a.summary)
	return a.render(ctx)
}

// Items returns a copy of the current items.
func (a *TodoApp) Items() []Todo {
	return slices.Clone(a.items)
}

// Add appends a new item.
func (a *TodoApp) Add(ctx context.Context, title string) error {
	a.nextID++
	if title == "" {
		title = fmt.Sprintf("task %d", a.nextID)
	}
	a.items = append(a.items, Todo{ID: a.nextID, Title: title})
	return a.render(ctx)
}

// RemoveFirst drops the first item, if any.
func (a *TodoApp) RemoveFirst(ctx context.Context) error {
	if len(a.items) > 0 {
		a.items = a.items[1:]
	}
	return a.render(ctx)
}

// ToggleFirst flips the done state of the first item, if any.
func (a *TodoApp) ToggleFirst(ctx context.Context) error {
	if len(a.items) > 0 {
		a.items = slices.Clone(a.items)
		a.items[0].Done = !a.items[0].Done
	}
	return a.render(ctx)
}

// Shuffle reorders the items randomly.
func (a *TodoApp) Shuffle(ctx context.Context) error {
	a.rng.Shuffle(len(a.items), func(i, j int) {
		a.items[i], a.items[j] = a.items[j], a.items[i]
	})
	return a.render(ctx)
}

// Reverse reverses the item order.
func (a *TodoApp) Reverse(ctx context.Context) error {
	slices.Reverse(a.items)
	return a.render(ctx)
}

// ClearDone removes every finished item.
func (a *TodoApp) ClearDone(ctx context.Context) error {
	a.items = slices.DeleteFunc(a.items, func(t Todo) bool { return t.Done })
	return a.render(ctx)
}

func (a *TodoApp) render(ctx context.Context) error {
	if err := a.list.Update(ctx, a.items); err != nil {
		return err
	}
	done := 0
	for _, t := range a.items {
		if t.Done {
			done++
		}
	}
	a.summary.SetTextContent(fmt.Sprintf("%d of %d done", done, len(a.items)))
	return nil
}
