package demo

import (
	"context"
	"fmt"

	"github.com/vango-dev/viewtree/el"
	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/view"
)

func init() {
	register(Scenario{
		Name:        "lifecycle",
		Description: "mount, remount and unmount a single component",
		Run:         runLifecycle,
	})
	register(Scenario{
		Name:        "tree",
		Description: "depth-first propagation through nested components and a shadow root",
		Run:         runTree,
	})
	register(Scenario{
		Name:        "reorder",
		Description: "keyed list reordering with minimal moves",
		Run:         runReorder,
	})
	register(Scenario{
		Name:        "variants",
		Description: "keyed list with per-item view variants",
		Run:         runVariants,
	})
	register(Scenario{
		Name:        "router",
		Description: "router and place switching views in and out",
		Run:         runRouter,
	})
}

func runLifecycle(_ context.Context, env *Env) error {
	section := env.El.H("section")
	env.Mount(env.Doc.Body(), section)
	hello := env.NewTraced("hello", "h1", "Hello world")
	other := env.El.H("p", "sibling")

	env.Step("mount into the document")
	env.Mount(section, hello)

	env.Step("insert a sibling before it")
	env.MountBefore(section, other, hello)

	env.Step("move it to the front")
	env.MountBefore(section, hello, other)
	env.Snapshot()

	env.Step("move it to another parent")
	aside := env.El.H("aside")
	env.Mount(env.Doc.Body(), aside)
	env.Mount(aside, hello)

	env.Step("unmount")
	env.Unmount(aside, hello)
	env.Snapshot()
	return nil
}

func runTree(_ context.Context, env *Env) error {
	env.Step("build a detached tree")
	app := env.NewTraced("app", "div#app",
		env.NewTraced("header", "header", env.NewTraced("logo", "span.logo", "viewtree")),
		env.NewTraced("main", "main",
			env.El.H("ul", env.NewTraced("item", "li", "one")),
		),
	)
	env.Logf("   interest %v", env.Engine.Interest(app))

	env.Step("attach to the document")
	env.Mount(env.Doc.Body(), app)

	env.Step("mount into a detached shadow root")
	host := env.El.H("x-card")
	shadow := dom.NewShadowRoot()
	host.AppendChild(shadow)
	env.Mount(shadow, env.NewTraced("shadow", "slot"))

	env.Step("detach the whole tree")
	env.Unmount(env.Doc.Body(), app)
	env.Logf("   tracked nodes %d", env.Engine.Tracked())
	return nil
}

func runReorder(ctx context.Context, env *Env) error {
	list := el.List("ul", env.newRow, func(s string) any { return s }, nil,
		view.WithEngine(env.Engine))
	env.Mount(env.Doc.Body(), list)

	for _, data := range [][]string{
		{"a", "b", "c", "d", "e"},
		{"a", "c", "d", "e", "b"},
		{"e", "d", "c", "b", "a"},
		{"b", "d", "f"},
		{},
	} {
		env.Step(fmt.Sprintf("update %v", data))
		if err := list.Update(ctx, data); err != nil {
			return err
		}
		env.Snapshot()
	}
	return nil
}

// Entry is a list item choosing its view variant by Kind.
type Entry struct {
	ID    int
	Kind  string
	Label string
}

type entryView struct {
	Traced
}

func (v *entryView) Update(_ context.Context, e Entry, _ int, _ []Entry) {
	v.el.SetTextContent(e.Label)
}

func runVariants(ctx context.Context, env *Env) error {
	variant := func(query string) view.Factory[Entry] {
		return func(_ any, e Entry, _ int, _ []Entry) (view.View, error) {
			name := fmt.Sprintf("%s %d", e.Kind, e.ID)
			return &entryView{Traced: Traced{Name: name, el: env.El.H(query), env: env}}, nil
		}
	}
	factory, err := el.ViewFactory(map[string]view.Factory[Entry]{
		"text": variant("span.text"),
		"link": variant("a.link"),
	}, "Kind")
	if err != nil {
		return err
	}

	list := el.List("div.entries", factory, view.PropKey[Entry]("ID"), nil,
		view.WithEngine(env.Engine))
	env.Mount(env.Doc.Body(), list)

	steps := [][]Entry{
		{{1, "text", "intro"}, {2, "link", "docs"}},
		{{2, "link", "docs"}, {3, "text", "outro"}, {1, "text", "intro"}},
		{{4, "video", "clip"}},
	}
	for _, data := range steps {
		env.Step(fmt.Sprintf("update with %d entries", len(data)))
		if err := list.Update(ctx, data); err != nil {
			env.Logf("   error: %v", err)
			continue
		}
		env.Snapshot()
	}
	return nil
}

func runRouter(_ context.Context, env *Env) error {
	router, err := el.NewRouter("main", map[string]any{
		"home": el.RouteFunc(func(_, data any) view.View {
			return env.NewTraced("home", "h1", "Home")
		}),
		"about": el.RouteFunc(func(_, data any) view.View {
			return env.NewTraced("about", "h1", "About")
		}),
	}, nil, el.WithEngine(env.Engine))
	if err != nil {
		return err
	}
	banner := el.NewPlaceFunc(func(init any) view.View {
		return env.NewTraced("banner", "div.banner", fmt.Sprint(init))
	}, "welcome", el.WithEngine(env.Engine))
	env.Mount(env.Doc.Body(), env.El.H("div", banner, router))

	for _, route := range []string{"home", "about", "about", "missing", "home"} {
		env.Step("route " + route)
		router.Update(route, nil)
		banner.Update(route == "home", nil)
		env.Snapshot()
	}
	return nil
}
