package demo

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/vango-dev/viewtree/el"
	"github.com/vango-dev/viewtree/internal/errors"
	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/render"
	"github.com/vango-dev/viewtree/pkg/view"
)

// Scenario is a named, scripted sequence of engine operations.
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env *Env) error
}

var scenarios = map[string]Scenario{}

func register(s Scenario) {
	scenarios[s.Name] = s
}

// Scenarios returns all scenarios sorted by name.
func Scenarios() []Scenario {
	list := make([]Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Lookup returns the scenario called name.
func Lookup(name string) (Scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, errors.Newf(errors.CategoryCLI, "unknown scenario %q", name).
			WithSuggestion("Run 'viewtree demo --list' to see available scenarios")
	}
	return s, nil
}

// Env is the world a scenario runs in: a fresh document, the engine mounting
// into it and an element builder bound to that engine.
type Env struct {
	Doc    *dom.Document
	Engine *view.Engine
	El     el.Builder
	Out    io.Writer
}

// NewEnv creates an environment writing its trace to out. Shadow roots are
// mount boundaries unless opts say otherwise.
func NewEnv(out io.Writer, opts ...view.Option) *Env {
	if out == nil {
		out = io.Discard
	}
	opts = append([]view.Option{view.WithShadowBoundaries(true)}, opts...)
	e := view.New(opts...)
	return &Env{
		Doc:    dom.NewDocument(),
		Engine: e,
		El:     el.With(e),
		Out:    out,
	}
}

// Mount appends child to parent through env's engine.
func (env *Env) Mount(parent, child view.View) view.View {
	return env.Engine.Mount(parent, child, nil, false)
}

// MountBefore inserts child before ref through env's engine.
func (env *Env) MountBefore(parent, child, ref view.View) view.View {
	return env.Engine.Mount(parent, child, ref, false)
}

// Unmount detaches child through env's engine.
func (env *Env) Unmount(parent, child view.View) view.View {
	return env.Engine.Unmount(parent, child)
}

// Logf writes one trace line.
func (env *Env) Logf(format string, args ...any) {
	fmt.Fprintf(env.Out, format+"\n", args...)
}

// Step writes a step heading.
func (env *Env) Step(title string) {
	fmt.Fprintf(env.Out, "-- %s\n", title)
}

// Snapshot writes the current body markup.
func (env *Env) Snapshot() {
	env.Logf("   %s", render.InnerHTML(env.Doc.Body()))
}

// Run runs the named scenario in env.
func Run(ctx context.Context, name string, env *Env) error {
	s, err := Lookup(name)
	if err != nil {
		return err
	}
	return s.Run(ctx, env)
}
