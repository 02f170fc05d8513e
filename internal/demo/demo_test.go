package demo

import (
	"bytes"
	stderrors "errors"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/viewtree/internal/errors"
	"github.com/vango-dev/viewtree/pkg/render"
	"github.com/vango-dev/viewtree/pkg/view"
)

func runScenario(t *testing.T, name string) []string {
	t.Helper()
	var buf bytes.Buffer
	if err := Run(context.Background(), name, NewEnv(&buf)); err != nil {
		t.Fatalf("Run(%q) error: %v", name, err)
	}
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestLifecycleScenario(t *testing.T) {
	got := runScenario(t, "lifecycle")
	want := []string{
		"-- mount into the document",
		"   hello mount",
		"-- insert a sibling before it",
		"-- move it to the front",
		"   hello remount",
		"   <section><h1>Hello world</h1><p>sibling</p></section>",
		"-- move it to another parent",
		"   hello unmount",
		"   hello mount",
		"-- unmount",
		"   hello unmount",
		"   <section><p>sibling</p></section><aside></aside>",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeScenario(t *testing.T) {
	got := runScenario(t, "tree")
	want := []string{
		"-- build a detached tree",
		"   interest [4 4 4]",
		"-- attach to the document",
		"   app mount",
		"   header mount",
		"   logo mount",
		"   main mount",
		"   item mount",
		"-- mount into a detached shadow root",
		"   shadow mount",
		"-- detach the whole tree",
		"   app unmount",
		"   header unmount",
		"   logo unmount",
		"   main unmount",
		"   item unmount",
	}
	if diff := cmp.Diff(want, got[:len(got)-1]); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestRouterScenario(t *testing.T) {
	got := runScenario(t, "router")
	want := []string{
		"-- route home",
		"   home mount",
		"   banner mount",
		`   <div><div class="banner">welcome</div><main><h1>Home</h1></main></div>`,
		"-- route about",
		"   about mount",
		"   home unmount",
		"   banner unmount",
		"   <div><main><h1>About</h1></main></div>",
		"-- route about",
		"   <div><main><h1>About</h1></main></div>",
		"-- route missing",
		"   about unmount",
		"   <div><main></main></div>",
		"-- route home",
		"   home mount",
		"   banner mount",
		`   <div><div class="banner">welcome</div><main><h1>Home</h1></main></div>`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestReorderScenario(t *testing.T) {
	got := runScenario(t, "reorder")
	trace := strings.Join(got, "\n")

	// Reversing swaps a out by replacement, so it is unmounted and mounted
	// again on top of the five initial rows and f.
	if n := strings.Count(trace, " mount\n"); n != 7 {
		t.Errorf("mounts = %d, want 7", n)
	}
	if n := strings.Count(trace, " unmount"); n != 7 {
		t.Errorf("unmounts = %d, want 7", n)
	}
	for _, want := range []string{
		`<ul><li data-index="0">a</li><li data-index="1">b</li><li data-index="2">c</li><li data-index="3">d</li><li data-index="4">e</li></ul>`,
		`<ul><li data-index="0">e</li><li data-index="1">d</li><li data-index="2">c</li><li data-index="3">b</li><li data-index="4">a</li></ul>`,
		`<ul><li data-index="0">b</li><li data-index="1">d</li><li data-index="2">f</li></ul>`,
	} {
		if !strings.Contains(trace, want) {
			t.Errorf("trace missing snapshot %s", want)
		}
	}
	if got[len(got)-1] != "   <ul></ul>" {
		t.Errorf("final snapshot = %q", got[len(got)-1])
	}
}

func TestVariantsScenario(t *testing.T) {
	got := runScenario(t, "variants")
	trace := strings.Join(got, "\n")

	for _, want := range []string{
		`<div class="entries"><span class="text">intro</span><a class="link">docs</a></div>`,
		`<div class="entries"><a class="link">docs</a><span class="text">outro</span><span class="text">intro</span></div>`,
		"view video not found",
	} {
		if !strings.Contains(trace, want) {
			t.Errorf("trace missing %q:\n%s", want, trace)
		}
	}
	if strings.Contains(trace, "video 4 mount") {
		t.Error("failed update should not mount anything")
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("nope")
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Category != errors.CategoryCLI {
		t.Fatalf("Lookup error = %v, want CLI error", err)
	}
}

func TestScenariosSorted(t *testing.T) {
	var names []string
	for _, s := range Scenarios() {
		names = append(names, s.Name)
	}
	want := []string{"lifecycle", "reorder", "router", "tree", "variants"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Scenarios() mismatch (-want +got):\n%s", diff)
	}
}

func TestRunUsesOwnEngine(t *testing.T) {
	before := view.Default()
	tracked := before.Tracked()
	env := NewEnv(nil)
	if err := Run(context.Background(), "tree", env); err != nil {
		t.Fatal(err)
	}
	if view.Default() != before {
		t.Error("default engine replaced")
	}
	if got := before.Tracked(); got != tracked {
		t.Errorf("default engine tracked %d nodes, want %d", got, tracked)
	}
	if env.Engine.Tracked() == 0 {
		t.Error("scenario engine tracked nothing")
	}
}

func TestTodoApp(t *testing.T) {
	env := NewEnv(nil)
	ctx := context.Background()
	app := NewTodoApp(env, 1, "write", "test")

	if err := app.Mount(ctx); err != nil {
		t.Fatalf("Mount() error: %v", err)
	}
	if err := app.ToggleFirst(ctx); err != nil {
		t.Fatal(err)
	}
	if err := app.Add(ctx, ""); err != nil {
		t.Fatal(err)
	}

	html := render.InnerHTML(env.Doc.Body())
	for _, want := range []string{
		`<li class="done" data-id="1"><input checked type="checkbox"><span class="title">write</span></li>`,
		`<li data-id="3"><input type="checkbox"><span class="title">task 3</span></li>`,
		`<p class="summary">1 of 3 done</p>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %s:\n%s", want, html)
		}
	}

	items := app.Items()
	if err := app.Reverse(ctx); err != nil {
		t.Fatal(err)
	}
	if app.Items()[0].ID != items[2].ID {
		t.Errorf("Reverse() first = %d, want %d", app.Items()[0].ID, items[2].ID)
	}

	if err := app.ClearDone(ctx); err != nil {
		t.Fatal(err)
	}
	if err := app.Shuffle(ctx); err != nil {
		t.Fatal(err)
	}
	if err := app.RemoveFirst(ctx); err != nil {
		t.Fatal(err)
	}
	if len(app.Items()) != 1 {
		t.Errorf("items = %+v, want one left", app.Items())
	}
	if !strings.Contains(render.InnerHTML(env.Doc.Body()), "0 of 1 done") {
		t.Errorf("summary not updated: %s", render.InnerHTML(env.Doc.Body()))
	}
}
