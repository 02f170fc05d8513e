package view

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vango-dev/viewtree/pkg/view"

// List keeps the children of a node in sync with a data slice.
type List[T any] struct {
	el     Node
	pool   *ListPool[T]
	engine *Engine
	tracer trace.Tracer
	views  []View
}

// ListOption configures a List.
type ListOption func(*listConfig)

type listConfig struct {
	engine *Engine
	tracer trace.Tracer
}

// WithEngine makes the list mount through e instead of the default engine.
func WithEngine(e *Engine) ListOption {
	return func(c *listConfig) {
		if e != nil {
			c.engine = e
		}
	}
}

// WithTracer sets the tracer used for update spans.
// Default: the global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) ListOption {
	return func(c *listConfig) {
		c.tracer = t
	}
}

// NewList creates a list rendering into parent's node. A nil key makes the
// list positional.
func NewList[T any](parent View, factory Factory[T], key KeyFunc[T], init any, opts ...ListOption) *List[T] {
	node := Resolve(parent)
	if node == nil {
		panic("view: list of nil parent")
	}
	cfg := listConfig{engine: Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.Tracer(tracerName)
	}

	pool := NewListPool(factory, key, init)
	pool.engine = cfg.engine
	return &List[T]{
		el:     node,
		pool:   pool,
		engine: cfg.engine,
		tracer: cfg.tracer,
	}
}

// El implements View.
func (l *List[T]) El() View {
	return l.el
}

// Views returns the current item views in order.
func (l *List[T]) Views() []View {
	return l.views
}

// Pool returns the list's view pool.
func (l *List[T]) Pool() *ListPool[T] {
	return l.pool
}

// Update reconciles the list's children with data. Views whose key (or
// position, for positional lists) disappeared are unmounted and destroyed:
// their side state is released. The rest are reordered with as few moves as
// possible.
func (l *List[T]) Update(ctx context.Context, data []T) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	ctx, span := l.tracer.Start(ctx, "viewtree.List.Update",
		trace.WithAttributes(
			attribute.Int("viewtree.list.size", len(data)),
			attribute.Bool("viewtree.list.keyed", l.pool.Keyed()),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := l.pool.Update(ctx, data); err != nil {
		return err
	}

	removed := l.pool.Removed()
	for _, v := range removed {
		node := Resolve(v)
		l.engine.clearIndex(node)
		l.engine.Unmount(l, v)
		l.engine.release(node)
	}

	views := l.pool.Views()
	for i, v := range views {
		l.engine.setIndex(Resolve(v), i)
	}
	l.engine.SetChildren(l, views)
	l.views = views

	span.SetAttributes(
		attribute.Int("viewtree.list.created", l.pool.Created()),
		attribute.Int("viewtree.list.removed", len(removed)),
	)
	l.engine.emit(Event{
		Kind:     EventReconcile,
		View:     l,
		Node:     l.el,
		Size:     len(views),
		Created:  l.pool.Created(),
		Removed:  len(removed),
		Duration: time.Since(start),
	})
	return nil
}
