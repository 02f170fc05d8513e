package view

import (
	"context"

	"github.com/vango-dev/viewtree/internal/errors"
)

// Factory creates the item view for item at index. init is the shared data
// given when the list was constructed.
type Factory[T any] func(init any, item T, index int, data []T) (View, error)

// KeyFunc returns the reconciliation key of an item. Keys must be comparable.
type KeyFunc[T any] func(item T) any

// ItemUpdater is implemented by item views that refresh from their item.
type ItemUpdater[T any] interface {
	Update(ctx context.Context, item T, index int, data []T)
}

// ListPool owns the item views of a list, keyed or positional. It creates
// views lazily and reuses them across updates; it never destroys them.
type ListPool[T any] struct {
	factory Factory[T]
	key     KeyFunc[T]
	init    any
	engine  *Engine

	views     []View
	keys      []any
	lookup    map[any]View
	oldViews  []View
	oldKeys   []any
	oldLookup map[any]View
	created   int
}

// NewListPool creates a pool. A nil key makes the pool positional.
func NewListPool[T any](factory Factory[T], key KeyFunc[T], init any) *ListPool[T] {
	return &ListPool[T]{
		factory:   factory,
		key:       key,
		init:      init,
		engine:    Default(),
		lookup:    make(map[any]View),
		oldLookup: make(map[any]View),
	}
}

// Keyed reports whether the pool matches views by key.
func (p *ListPool[T]) Keyed() bool {
	return p.key != nil
}

// Views returns the item views of the last update, in data order.
func (p *ListPool[T]) Views() []View {
	return p.views
}

// OldViews returns the item views of the update before the last one.
func (p *ListPool[T]) OldViews() []View {
	return p.oldViews
}

// Lookup returns the view registered under key by the last update.
func (p *ListPool[T]) Lookup(key any) (View, bool) {
	v, ok := p.lookup[key]
	return v, ok
}

// Created returns how many views the last update constructed.
func (p *ListPool[T]) Created() int {
	return p.created
}

// Removed returns the views of the previous update that the last update no
// longer uses, in their previous order.
func (p *ListPool[T]) Removed() []View {
	var removed []View
	if p.Keyed() {
		for i, v := range p.oldViews {
			if _, ok := p.lookup[p.oldKeys[i]]; !ok {
				removed = append(removed, v)
			}
		}
		return removed
	}
	if len(p.oldViews) > len(p.views) {
		removed = append(removed, p.oldViews[len(p.views):]...)
	}
	return removed
}

// Update matches data against the current views, creating views for new keys
// or positions and calling ItemUpdater on every view. A factory error aborts
// the pass; the pool state is left as it was before the call.
func (p *ListPool[T]) Update(ctx context.Context, data []T) error {
	keyed := p.Keyed()
	views := make([]View, len(data))
	var (
		keys   []any
		lookup map[any]View
	)
	if keyed {
		keys = make([]any, len(data))
		lookup = make(map[any]View, len(data))
	}

	created := 0
	for i, item := range data {
		var (
			v   View
			key any
		)
		if keyed {
			key = p.key(item)
			v = p.lookup[key]
		} else if i < len(p.views) {
			v = p.views[i]
		}
		if v == nil {
			nv, err := p.factory(p.init, item, i, data)
			if err != nil {
				return errors.New(errors.CodeItemFactory).
					WithDetailf("item %d: %v", i, err).
					Wrap(err)
			}
			if isNil(nv) {
				return errors.New(errors.CodeNilItemView).WithDetailf("item %d", i)
			}
			v = nv
			created++
		}

		if u, ok := v.(ItemUpdater[T]); ok {
			u.Update(ctx, item, i, data)
		}
		if node := Resolve(v); node != nil {
			p.engine.bind(v, node)
		}

		views[i] = v
		if keyed {
			keys[i] = key
			lookup[key] = v
		}
	}

	p.oldViews, p.oldKeys, p.oldLookup = p.views, p.keys, p.lookup
	p.views, p.keys, p.created = views, keys, created
	if keyed {
		p.lookup = lookup
	}
	return nil
}
