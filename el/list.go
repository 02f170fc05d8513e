package el

import (
	"github.com/vango-dev/viewtree/pkg/view"
)

// List creates a view.List rendering into parent, a query string or a view.
func List[T any](parent any, factory view.Factory[T], key view.KeyFunc[T], init any, opts ...view.ListOption) *view.List[T] {
	var p view.View
	switch v := parent.(type) {
	case string:
		p = H(v)
	case view.View:
		p = v
	}
	return view.NewList(p, factory, key, init, opts...)
}

// ExtendList returns a constructor for lists of the same shape.
func ExtendList[T any](query string, factory view.Factory[T], key view.KeyFunc[T], init any, opts ...view.ListOption) func() *view.List[T] {
	return func() *view.List[T] {
		return List(query, factory, key, init, opts...)
	}
}
