package el

import (
	"fmt"

	"github.com/vango-dev/viewtree/internal/errors"
	"github.com/vango-dev/viewtree/pkg/view"
)

// ViewFactory returns a list item factory that picks the variant named by
// the key field of each item.
func ViewFactory[T any](variants map[string]view.Factory[T], key string) (view.Factory[T], error) {
	if variants == nil {
		return nil, errors.New(errors.CodeEmptyVariants)
	}
	if key == "" {
		return nil, errors.New(errors.CodeEmptyKey)
	}
	discriminant := view.PropKey[T](key)

	return func(init any, item T, i int, data []T) (view.View, error) {
		name := fmt.Sprint(discriminant(item))
		factory, ok := variants[name]
		if !ok || factory == nil {
			return nil, errors.New(errors.CodeVariantNotFound).WithDetailf("view %s not found", name)
		}
		return factory(init, item, i, data)
	}, nil
}
