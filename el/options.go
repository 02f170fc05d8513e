package el

import "github.com/vango-dev/viewtree/pkg/view"

// Option configures a Place or Router.
type Option func(*options)

type options struct {
	engine *view.Engine
}

// WithEngine makes a Place or Router mount through e instead of the default
// engine.
func WithEngine(e *view.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

func builderFor(opts []Option) Builder {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return Builder{engine: o.engine}
}
