// Package el builds dom trees and views from terse query strings.
//
// H parses "tag.class#id" queries and applies its remaining arguments to the
// new element: strings and numbers become text, Attrs set attributes, views
// are mounted through the view engine and slices are flattened.
//
// Typical usage:
//
//	import . "github.com/vango-dev/viewtree/el"
//
//	card := H("section.card#main",
//	    H("h1", "Hello"),
//	    Attrs{"data-id": 7},
//	    OnClick(func(e *dom.Event) { ... }),
//	)
//
// View arguments are mounted through view.Default. To mount through another
// engine build with With(engine), and pass WithEngine to Place and Router.
//
// Place, Router and ViewFactory cover the common cases of toggling, switching
// and choosing views at runtime.
package el
