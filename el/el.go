package el

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/vango-dev/viewtree/internal/errors"
	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/view"
)

// Attrs sets attributes when passed as an argument. Keys "style", "dataset"
// and "xlink" take maps; "on..." keys take listeners.
type Attrs map[string]any

// Style sets style properties when passed as an argument.
type Style map[string]any

// Middleware receives the element under construction.
type Middleware func(*dom.Node)

// Constructor builds a view from construction arguments.
type Constructor func(args ...any) view.View

// Updater is implemented by views refreshed by Place and Router.
type Updater interface {
	Update(data any)
}

// Builder creates elements whose view arguments are mounted through one
// engine. The zero Builder uses view.Default.
type Builder struct {
	engine *view.Engine
}

// With returns a Builder mounting through e.
func With(e *view.Engine) Builder {
	return Builder{engine: e}
}

// Engine returns the engine b mounts through.
func (b Builder) Engine() *view.Engine {
	if b.engine == nil {
		return view.Default()
	}
	return b.engine
}

// H creates an HTML element from query and applies args to it.
func H(query string, args ...any) *dom.Node {
	return Builder{}.H(query, args...)
}

// HTML is an alias of H.
func HTML(query string, args ...any) *dom.Node {
	return Builder{}.H(query, args...)
}

// SVG creates an element in the SVG namespace. An empty tag defaults to svg.
func SVG(query string, args ...any) *dom.Node {
	return Builder{}.SVG(query, args...)
}

// New builds a view from a query string or a Constructor. Constructors get
// args and the args are then applied to the constructed view's element.
func New(query any, args ...any) (view.View, error) {
	return Builder{}.New(query, args...)
}

// NewSVG is New for the SVG namespace.
func NewSVG(query any, args ...any) (view.View, error) {
	return Builder{}.NewSVG(query, args...)
}

// Extend returns a constructor for elements of query with args preset.
func Extend(query string, args ...any) func(args ...any) *dom.Node {
	return Builder{}.Extend(query, args...)
}

// ExtendSVG is Extend for the SVG namespace.
func ExtendSVG(query string, args ...any) func(args ...any) *dom.Node {
	return Builder{}.ExtendSVG(query, args...)
}

// H is the package-level H mounting through b's engine.
func (b Builder) H(query string, args ...any) *dom.Node {
	tag, id, class := parseQuery(query, "div")
	n := dom.NewElement(tag)
	setQueryAttrs(n, id, class)
	b.parseArgs(n, args, true)
	return n
}

// HTML is an alias of H.
func (b Builder) HTML(query string, args ...any) *dom.Node {
	return b.H(query, args...)
}

// SVG is the package-level SVG mounting through b's engine.
func (b Builder) SVG(query string, args ...any) *dom.Node {
	tag, id, class := parseQuery(query, "svg")
	n := dom.NewElementNS(dom.NamespaceSVG, tag)
	setQueryAttrs(n, id, class)
	b.parseArgs(n, args, true)
	return n
}

// New is the package-level New mounting through b's engine.
func (b Builder) New(query any, args ...any) (view.View, error) {
	return b.build(query, args, b.H)
}

// NewSVG is the package-level NewSVG mounting through b's engine.
func (b Builder) NewSVG(query any, args ...any) (view.View, error) {
	return b.build(query, args, b.SVG)
}

func (b Builder) build(query any, args []any, create func(string, ...any) *dom.Node) (view.View, error) {
	var ctor Constructor
	switch q := query.(type) {
	case string:
		return create(q, args...), nil
	case Constructor:
		ctor = q
	case func(...any) view.View:
		ctor = q
	default:
		err := errors.New(errors.CodeMissingQuery)
		if q != nil {
			err = err.WithDetailf("unsupported query type %T", q)
		}
		return nil, err
	}

	v := ctor(args...)
	node, ok := view.Resolve(v).(*dom.Node)
	if !ok || node == nil {
		return nil, errors.New(errors.CodeMissingQuery).WithDetail("constructor returned no element")
	}
	b.parseArgs(node, args, true)
	return v, nil
}

// Extend is the package-level Extend mounting through b's engine.
func (b Builder) Extend(query string, args ...any) func(args ...any) *dom.Node {
	preset := append([]any(nil), args...)
	return func(more ...any) *dom.Node {
		return b.H(query, append(append([]any(nil), preset...), more...)...)
	}
}

// ExtendSVG is Extend for the SVG namespace.
func (b Builder) ExtendSVG(query string, args ...any) func(args ...any) *dom.Node {
	preset := append([]any(nil), args...)
	return func(more ...any) *dom.Node {
		return b.SVG(query, append(append([]any(nil), preset...), more...)...)
	}
}

// Text creates a text node.
func Text(s string) *dom.Node {
	return dom.NewText(s)
}

// Ref stores v in *dst and returns it, for keeping handles to children built
// inline.
func Ref[T view.View](dst *T, v T) T {
	*dst = v
	return v
}

// parseQuery splits "tag.a.b#id" into its parts.
func parseQuery(query, defaultTag string) (tag, id, class string) {
	var classes []string
	rest := query
	i := strings.IndexAny(rest, ".#")
	if i < 0 {
		tag, rest = rest, ""
	} else {
		tag, rest = rest[:i], rest[i:]
	}
	for rest != "" {
		sep := rest[0]
		rest = rest[1:]
		part := rest
		if j := strings.IndexAny(rest, ".#"); j >= 0 {
			part, rest = rest[:j], rest[j:]
		} else {
			rest = ""
		}
		if sep == '.' {
			if part != "" {
				classes = append(classes, part)
			}
		} else {
			id = part
		}
	}
	if tag == "" {
		tag = defaultTag
	}
	return tag, id, strings.Join(classes, " ")
}

func setQueryAttrs(n *dom.Node, id, class string) {
	if id != "" {
		n.SetAttribute("id", id)
	}
	if class != "" {
		n.SetAttribute("class", class)
	}
}

// parseArgs applies construction arguments to n. initial makes class values
// merge with classes from the query.
func (b Builder) parseArgs(n *dom.Node, args []any, initial bool) {
	for _, arg := range args {
		switch a := arg.(type) {
		case nil, bool:
			continue
		case string:
			n.Append(dom.NewText(a))
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			n.Append(dom.NewText(fmt.Sprint(a)))
		case Middleware:
			a(n)
		case func(*dom.Node):
			a(n)
		case Attrs:
			setAttrs(n, a, initial)
		case map[string]any:
			setAttrs(n, a, initial)
		case Style:
			setStyles(n, a)
		case view.View:
			if view.Resolve(a) != nil {
				b.Engine().Mount(n, a, nil, false)
			}
		case []any:
			b.parseArgs(n, a, initial)
		default:
			rv := reflect.ValueOf(arg)
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				continue
			}
			items := make([]any, rv.Len())
			for i := range items {
				items[i] = rv.Index(i).Interface()
			}
			b.parseArgs(n, items, initial)
		}
	}
}
