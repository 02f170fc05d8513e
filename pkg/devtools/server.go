package devtools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/render"
	"github.com/vango-dev/viewtree/pkg/view"
)

// EventsPath is the WebSocket endpoint streaming engine events.
const EventsPath = "/_viewtree/events"

// Action mutates the tree in response to POST /api/{action}.
type Action func(ctx context.Context, doc *dom.Document, e *view.Engine) error

// ServerOptions configures the devtools server.
type ServerOptions struct {
	// Logger receives request and lifecycle logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Gatherer backs GET /metrics. The route is not registered when nil.
	Gatherer prometheus.Gatherer

	// Pretty renders GET / with indentation.
	Pretty bool

	// ShutdownTimeout bounds graceful shutdown. Default: 5s.
	ShutdownTimeout time.Duration
}

// Server is the devtools HTTP server.
type Server struct {
	tree     *Tree
	hub      *Hub
	options  ServerOptions
	renderer *render.Renderer
	router   chi.Router

	mu      sync.RWMutex
	actions map[string]Action
}

// NewServer creates a devtools server for tree. Register the returned
// server's Hub with the engine to stream events.
func NewServer(tree *Tree, options ServerOptions) *Server {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.ShutdownTimeout <= 0 {
		options.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{
		tree:    tree,
		hub:     NewHub(),
		options: options,
		renderer: render.NewRenderer(render.RendererConfig{
			Pretty:  options.Pretty,
			Doctype: true,
		}),
		actions: make(map[string]Action),
	}
	s.router = s.routes()
	return s
}

// Hub returns the event hub. It implements view.Observer.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handle registers an action under name, replacing any previous one.
func (s *Server) Handle(name string, action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[name] = action
}

// Actions returns the registered action names, sorted.
func (s *Server) Actions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.actions))
	for name := range s.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleDocument)
	r.Get("/api/tree", s.handleTree)
	r.Get("/api/actions", s.handleActions)
	r.Post("/api/{action}", s.handleAction)
	r.Get(EventsPath, s.hub.HandleWebSocket)
	if s.options.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.options.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.options.Logger.Debug("devtools request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	var html string
	err := s.tree.Do(func(doc *dom.Document, _ *view.Engine) error {
		var err error
		html, err = s.renderer.RenderToString(doc)
		return err
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
	w.Write([]byte(clientScript))
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	var info NodeInfo
	s.tree.Do(func(doc *dom.Document, e *view.Engine) error {
		info = Inspect(e, doc.Root())
		return nil
	})
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"actions": s.Actions()})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "action")
	s.mu.RLock()
	action, ok := s.actions[name]
	s.mu.RUnlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown action " + name})
		return
	}

	err := s.tree.Do(func(doc *dom.Document, e *view.Engine) error {
		return action(r.Context(), doc, e)
	})
	if err != nil {
		s.options.Logger.Warn("devtools action failed", "action", name, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	s.options.Logger.Info("devtools action", "action", name, "clients", s.hub.ClientCount())
	writeJSON(w, http.StatusOK, map[string]string{"action": name})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.options.Logger.Info("devtools listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.options.ShutdownTimeout)
	defer cancel()
	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

const clientScript = `<script>
(function() {
  var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
  var ws = new WebSocket(proto + '//' + location.host + '` + EventsPath + `');
  ws.onmessage = function(e) {
    var ev = JSON.parse(e.data);
    console.log('[viewtree]', ev.kind, ev.view || '', ev.node || '');
    if (ev.kind === 'reconcile') {
      fetch('/').then(function(r) { return r.text(); }).then(function(html) {
        var doc = new DOMParser().parseFromString(html, 'text/html');
        document.body.replaceWith(doc.body);
      });
    }
  };
})();
</script>
`
