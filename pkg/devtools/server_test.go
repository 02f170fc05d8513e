package devtools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/view"
)

type badge struct {
	el *dom.Node
}

func newBadge(text string) *badge {
	el := dom.NewElement("span")
	el.SetTextContent(text)
	return &badge{el: el}
}

func (b *badge) El() view.View { return b.el }
func (b *badge) OnMount()      {}
func (b *badge) OnUnmount()    {}

func newTestServer(t *testing.T, opts ServerOptions) (*Server, *Tree, *view.Engine) {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	doc := dom.NewDocument()
	tree := &Tree{doc: doc}
	s := NewServer(tree, opts)
	engine := view.New(view.WithObserver(s.Hub()))
	tree.engine = engine
	return s, tree, engine
}

func TestServer_Document(t *testing.T) {
	s, tree, engine := newTestServer(t, ServerOptions{})
	tree.Do(func(doc *dom.Document, _ *view.Engine) error {
		engine.Mount(doc.Body(), newBadge("hello"), nil, false)
		return nil
	})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", "<span>hello</span>", EventsPath} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestServer_Tree(t *testing.T) {
	s, tree, engine := newTestServer(t, ServerOptions{})
	tree.Do(func(doc *dom.Document, _ *view.Engine) error {
		engine.Mount(doc.Body(), newBadge("a"), nil, false)
		return nil
	})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tree", nil))

	var root NodeInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &root); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if root.Type != "Document" {
		t.Fatalf("root type = %q, want Document", root.Type)
	}
	if root.Interest != [3]int{1, 0, 1} {
		t.Errorf("root interest = %v, want [1 0 1]", root.Interest)
	}

	html := root.Children[0]
	body := html.Children[1]
	if body.Tag != "body" || len(body.Children) != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
	span := body.Children[0]
	if !span.Mounted {
		t.Error("span should be mounted")
	}
	if span.View != "*devtools.badge" {
		t.Errorf("span view = %q", span.View)
	}
	if span.Children[0].Text != "a" {
		t.Errorf("text = %q, want a", span.Children[0].Text)
	}
}

func TestServer_Actions(t *testing.T) {
	s, _, _ := newTestServer(t, ServerOptions{})
	s.Handle("add", func(_ context.Context, doc *dom.Document, e *view.Engine) error {
		e.Mount(doc.Body(), newBadge("added"), nil, false)
		return nil
	})
	s.Handle("fail", func(context.Context, *dom.Document, *view.Engine) error {
		return io.ErrUnexpectedEOF
	})

	tests := []struct {
		path string
		code int
	}{
		{"/api/add", http.StatusOK},
		{"/api/fail", http.StatusUnprocessableEntity},
		{"/api/missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, nil))
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
		})
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/actions", nil))
	if got := strings.TrimSpace(rec.Body.String()); got != `{"actions":["add","fail"]}` {
		t.Errorf("actions = %s", got)
	}
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "devtools_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	s, _, _ := newTestServer(t, ServerOptions{Gatherer: reg})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "devtools_test_total 1") {
		t.Errorf("metrics output missing counter:\n%s", rec.Body.String())
	}

	s, _, _ = newTestServer(t, ServerOptions{})
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status without gatherer = %d, want 404", rec.Code)
	}
}

func TestServer_EventStream(t *testing.T) {
	s, _, _ := newTestServer(t, ServerOptions{})
	b := newBadge("live")
	s.Handle("add", func(_ context.Context, doc *dom.Document, e *view.Engine) error {
		e.Mount(doc.Body(), b, nil, false)
		return nil
	})

	ts := httptest.NewServer(s)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + EventsPath
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for s.Hub().ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Post(ts.URL+"/api/add", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg EventMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Kind != "mount" || msg.View != "*devtools.badge" || msg.Node != "<span>" {
		t.Errorf("message = %+v", msg)
	}
}

func TestServer_ListenAndServeShutdown(t *testing.T) {
	s, _, _ := newTestServer(t, ServerOptions{ShutdownTimeout: time.Second})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/actions")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewEventMessage(t *testing.T) {
	n := dom.NewElement("ul")
	msg := NewEventMessage(view.Event{
		Kind:     view.EventReconcile,
		Node:     n,
		Size:     3,
		Created:  1,
		Duration: 1500 * time.Microsecond,
	})
	if msg.Kind != "reconcile" || msg.Node != "<ul>" || msg.Size != 3 || msg.Created != 1 {
		t.Errorf("message = %+v", msg)
	}
	if msg.DurationMS != 1.5 {
		t.Errorf("DurationMS = %v, want 1.5", msg.DurationMS)
	}
}

func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	s, _, _ := newTestServer(t, ServerOptions{})
	ts := httptest.NewServer(s)
	defer ts.Close()

	// The client never reads, so its socket buffers fill up.
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + EventsPath
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	hub := s.Hub()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	big := EventMessage{Kind: "mount", View: strings.Repeat("x", 64<<10)}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			hub.broadcast(big)
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("broadcast blocked on a client that does not read")
	}

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("ClientCount() = %d, want the slow client dropped", got)
	}
}
