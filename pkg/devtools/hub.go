package devtools

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/viewtree/pkg/view"
)

// EventMessage is sent to browsers via WebSocket for every engine event.
type EventMessage struct {
	Kind       string  `json:"kind"`
	View       string  `json:"view,omitempty"`
	Node       string  `json:"node,omitempty"`
	Size       int     `json:"size,omitempty"`
	Created    int     `json:"created,omitempty"`
	Removed    int     `json:"removed,omitempty"`
	DurationMS float64 `json:"durationMs,omitempty"`
}

// NewEventMessage converts an engine event.
func NewEventMessage(ev view.Event) EventMessage {
	msg := EventMessage{
		Kind:    ev.Kind.String(),
		Size:    ev.Size,
		Created: ev.Created,
		Removed: ev.Removed,
	}
	if ev.View != nil {
		msg.View = fmt.Sprintf("%T", ev.View)
	}
	if s, ok := ev.Node.(fmt.Stringer); ok {
		msg.Node = s.String()
	}
	if ev.Kind == view.EventReconcile {
		msg.DurationMS = float64(ev.Duration.Microseconds()) / 1000
	}
	return msg
}

const (
	// sendBuffer is how many messages may queue for one client before the
	// hub drops it.
	sendBuffer = 256
	writeWait  = 10 * time.Second
)

// client is one WebSocket connection with its outgoing queue. Only the
// client's write loop writes to conn.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub manages WebSocket connections receiving engine events. It implements
// view.Observer. Observe never blocks on the network: each client is fed
// from its own queue and a client that falls behind is disconnected.
type Hub struct {
	clients  map[*client]struct{}
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// NewHub creates a new event hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in dev
			},
		},
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	go h.writeLoop(c)

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
}

// writeLoop drains c's queue. It closes the connection when the queue is
// closed or a write fails.
func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(c)
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}

// remove unregisters c and closes its queue. It is safe to call repeatedly.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Observe implements view.Observer.
func (h *Hub) Observe(ev view.Event) {
	h.broadcast(NewEventMessage(ev))
}

// broadcast queues a message for every connected client. Clients whose
// queue is full are dropped.
func (h *Hub) broadcast(msg EventMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.remove(c)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		c.conn.Close()
	}
}
