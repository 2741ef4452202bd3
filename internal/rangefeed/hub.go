// Package rangefeed streams the dashboard range over websockets.
//
// Every connected client receives the current range on connect and after
// each change. A client may send a "set" frame to change the range, which
// reaches every panel attached to the dashboard.
package rangefeed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/wandb/wandb/timeline/internal/dashboard"
	"github.com/wandb/wandb/timeline/internal/observability"
	"github.com/wandb/wandb/timeline/internal/timerange"
)

// Frame types.
const (
	TypeRange = "range"
	TypeSet   = "set"
	TypeError = "error"
)

// Message is the JSON frame exchanged with clients.
type Message struct {
	Type  string `json:"type"`
	From  int64  `json:"from,omitempty"`
	To    int64  `json:"to,omitempty"`
	Error string `json:"error,omitempty"`
}

// Hub serves the feed for one dashboard.
//
// Implements http.Handler.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	closed  bool

	dashboard   *dashboard.Dashboard
	upgrader    websocket.Upgrader
	unsubscribe func()
	logger      *observability.CoreLogger
}

func NewHub(dash *dashboard.Dashboard, logger *observability.CoreLogger) *Hub {
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	h := &Hub{
		clients:   make(map[*Client]struct{}),
		dashboard: dash,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
	h.unsubscribe = dash.Subscribe(h.broadcast)
	return h
}

// ServeHTTP upgrades the request and runs the client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("rangefeed: upgrade failed", "error", err)
		return
	}

	var c *Client
	c = NewClient(conn,
		WithLogger(h.logger),
		WithMessageHandler(func(data []byte) error { return h.handleMessage(c, data) }),
		WithCloseHandler(func() { h.remove(c) }),
	)

	if !h.add(c) {
		c.Close()
		_ = conn.Close()
		return
	}
	h.logger.Debug("rangefeed: client connected", "remote", r.RemoteAddr)

	c.Send(encode(rangeMessage(h.dashboard.TimeRange())))
	go c.WritePump()
	c.ReadPump()
}

func (h *Hub) add(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// handleMessage applies a "set" frame to the dashboard. Invalid frames are
// answered with an error frame.
func (h *Hub) handleMessage(c *Client, data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return h.replyError(c, fmt.Errorf("rangefeed: bad frame: %v", err))
	}
	if msg.Type != TypeSet {
		return h.replyError(c, fmt.Errorf("rangefeed: unknown frame type %q", msg.Type))
	}

	if err := h.dashboard.TimeRangeChanged(timerange.New(msg.From, msg.To)); err != nil {
		return h.replyError(c, err)
	}
	return nil
}

func (h *Hub) replyError(c *Client, err error) error {
	c.Send(encode(Message{Type: TypeError, Error: err.Error()}))
	return err
}

// broadcast sends r to every client.
func (h *Hub) broadcast(r timerange.TimeRange) {
	frame := encode(rangeMessage(r))

	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.Send(frame)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and detaches from the dashboard.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()

	h.unsubscribe()
	for c := range clients {
		c.Close()
	}
}

func rangeMessage(r timerange.TimeRange) Message {
	return Message{Type: TypeRange, From: r.From, To: r.To}
}

func encode(msg Message) []byte {
	data, _ := json.Marshal(msg)
	return data
}
