// Package live pushes store snapshots to WebSocket clients so a UI can
// re-render whenever the recipe state changes.
package live

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"recipebox/internal/store"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

const (
	EventState = "state"
	EventPong  = "pong"
	EventError = "error"
)

// Event is pushed to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Source is what the hub observes.
type Source interface {
	Snapshot() store.Snapshot
	Subscribe(fn func(store.Snapshot)) (unsubscribe func())
}

// connection represents a single WebSocket client. state holds at most the
// newest undelivered snapshot; send carries direct replies.
type connection struct {
	conn  *websocket.Conn
	send  chan []byte
	state chan []byte
}

func newConnection(conn *websocket.Conn) *connection {
	return &connection{
		conn:  conn,
		send:  make(chan []byte, 16),
		state: make(chan []byte, 1),
	}
}

// offer replaces any pending snapshot with data. Caller holds h.mu, which
// makes it the only writer of state.
func (c *connection) offer(data []byte) {
	select {
	case <-c.state:
	default:
	}
	c.state <- data
}

// Hub fans store snapshots out to all connected clients.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
	last        []byte
	lastVersion uint64
	closed      bool

	unsubscribe func()
	log         *zap.Logger
}

// NewHub subscribes to src and primes the hub with its current state.
// Subscribing first means a change racing the prime is still delivered;
// the older of the two is dropped by version.
func NewHub(src Source, log *zap.Logger) *Hub {
	h := &Hub{
		connections: make(map[*connection]struct{}),
		log:         log,
	}
	h.unsubscribe = src.Subscribe(h.Publish)
	h.Publish(src.Snapshot())
	return h
}

// Publish encodes snap and hands it to every client. Snapshots older than
// the last published one are dropped. A client that has not caught up only
// keeps the newest one. Never blocks.
func (h *Hub) Publish(snap store.Snapshot) {
	data, err := json.Marshal(Event{Type: EventState, Payload: snap})
	if err != nil {
		h.log.Error("encode snapshot", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.last != nil && snap.Version <= h.lastVersion {
		return
	}
	h.last = data
	h.lastVersion = snap.Version

	for c := range h.connections {
		c.offer(data)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close detaches from the store and disconnects every client.
func (h *Hub) Close() {
	h.unsubscribe()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.connections {
		delete(h.connections, c)
		close(c.send)
	}
}

// ServeWS registers conn, sends it the current state and blocks until the
// client goes away.
func (h *Hub) ServeWS(conn *websocket.Conn) {
	c := newConnection(conn)
	if !h.register(c) {
		conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) register(c *connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.connections[c] = struct{}{}
	if h.last != nil {
		c.offer(h.last)
	}
	return true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// enqueue sends a direct reply to one client unless the hub already closed
// its channel.
func (h *Hub) enqueue(c *connection, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.connections[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read failed", zap.Error(err))
			}
			return
		}

		var event struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &event); err != nil {
			h.enqueue(c, Event{Type: EventError, Payload: "invalid json"})
			continue
		}

		switch event.Type {
		case "ping":
			h.enqueue(c, Event{Type: EventPong})
		default:
			h.enqueue(c, Event{Type: EventError, Payload: "unknown message type: " + event.Type})
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case msg := <-c.state:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
