package inspect

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/fiber/pkg/fiber"
	"github.com/vango-dev/fiber/pkg/middleware"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 64
)

// Event is one message of the live stream.
type Event struct {
	Type       string  `json:"type"` // "hello" on connect, then "commit"
	Pass       uint64  `json:"pass"`
	Units      int     `json:"units"`
	Deletions  int     `json:"deletions"`
	Subtree    bool    `json:"subtree"`
	Component  string  `json:"component,omitempty"`
	DurationMs float64 `json:"durationMs"`
}

func commitEvent(info fiber.CommitInfo) Event {
	return Event{
		Type:       "commit",
		Pass:       info.Pass,
		Units:      info.Units,
		Deletions:  info.Deletions,
		Subtree:    info.Subtree,
		Component:  info.Component,
		DurationMs: float64(info.Duration) / float64(time.Millisecond),
	}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// stream fans commit events out to WebSocket clients. Slow clients drop
// events rather than block the scheduler.
type stream struct {
	logger  *slog.Logger
	metrics *middleware.Metrics

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

func newStream(logger *slog.Logger, metrics *middleware.Metrics) *stream {
	return &stream{logger: logger, metrics: metrics, clients: make(map[*client]struct{})}
}

func (st *stream) publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	for c := range st.clients {
		select {
		case c.send <- data:
		default:
			st.logger.Debug("inspector: dropped event for slow client", "pass", ev.Pass)
		}
	}
}

// serve registers conn, greets it with hello and blocks until the client
// goes away.
func (st *stream) serve(conn *websocket.Conn, hello Event) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	st.mu.Lock()
	if st.closed {
		st.mu.Unlock()
		_ = conn.Close()
		return
	}
	st.clients[c] = struct{}{}
	st.logger.Debug("inspector: stream client connected", "clients", len(st.clients))
	st.mu.Unlock()
	st.metrics.StreamOpened()
	defer st.metrics.StreamClosed()

	hello.Type = "hello"
	if data, err := json.Marshal(hello); err == nil {
		c.send <- data
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range c.send {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				_ = conn.Close()
				return
			}
		}
	}()

	// The stream is one-way; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	st.mu.Lock()
	delete(st.clients, c)
	close(c.send)
	st.mu.Unlock()

	<-done
	_ = conn.Close()
}

// count returns the number of connected clients.
func (st *stream) count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.clients)
}

// close disconnects every client and refuses new ones.
func (st *stream) close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.closed = true
	for c := range st.clients {
		_ = c.conn.Close()
	}
}
