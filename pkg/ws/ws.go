// Package ws implements the live feed socket on gorilla/websocket.
//
// The server only pushes; anything a client writes besides control frames
// is discarded. A single hub fans every published event out to all
// connected subscribers as a JSON frame:
//
//	hub := ws.NewHub()
//	go hub.Run()
//	hub.Publish("post.created", postView)
package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shashiranjanraj/bazaar/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default — restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// Frame is the JSON envelope pushed to subscribers.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// subscriber is one connected feed client.
type subscriber struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// readPump drains the connection so pongs and close frames are processed.
// Client payloads are ignored.
func (s *subscriber) readPump() {
	defer func() {
		s.hub.unregister <- s
		s.conn.Close()
	}()
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			return
		}
	}
}

func (s *subscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub tracks feed subscribers and fans events out to all of them.
type Hub struct {
	subscribers map[*subscriber]bool
	broadcast   chan []byte
	register    chan *subscriber
	unregister  chan *subscriber
}

// NewHub creates a hub. Call hub.Run() in a goroutine at startup.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]bool),
		broadcast:   make(chan []byte, 256),
		register:    make(chan *subscriber),
		unregister:  make(chan *subscriber),
	}
}

// Run starts the hub event loop. Must be run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.subscribers[sub] = true
			logger.Info("ws: subscriber connected", "total", len(h.subscribers))

		case sub := <-h.unregister:
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.send)
				logger.Info("ws: subscriber disconnected", "total", len(h.subscribers))
			}

		case msg := <-h.broadcast:
			for sub := range h.subscribers {
				select {
				case sub.send <- msg:
				default:
					close(sub.send)
					delete(h.subscribers, sub)
				}
			}
		}
	}
}

// Publish marshals a Frame and queues it for every subscriber. A slow or
// full hub drops the frame rather than blocking the caller.
func (h *Hub) Publish(event string, data any) {
	raw, err := json.Marshal(Frame{Event: event, Data: data})
	if err != nil {
		logger.Error("ws: marshal frame", "event", event, "error", err)
		return
	}
	select {
	case h.broadcast <- raw:
	default:
		logger.Warn("ws: broadcast buffer full, frame dropped", "event", event)
	}
}

// SubscriberCount returns the number of currently connected subscribers.
func (h *Hub) SubscriberCount() int { return len(h.subscribers) }

// Upgrade upgrades an HTTP connection to a WebSocket and registers the
// resulting subscriber with the given hub.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws: upgrade failed", "error", err)
		return
	}
	sub := &subscriber{hub: hub, conn: conn, send: make(chan []byte, 256)}
	hub.register <- sub
	go sub.writePump()
	go sub.readPump()
}
