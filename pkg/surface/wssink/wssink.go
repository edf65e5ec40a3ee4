// Package wssink broadcasts applied frames to WebSocket clients.
package wssink

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/go-drift/motion/pkg/config"
	"github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/surface"
)

// WriteTimeout bounds each frame write to a client.
const WriteTimeout = 200 * time.Millisecond

// Hub is a surface.Sink that fans frames out to every connected client.
// Clients that fail a write are dropped.
type Hub struct {
	// writeMu serializes writes; a connection allows one writer at a time.
	writeMu  sync.Mutex
	mu       sync.RWMutex
	clients  map[*websocket.Conn]bool
	codec    surface.Codec
	upgrader websocket.Upgrader

	// last frame per element, replayed to new clients
	last map[string][]byte
}

// NewHub returns a hub with no clients.
func NewHub() *Hub {
	return &Hub{
		clients:  map[*websocket.Conn]bool{},
		codec:    surface.DefaultCodec,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		last:     map[string][]byte{},
	}
}

// ServeHTTP upgrades the request and registers the client. Incoming
// messages are read and discarded so that close frames are noticed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("upgrade")
		return
	}

	h.writeMu.Lock()
	h.mu.Lock()
	h.clients[conn] = true
	for _, b := range h.last {
		conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
		_ = conn.WriteMessage(websocket.TextMessage, b)
	}
	h.mu.Unlock()
	h.writeMu.Unlock()

	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish implements surface.Sink.
func (h *Hub) Publish(f surface.Frame) error {
	b, err := h.codec.Encode(f)
	if err != nil {
		return err
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	h.mu.Lock()
	h.last[f.Element] = b
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(WriteTimeout))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Str("element", f.Element).Msg("write frame")
			h.drop(c)
		}
	}
	return nil
}

// Close disconnects every client.
func (h *Hub) Close() error {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	h.mu.Lock()
	conns := h.clients
	h.clients = map[*websocket.Conn]bool{}
	h.mu.Unlock()

	for c := range conns {
		c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(WriteTimeout))
		c.Close()
	}
	return nil
}

// Server serves a Hub on the address in a config.WebSocketSink.
type Server struct {
	*Hub
	srv *http.Server
}

// Listen starts serving in the background.
func Listen(cfg config.WebSocketSink) *Server {
	path := cfg.Path
	if path == "" {
		path = "/frames"
	}
	hub := NewHub()
	mux := http.NewServeMux()
	mux.Handle(path, hub)

	s := &Server{Hub: hub, srv: &http.Server{Addr: cfg.Addr, Handler: mux}}
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", cfg.Addr).Msg("websocket sink")
		}
	}()
	log.Info().Str("addr", cfg.Addr).Str("path", path).Msg("serving frames")
	return s
}

// Close disconnects clients and stops the server.
func (s *Server) Close() error {
	s.Hub.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
