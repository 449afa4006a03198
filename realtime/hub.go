// Package realtime pushes order events to connected storefront and
// admin-console clients over websockets. Customers join a room keyed by
// their user id; every admin console joins the shared admins room.
package realtime

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const AdminRoom = "admins"

const (
	EventNewOrder          = "newOrder"
	EventOrderStatusUpdate = "orderStatusUpdate"
)

type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]struct{}
	log   *slog.Logger

	upgrader websocket.Upgrader
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*websocket.Conn]struct{}),
		log:   log,
		upgrader: websocket.Upgrader{
			// tokens are checked before the upgrade; the storefront and
			// admin console are served from other origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the request and keeps the connection in the given
// rooms until the peer goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, rooms ...string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "error", err)
		return
	}

	h.join(conn, rooms)
	defer h.leave(conn, rooms)

	// the server only pushes; read until the client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) join(conn *websocket.Conn, rooms []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[*websocket.Conn]struct{})
		}
		h.rooms[room][conn] = struct{}{}
	}
}

func (h *Hub) leave(conn *websocket.Conn, rooms []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range rooms {
		delete(h.rooms[room], conn)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	conn.Close()
}

// Emit broadcasts an event to everyone in the room. Dead connections
// are dropped on write failure.
func (h *Hub) Emit(room, event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.rooms[room] {
		if err := conn.WriteJSON(envelope{Event: event, Data: data}); err != nil {
			conn.Close()
			delete(h.rooms[room], conn)
		}
	}
}
