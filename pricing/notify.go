package pricing

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

// Hub pushes surge/decay events to websocket subscribers.
type Hub struct {
	mu    sync.Mutex
	conns []*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{}
}

// HandleWS upgrades the request and keeps the connection subscribed
// until the client disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.conns = append(h.conns, conn)
	h.mu.Unlock()

	for {
		// This keeps the connection alive until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	// Clean up on disconnect
	h.mu.Lock()
	newList := make([]*websocket.Conn, 0, len(h.conns))
	for _, c := range h.conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	h.conns = newList
	h.mu.Unlock()

	conn.Close()
}

// Publish broadcasts one event to every subscriber, dropping
// connections that fail to write.
func (h *Hub) Publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Println("price event marshal error:", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	newList := h.conns[:0]
	for _, conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}
	h.conns = newList
}
