package notification

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans live notifications out to connected clients, keyed by member.
// Delivery is best effort: a failed write drops the connection, the
// persisted notification remains the source of truth.
type Hub struct {
	mu    sync.RWMutex
	conns map[int][]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[int][]*websocket.Conn),
	}
}

func (h *Hub) Subscribe(memberID int, w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.conns[memberID] = append(h.conns[memberID], conn)
	h.mu.Unlock()

	// Reader loop only drains control frames; inbound messages are ignored.
	go func() {
		defer h.drop(memberID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}

func (h *Hub) Publish(memberID int, n *Notification) {
	h.mu.RLock()
	conns := append([]*websocket.Conn(nil), h.conns[memberID]...)
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(n); err != nil {
			log.Printf("Dropping notification subscriber for member %d: %v", memberID, err)
			h.drop(memberID, conn)
		}
	}
}

func (h *Hub) drop(memberID int, conn *websocket.Conn) {
	conn.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	remaining := h.conns[memberID][:0]
	for _, c := range h.conns[memberID] {
		if c != conn {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		delete(h.conns, memberID)
	} else {
		h.conns[memberID] = remaining
	}
}

func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for memberID, conns := range h.conns {
		for _, conn := range conns {
			conn.Close()
		}
		delete(h.conns, memberID)
	}
}
