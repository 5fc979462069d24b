package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// Event is the JSON message pushed to every connected dashboard.
type Event struct {
	Type    string      `json:"type"`   // e.g. "measurement"
	Action  string      `json:"action"` // created | updated | deleted | seeded
	Data    interface{} `json:"data,omitempty"`
	ActorID string      `json:"actor_id,omitempty"`
	Message string      `json:"message,omitempty"`
	At      time.Time   `json:"at"`
}

// Publisher is implemented by Hub. Services depend on this so tests can
// pass nil or a recorder instead.
type Publisher interface {
	Publish(event Event)
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("Dashboard client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues an event for broadcast. A full queue drops the event
// rather than blocking the request that produced it.
func (h *Hub) Publish(event Event) {
	if h == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws: failed to encode %s event: %v", event.Type, err)
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		log.Printf("ws: broadcast queue full, dropping %s/%s event", event.Type, event.Action)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}
