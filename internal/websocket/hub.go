package websocket

import (
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Client is one connected websocket subscriber.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Mu     sync.Mutex
}

// Message is a payload addressed to a single user's connections.
type Message struct {
	UserID  string
	Payload []byte
}

// Hub delivers notification payloads to the connections of the addressed
// user.
type Hub struct {
	Clients    map[*Client]bool
	Notify     chan Message
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Notify:     make(chan Message, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Push queues a payload for userID without blocking the caller; if the hub
// is saturated the message is dropped.
func (h *Hub) Push(userID string, payload []byte) {
	select {
	case h.Notify <- Message{UserID: userID, Payload: payload}:
	default:
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
		case msg := <-h.Notify:
			for client := range h.Clients {
				if client.UserID != msg.UserID {
					continue
				}
				client.Mu.Lock()
				err := client.Conn.WriteMessage(websocket.TextMessage, msg.Payload)
				client.Mu.Unlock()
				if err != nil {
					delete(h.Clients, client)
					client.Conn.Close()
				}
			}
		}
	}
}
