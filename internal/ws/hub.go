package ws

import (
	"encoding/json"
	"log"
)

// Hub maintains the set of connected admin dashboards and broadcasts inquiry
// events to them. The feed is one-way: clients only listen.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Outbound events for all connected dashboards.
	Broadcast chan []byte
}

func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Printf("Admin dashboard connected (%d active)", len(h.clients))
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Printf("Admin dashboard disconnected (%d active)", len(h.clients))
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Publish marshals an event and hands it to the broadcast loop without
// blocking the caller. Events are dropped when the buffer is full; the
// dashboard refetches on load, so the feed is best-effort.
func (h *Hub) Publish(event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws: failed to marshal event: %v", err)
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
		log.Println("ws: broadcast buffer full, dropping event")
	}
}
