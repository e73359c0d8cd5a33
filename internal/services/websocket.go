package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Topics clients can subscribe to.
const (
	TopicSafetyAlert   = "safety-alert"
	TopicBookingUpdate = "booking-update"
)

// Event is the wire format for everything published through the hub.
type Event struct {
	Topic string      `json:"topic"`
	Data  interface{} `json:"data"`
}

// Client represents a connected WebSocket subscriber.
type Client struct {
	ID     uint
	Role   string
	Topics map[string]bool
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub
}

// Hub maintains the set of active clients and fans published events out to
// the subscribers connected at publish time. Delivery is at-most-once:
// there is no queueing, no replay, and a subscriber that connects after a
// publish never sees that event.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client %d connected (%s)", client.ID, client.Role)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.Printf("Client %d disconnected", client.ID)
		}
	}
}

// PublishTopic sends an event to every client subscribed to the topic.
// Clients whose send buffer is full are skipped.
func (h *Hub) PublishTopic(topic string, payload interface{}) {
	data, err := json.Marshal(Event{Topic: topic, Data: payload})
	if err != nil {
		log.Printf("Error marshaling %s event: %v", topic, err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if !client.Topics[topic] {
			continue
		}
		select {
		case client.Send <- data:
		default:
			log.Printf("Warning: could not send to client %d (channel full)", client.ID)
		}
	}
}

// PublishToUser sends an event to a specific user's connections. Only
// connections subscribed to the topic receive it.
func (h *Hub) PublishToUser(userID uint, topic string, payload interface{}) {
	data, err := json.Marshal(Event{Topic: topic, Data: payload})
	if err != nil {
		log.Printf("Error marshaling %s event: %v", topic, err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.ID != userID || !client.Topics[topic] {
			continue
		}
		select {
		case client.Send <- data:
		default:
			log.Printf("Warning: could not send to client %d (channel full)", client.ID)
		}
	}
}

// ConnectedSubscribers returns the number of clients subscribed to a topic.
func (h *Hub) ConnectedSubscribers(topic string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	n := 0
	for client := range h.clients {
		if client.Topics[topic] {
			n++
		}
	}
	return n
}

// HandleWebSocket upgrades the connection and registers the subscriber.
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, role string, topics []string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	subscribed := make(map[string]bool, len(topics))
	for _, t := range topics {
		subscribed[t] = true
	}

	client := &Client{
		ID:     userID,
		Role:   role,
		Topics: subscribed,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Hub:    hub,
	}

	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection until the client goes away.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		// The channel is publish-only; inbound frames are ignored.
	}
}

// writePump pumps events from the hub to the websocket connection.
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
