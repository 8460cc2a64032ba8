/*
Package api
File: hub.go
Description:
    The WebSocket Hub is the real-time side channel of the operation.

    It maintains a registry of connected clients (operator dashboards) and a
    broadcast channel. Mission handlers and the background sweep publish
    events here — day advanced, mission completed, ops pulse — and the Hub
    fans them out to every open socket.

    Architecture:
    - Hub: the singleton manager.
    - Client: one browser connection.
    - ServeWs: the HTTP handler that upgrades a GET request to a WebSocket.
*/

package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Message is the standard JSON envelope for all real-time communication.
type Message struct {
	Type    string      `json:"type"`    // Event type (e.g. "mission_day", "mission_complete", "ops_pulse")
	Payload interface{} `json:"payload"` // The actual data (struct, map, or string)
	Sender  string      `json:"sender"`  // Origin (system or operator id)
}

// Client represents a single connected dashboard.
// It acts as a middleman between the websocket connection and the Hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte // Buffered channel for outbound messages
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	// Registered clients map; add/remove by key beats searching a slice.
	clients map[*Client]bool

	// Inbound messages to fan out. Exported so main and the handlers can
	// push events into it.
	Broadcast chan []byte

	register   chan *Client
	unregister chan *Client
}

// NewHub creates a new Hub instance.
// Call once from main and run as a goroutine.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run is the main event loop for the Hub.
// It blocks, so it must be run in a goroutine: `go hub.Run()`
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Println("WS: New Connection Registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Send buffer full: assume the client hung or disconnected.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Publish marshals an event envelope and hands it to the broadcast loop.
func (h *Hub) Publish(msgType, sender string, payload interface{}) {
	raw, err := json.Marshal(Message{Type: msgType, Payload: payload, Sender: sender})
	if err != nil {
		log.Printf("WS Marshal Error: %v", err)
		return
	}
	h.Broadcast <- raw
}

// upgrader configures the WebSocket handshake.
// CheckOrigin returns true to allow connections from any host.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades the HTTP request to a persistent WebSocket connection.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WS Upgrade Error:", err)
		return
	}

	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256)}
	client.hub.register <- client

	// One slow client must not block the server, so each connection gets
	// its own read/write pumps.
	go client.writePump()
	go client.readPump()
}

// readPump pumps messages from the websocket connection to the hub.
// Incoming traffic is mostly ignored; anything sent is rebroadcast, which
// covers simple operator chat.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WS Error: %v", err)
			}
			break
		}
		c.hub.Broadcast <- message
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()

	// Range over the channel; the loop exits when c.send is closed.
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}
}
