// Package websocket provides the hub that pushes chat events to connected
// browsers. Push is best effort: clients that miss an event recover by
// re-fetching history, and events carry the message id so duplicate delivery
// is idempotent on the client.
package websocket

import (
	"context"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"

	"github.com/ruvumera/choir-panel/logger"
)

// MessageType labels the event carried by a hub message.
type MessageType string

const (
	MessageTypeChatCreated MessageType = "chat_created" // New chat message
	MessageTypeChatDeleted MessageType = "chat_deleted" // Chat message removed
	MessageTypeNotice      MessageType = "notice"       // System notification
)

// Message is one event pushed to clients.
type Message struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload"`
	Time    int64       `json:"time"`
}

// Client is one connected browser session.
type Client struct {
	ID   string
	Send chan []byte
	Hub  *Hub
}

// Hub tracks connected clients and fans events out to them.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex

	closed *atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a hub; call Run in a goroutine to start it.
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		closed:     atomic.NewBool(false),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run processes register/unregister/broadcast events until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Debugf("websocket client %s connected", client.ID)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Debugf("websocket client %s disconnected", client.ID)
		case data := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- data:
				default:
					// Slow consumer; it will re-sync by polling.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the hub. The send races with Stop, so it is
// guarded by the hub context instead of a closed check alone.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// Broadcast serializes an event and queues it for every connected client.
func (h *Hub) Broadcast(msgType MessageType, payload any) {
	if h.closed.Load() {
		return
	}
	data, err := json.Marshal(Message{
		Type:    msgType,
		Payload: payload,
		Time:    time.Now().Unix(),
	})
	if err != nil {
		logger.Warning("websocket marshal failed:", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		logger.Debug("websocket broadcast queue full, dropping event")
	}
}

// Stop shuts the hub down and disconnects all clients.
func (h *Hub) Stop() {
	if h.closed.Swap(true) {
		return
	}
	h.cancel()
}
