// Package network exposes the game world over WebSocket. It is the
// presentation surface: the core pushes render/unrender/inventory
// notifications out through the HubPresenter, and player commands
// (moves, collects, deposits, save/load) come back in through Client.
package network

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MRamiBalles/GeoMonedasJuego/internal/engine"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/logger"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/metrics"
)

// WorldStore persists and recalls the world snapshot. Implemented in
// the composition root, where the engine meets the blob store.
type WorldStore interface {
	SaveWorld(ctx context.Context) error
	LoadWorld(ctx context.Context) error
}

// ServerMessage is the frame sent to clients.
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub maintains the set of active clients and broadcasts world
// notifications to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	logger     *logger.Logger
	engine     *engine.Engine
	store      WorldStore
}

// NewHub initializes a new WebSocket Hub.
func NewHub(eng *engine.Engine, store WorldStore, log *logger.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
		engine:     eng,
		store:      store,
	}
}

// Run starts the Hub's main loop to handle client connections and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket Hub shutting down.")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.Get().RecordWSConnection(1)
			h.logger.Info("New WebSocket client connected")
			h.sendWelcome(client)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.Get().RecordWSConnection(-1)
				h.logger.Info("WebSocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					metrics.Get().RecordWSMessage(false)
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastMessage serializes a frame and sends it to all clients.
func (h *Hub) BroadcastMessage(msgType string, payload interface{}) {
	data, err := json.Marshal(ServerMessage{Type: msgType, Payload: payload})
	if err != nil {
		h.logger.Error(fmt.Sprintf("Failed to serialize %s frame for broadcast: %v", msgType, err))
		metrics.Get().RecordWSError()
		return
	}
	// Non-blocking: the engine may broadcast while holding its lock,
	// so a saturated channel must never stall a world transition.
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("Broadcast channel full, dropping " + msgType + " frame")
		metrics.Get().RecordWSError()
	}
}

// sendWelcome syncs a newly connected client with the current world:
// player position, inventory, and every active cache.
func (h *Hub) sendWelcome(client *Client) {
	pos := h.engine.PlayerPosition()
	client.sendMessage("PLAYER_POSITION", pos)
	client.sendMessage("INVENTORY", inventoryView{Coins: h.engine.InventoryCount()})
	for _, cache := range h.engine.ActiveCaches() {
		client.sendMessage("CACHE_RENDER", newCacheView(cache, h.engine.Board()))
	}
}
