// Package events provides the append-only log of world transitions.
// Every player move, cache lifecycle change, and coin transfer leaves
// an immutable record here.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of a game event.
type EventType string

const (
	EventTypePlayerMoved         EventType = "PLAYER_MOVED"
	EventTypeCacheActivated      EventType = "CACHE_ACTIVATED" // spawned by generation
	EventTypeCacheRestored       EventType = "CACHE_RESTORED"  // reconstituted from memento
	EventTypeCacheDormant        EventType = "CACHE_DORMANT"
	EventTypeCoinCollected       EventType = "COIN_COLLECTED"
	EventTypeCoinDeposited       EventType = "COIN_DEPOSITED"
	EventTypeWorldSaved          EventType = "WORLD_SAVED"
	EventTypeWorldRestored       EventType = "WORLD_RESTORED"
	EventTypeWorldReset          EventType = "WORLD_RESET"
	EventTypeSensorError         EventType = "SENSOR_ERROR"
	EventTypeMementoDecodeFailed EventType = "MEMENTO_DECODE_FAILED"
)

// PlayerMovedPayload carries the position a move resolved to.
type PlayerMovedPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoinFlowPayload describes a coin moving between a cache and the inventory.
type CoinFlowPayload struct {
	CoinID         string `json:"coin_id"`
	CacheCoins     int    `json:"cache_coins"`
	InventoryCoins int    `json:"inventory_coins"`
}

// GameEvent represents an immutable record of a world transition.
type GameEvent struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	CellKey   string      `json:"cell_key,omitempty"` // affected cell (optional)
	Payload   interface{} `json:"payload,omitempty"`  // event-specific data
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event GameEvent) error
}

// EventLog is the in-memory append-only log of game events.
type EventLog struct {
	mu        sync.RWMutex
	events    []GameEvent
	persister EventPersister
}

// NewEventLog creates a new event log with an optional persister.
func NewEventLog(persister EventPersister) *EventLog {
	return &EventLog{
		events:    make([]GameEvent, 0),
		persister: persister,
	}
}

// Append adds a new event to the log. Events are immutable once appended.
func (el *EventLog) Append(event GameEvent) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.events = append(el.events, event)

	if el.persister != nil {
		// Write through to persistent storage
		// In a real high-throughput system this might be buffered/async
		go func(e GameEvent) {
			_ = el.persister.Append(e)
		}(event)
	}
}

// GetByType returns all events of a specific type.
func (el *EventLog) GetByType(t EventType) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// GetByCell returns all events that touched a specific cell.
func (el *EventLog) GetByCell(cellKey string) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.CellKey == cellKey {
			result = append(result, e)
		}
	}
	return result
}

// Replay returns the full history of events for state reconstruction.
func (el *EventLog) Replay() []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.events
}

// GenerateEventID creates a unique event identifier.
func GenerateEventID() string {
	return uuid.NewString()
}
