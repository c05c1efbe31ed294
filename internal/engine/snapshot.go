package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geo"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/events"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/metrics"
)

// WorldSnapshot is the unit of persistence: the player state plus the
// complete cache universe (active and dormant) at one point in time.
// Primitive, stable field shapes only.
type WorldSnapshot struct {
	PlayerPosition  geo.Point   `json:"playerPosition"`
	PlayerCoins     int         `json:"playerCoins"`
	CacheStates     [][2]string `json:"cacheStates"` // [cellKey, memento] pairs, key-sorted
	MovementHistory []geo.Point `json:"movementHistory"`
}

// Snapshot flattens the current world into a WorldSnapshot. Dormant
// mementos are merged with freshly serialized active caches; active
// wins when a cell key exists in both, since active is more current.
func (e *Engine) Snapshot() (WorldSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	union, err := e.lifecycle.MementoUnion()
	if err != nil {
		return WorldSnapshot{}, err
	}

	keys := make([]string, 0, len(union))
	for key := range union {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	states := make([][2]string, 0, len(keys))
	for _, key := range keys {
		states = append(states, [2]string{key, union[key]})
	}

	snap := WorldSnapshot{
		PlayerPosition:  e.state.Position,
		PlayerCoins:     e.state.Coins,
		CacheStates:     states,
		MovementHistory: append([]geo.Point(nil), e.state.Trail...),
	}

	e.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeWorldSaved,
		Payload:   len(states),
	})
	return snap, nil
}

// SnapshotJSON serializes the current world for the blob store.
func (e *Engine) SnapshotJSON() ([]byte, error) {
	snap, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode world snapshot: %w", err)
	}
	return data, nil
}

// Restore replaces the running world with a saved snapshot: player
// state is loaded, the active set is cleared, the full memento union
// goes into the dormant map, and the visibility window is re-run so
// everything in range reactivates from mementos instead of
// regenerating. Restore(Snapshot()) reproduces an observably identical
// world.
func (e *Engine) Restore(snap WorldSnapshot) error {
	if snap.PlayerCoins < 0 {
		return fmt.Errorf("malformed snapshot: negative coin count %d", snap.PlayerCoins)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.presenter != nil {
		for _, c := range e.lifecycle.ActiveCells() {
			e.presenter.UnrenderCache(c)
		}
	}

	states := make(map[string]string, len(snap.CacheStates))
	for _, entry := range snap.CacheStates {
		states[entry[0]] = entry[1]
	}
	e.lifecycle.LoadDormant(states)

	e.state = &GameState{
		Position: snap.PlayerPosition,
		Coins:    snap.PlayerCoins,
		Trail:    append([]geo.Point(nil), snap.MovementHistory...),
	}

	e.refreshVisibleLocked()
	if e.presenter != nil {
		e.presenter.NotifyInventoryChanged(e.state.Coins)
	}

	metrics.Get().RecordSnapshotLoad()
	e.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeWorldRestored,
		Payload:   len(snap.CacheStates),
	})
	e.logger.Info(fmt.Sprintf("World restored: %d known cells, %d coins in inventory", len(snap.CacheStates), snap.PlayerCoins))
	return nil
}

// RestoreJSON decodes and restores a persisted snapshot. A malformed
// blob is reported as an error so the caller can fall back to a fresh
// world instead of crashing.
func (e *Engine) RestoreJSON(data []byte) error {
	var snap WorldSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode world snapshot: %w", err)
	}
	return e.Restore(snap)
}
