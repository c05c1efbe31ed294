// Package metrics provides observability for the game server.
// Counters cover the cache lifecycle, coin flow, persistence, and the
// WebSocket surface.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers performance and world-state metrics.
type Collector struct {
	// Movement metrics
	MovesProcessed int64
	MoveLatencySum int64 // nanoseconds
	MoveLatencyMax int64

	// Cache lifecycle metrics
	CachesGenerated     int64
	CachesRestored      int64
	CachesEvicted       int64
	MementoDecodeErrors int64

	// Coin flow metrics
	CoinsCollected int64
	CoinsDeposited int64

	// Persistence metrics
	SnapshotSaves     int64
	SnapshotLoads     int64
	SnapshotSaveFails int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64
	WSErrors            int64

	// System
	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = &Collector{
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordMove records a processed player-position update.
func (c *Collector) RecordMove(latency time.Duration) {
	atomic.AddInt64(&c.MovesProcessed, 1)
	atomic.AddInt64(&c.MoveLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.MoveLatencyMax) {
		atomic.StoreInt64(&c.MoveLatencyMax, int64(latency))
	}
}

// RecordCacheGenerated records a cache spawned by deterministic generation.
func (c *Collector) RecordCacheGenerated() {
	atomic.AddInt64(&c.CachesGenerated, 1)
}

// RecordCacheRestored records a cache reconstituted from a memento.
func (c *Collector) RecordCacheRestored() {
	atomic.AddInt64(&c.CachesRestored, 1)
}

// RecordCacheEvicted records a cache serialized to the dormant store.
func (c *Collector) RecordCacheEvicted() {
	atomic.AddInt64(&c.CachesEvicted, 1)
}

// RecordMementoDecodeError records a corrupted dormant entry.
func (c *Collector) RecordMementoDecodeError() {
	atomic.AddInt64(&c.MementoDecodeErrors, 1)
}

// RecordCoinMove records a collect or deposit.
func (c *Collector) RecordCoinMove(collected bool) {
	if collected {
		atomic.AddInt64(&c.CoinsCollected, 1)
	} else {
		atomic.AddInt64(&c.CoinsDeposited, 1)
	}
}

// RecordSnapshotSave records a world snapshot write.
func (c *Collector) RecordSnapshotSave(err error) {
	atomic.AddInt64(&c.SnapshotSaves, 1)
	if err != nil {
		atomic.AddInt64(&c.SnapshotSaveFails, 1)
	}
}

// RecordSnapshotLoad records a world snapshot restore.
func (c *Collector) RecordSnapshotLoad() {
	atomic.AddInt64(&c.SnapshotLoads, 1)
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records WebSocket messages.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		atomic.AddInt64(&c.WSMessagesIn, 1)
	} else {
		atomic.AddInt64(&c.WSMessagesOut, 1)
	}
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	moves := atomic.LoadInt64(&c.MovesProcessed)

	var moveAvg float64
	if moves > 0 {
		moveAvg = float64(atomic.LoadInt64(&c.MoveLatencySum)) / float64(moves) / 1e6 // ms
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"movement": map[string]interface{}{
			"processed":      moves,
			"avg_latency_ms": moveAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.MoveLatencyMax)) / 1e6,
		},

		"caches": map[string]interface{}{
			"generated":             atomic.LoadInt64(&c.CachesGenerated),
			"restored":              atomic.LoadInt64(&c.CachesRestored),
			"evicted":               atomic.LoadInt64(&c.CachesEvicted),
			"memento_decode_errors": atomic.LoadInt64(&c.MementoDecodeErrors),
		},

		"coins": map[string]interface{}{
			"collected": atomic.LoadInt64(&c.CoinsCollected),
			"deposited": atomic.LoadInt64(&c.CoinsDeposited),
		},

		"persistence": map[string]interface{}{
			"saves":      atomic.LoadInt64(&c.SnapshotSaves),
			"save_fails": atomic.LoadInt64(&c.SnapshotSaveFails),
			"loads":      atomic.LoadInt64(&c.SnapshotLoads),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_in":        atomic.LoadInt64(&c.WSMessagesIn),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},
	}
}

// Handler returns an HTTP handler exposing the metrics as JSON.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(collector.Snapshot()); err != nil {
			http.Error(w, fmt.Sprintf("failed to encode metrics: %v", err), http.StatusInternalServerError)
		}
	}
}
