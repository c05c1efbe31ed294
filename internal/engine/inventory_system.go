package engine

import (
	"fmt"
	"time"

	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/coin"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geocache"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/events"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/logger"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/metrics"
)

// InventorySystem moves coins between a cache and the player's
// inventory. Both directions are guarded no-ops when the source is
// empty — the "can't go negative" rule is intentional game behavior,
// not an error condition. Coins are never created or destroyed by
// these two operations: the total across caches plus inventory is
// conserved.
type InventorySystem struct {
	eventLog *events.EventLog
	logger   *logger.Logger
}

// NewInventorySystem wires the coin-flow logic to the event log.
func NewInventorySystem(el *events.EventLog, log *logger.Logger) *InventorySystem {
	return &InventorySystem{
		eventLog: el,
		logger:   log,
	}
}

// Collect moves the top coin of a cache into the player inventory.
// Returns false (no state change) when the cache is empty.
func (is *InventorySystem) Collect(cache *geocache.Cache, state *GameState) bool {
	collected, ok := cache.Collect()
	if !ok {
		return false
	}
	state.Coins++

	metrics.Get().RecordCoinMove(true)
	is.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeCoinCollected,
		CellKey:   cache.Cell().Key(),
		Payload: events.CoinFlowPayload{
			CoinID:         collected.ID(),
			CacheCoins:     cache.CoinCount(),
			InventoryCoins: state.Coins,
		},
	})
	is.logger.Info(fmt.Sprintf("[INVENTORY] Collected %s, inventory now %d", collected.ID(), state.Coins))
	return true
}

// Deposit moves one coin unit from the player inventory into a cache.
// The deposited coin is minted in the receiving cache with its next
// free serial. Returns false (no state change) when the inventory is
// empty.
func (is *InventorySystem) Deposit(cache *geocache.Cache, state *GameState) bool {
	if state.Coins == 0 {
		return false
	}
	deposited := coin.Coin{Origin: cache.Cell().Key(), Serial: cache.NextSerial()}
	cache.Deposit(deposited)
	state.Coins--

	metrics.Get().RecordCoinMove(false)
	is.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeCoinDeposited,
		CellKey:   cache.Cell().Key(),
		Payload: events.CoinFlowPayload{
			CoinID:         deposited.ID(),
			CacheCoins:     cache.CoinCount(),
			InventoryCoins: state.Coins,
		},
	})
	is.logger.Info(fmt.Sprintf("[INVENTORY] Deposited %s, inventory now %d", deposited.ID(), state.Coins))
	return true
}
