package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geo"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geocache"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/events"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/logger"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/metrics"
)

// Engine is the central orchestrator that owns the game state and
// wires the grid, generator, cache lifecycle, and coin flow together.
// Every public operation runs under one mutex, preserving the
// "exactly one writer at a time" guarantee the simulation depends on:
// eviction and activation are always computed from a single consistent
// window snapshot.
type Engine struct {
	mu  sync.Mutex
	cfg Config

	board     *Board
	generator *Generator
	lifecycle *LifecycleSystem
	inventory *InventorySystem

	state     *GameState
	eventLog  *events.EventLog
	logger    *logger.Logger
	presenter Presenter
}

// NewEngine initializes the core game systems and dependencies. The
// world starts empty; callers either Restore a saved snapshot or
// MovePlayer to the start position to populate the first window.
func NewEngine(cfg Config, el *events.EventLog, log *logger.Logger) *Engine {
	board := NewBoard(cfg.Origin, cfg.CellSizeDegrees)
	gen := NewGenerator(cfg.SpawnProbability, cfg.MaxCoinsPerCache)

	return &Engine{
		cfg:       cfg,
		board:     board,
		generator: gen,
		lifecycle: NewLifecycleSystem(board, gen, cfg.VisibilityRadius, el, log),
		inventory: NewInventorySystem(el, log),
		state:     &GameState{Position: cfg.Start},
		eventLog:  el,
		logger:    log,
	}
}

// SetPresenter attaches the presentation surface. May be nil.
func (e *Engine) SetPresenter(p Presenter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.presenter = p
}

// Board exposes the grid for bounds lookups by the presentation layer.
func (e *Engine) Board() *Board {
	return e.board
}

// MovePlayer applies a player-position update: appends to the movement
// trail and recomputes the visible cache window.
func (e *Engine) MovePlayer(p geo.Point) {
	start := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Position = p
	e.state.Trail = append(e.state.Trail, p)
	e.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypePlayerMoved,
		Payload:   events.PlayerMovedPayload{Lat: p.Lat, Lng: p.Lng},
	})

	e.refreshVisibleLocked()
	metrics.Get().RecordMove(time.Since(start))
}

// refreshVisibleLocked recomputes the window for the current position
// and drives the presentation surface. Caller must hold e.mu.
func (e *Engine) refreshVisibleLocked() {
	entered, left := e.lifecycle.UpdateVisibleCaches(e.state.Position)
	if e.presenter == nil {
		return
	}
	for _, c := range left {
		e.presenter.UnrenderCache(c)
	}
	for _, cache := range entered {
		e.presenter.RenderCache(cache)
	}
}

// CollectCoin moves one coin from the cache at cellKey into the player
// inventory. Collecting from an empty cache is a silent no-op; only a
// cache outside the active set is an error.
func (e *Engine) CollectCoin(cellKey string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache, ok := e.lifecycle.ActiveCache(cellKey)
	if !ok {
		return fmt.Errorf("no active cache at %s", cellKey)
	}
	if !e.inventory.Collect(cache, e.state) {
		return nil
	}
	if e.presenter != nil {
		e.presenter.RenderCache(cache)
		e.presenter.NotifyInventoryChanged(e.state.Coins)
	}
	return nil
}

// DepositCoin moves one coin from the player inventory into the cache
// at cellKey. Depositing with an empty inventory is a silent no-op.
func (e *Engine) DepositCoin(cellKey string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache, ok := e.lifecycle.ActiveCache(cellKey)
	if !ok {
		return fmt.Errorf("no active cache at %s", cellKey)
	}
	if !e.inventory.Deposit(cache, e.state) {
		return nil
	}
	if e.presenter != nil {
		e.presenter.RenderCache(cache)
		e.presenter.NotifyInventoryChanged(e.state.Coins)
	}
	return nil
}

// ReportSensorError records a geolocation sensor failure. World and
// cache state are untouched.
func (e *Engine) ReportSensorError(message string) {
	e.logger.Warn("Sensor failure reported: " + message)
	e.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeSensorError,
		Payload:   message,
	})
}

// Reset discards the whole session: player state, movement trail, and
// every cache (active and dormant), then repopulates the window at the
// configured start position.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.presenter != nil {
		for _, c := range e.lifecycle.ActiveCells() {
			e.presenter.UnrenderCache(c)
		}
	}
	e.lifecycle.LoadDormant(nil)
	e.state = &GameState{Position: e.cfg.Start, Trail: []geo.Point{e.cfg.Start}}

	e.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeWorldReset,
	})
	e.logger.Info("World reset to a fresh state")

	e.refreshVisibleLocked()
	if e.presenter != nil {
		e.presenter.NotifyInventoryChanged(e.state.Coins)
	}
}

// PlayerPosition returns the player's current position.
func (e *Engine) PlayerPosition() geo.Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Position
}

// InventoryCount returns the player's coin count.
func (e *Engine) InventoryCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Coins
}

// Trail returns a copy of the movement history.
func (e *Engine) Trail() []geo.Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]geo.Point(nil), e.state.Trail...)
}

// ActiveCaches returns the caches currently inside the visibility
// window, for syncing newly connected clients.
func (e *Engine) ActiveCaches() []*geocache.Cache {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lifecycle.ActiveCaches()
}
