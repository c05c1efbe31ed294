package engine

import (
	"fmt"
	"time"

	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/cell"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geo"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geocache"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/events"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/logger"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/metrics"
)

// LifecycleSystem maintains the active and dormant cache sets.
//
// States per cell: unknown (never produced a cache) -> active (inside
// the visibility window, live object) -> dormant (memento stored) ->
// active again on re-entry. Nothing is ever destroyed within a
// session: every cache that ever existed stays recoverable as a
// memento. The dormant memento is authoritative over regeneration —
// a cell's content, once observed, never resets while the dormant
// store knows it.
type LifecycleSystem struct {
	board     *Board
	generator *Generator
	radius    int
	eventLog  *events.EventLog
	logger    *logger.Logger

	active  map[string]*geocache.Cache
	dormant map[string]string // cell key -> memento
}

// NewLifecycleSystem wires the cache state machine to its collaborators.
func NewLifecycleSystem(board *Board, gen *Generator, radius int, el *events.EventLog, log *logger.Logger) *LifecycleSystem {
	return &LifecycleSystem{
		board:     board,
		generator: gen,
		radius:    radius,
		eventLog:  el,
		logger:    log,
		active:    make(map[string]*geocache.Cache),
		dormant:   make(map[string]string),
	}
}

// UpdateVisibleCaches recomputes the active set for a player position.
// The window is the Chebyshev square [i-R,i+R]x[j-R,j+R] around the
// player's cell. Returns the caches that entered the window and the
// cells whose caches were evicted, so the caller can drive the
// presentation surface from one consistent window snapshot.
func (ls *LifecycleSystem) UpdateVisibleCaches(pos geo.Point) (entered []*geocache.Cache, left []*cell.Cell) {
	center := ls.board.CellForPoint(pos)

	for di := -ls.radius; di <= ls.radius; di++ {
		for dj := -ls.radius; dj <= ls.radius; dj++ {
			c := ls.board.CanonicalCell(center.I+di, center.J+dj)
			key := c.Key()
			if _, ok := ls.active[key]; ok {
				continue
			}
			cache := ls.wakeOrGenerate(c, key)
			if cache == nil {
				continue // cell stays unknown, no empty placeholder
			}
			ls.active[key] = cache
			entered = append(entered, cache)
		}
	}

	for key, cache := range ls.active {
		c := cache.Cell()
		if abs(c.I-center.I) <= ls.radius && abs(c.J-center.J) <= ls.radius {
			continue
		}
		memento, err := cache.ToMemento()
		if err != nil {
			// Keep the cache active rather than lose it; eviction will
			// be retried on the next position update.
			ls.logger.Error(fmt.Sprintf("Failed to serialize cache %s for eviction: %v", key, err))
			continue
		}
		ls.dormant[key] = memento
		delete(ls.active, key)
		left = append(left, c)
		metrics.Get().RecordCacheEvicted()
		ls.eventLog.Append(events.GameEvent{
			ID:        events.GenerateEventID(),
			Timestamp: time.Now(),
			Type:      events.EventTypeCacheDormant,
			CellKey:   key,
		})
	}

	return entered, left
}

// wakeOrGenerate restores a cache from its dormant memento, falling
// back to deterministic generation. A corrupted memento is treated as
// "no memento" for that cell so one bad entry never blocks the rest of
// the grid.
func (ls *LifecycleSystem) wakeOrGenerate(c *cell.Cell, key string) *geocache.Cache {
	if memento, ok := ls.dormant[key]; ok {
		m, err := geocache.DecodeMemento(memento)
		if err == nil {
			delete(ls.dormant, key)
			cache := geocache.Restore(c, m.Coins)
			metrics.Get().RecordCacheRestored()
			ls.eventLog.Append(events.GameEvent{
				ID:        events.GenerateEventID(),
				Timestamp: time.Now(),
				Type:      events.EventTypeCacheRestored,
				CellKey:   key,
			})
			return cache
		}
		ls.logger.Error(fmt.Sprintf("Corrupted memento for cell %s, regenerating: %v", key, err))
		delete(ls.dormant, key)
		metrics.Get().RecordMementoDecodeError()
		ls.eventLog.Append(events.GameEvent{
			ID:        events.GenerateEventID(),
			Timestamp: time.Now(),
			Type:      events.EventTypeMementoDecodeFailed,
			CellKey:   key,
		})
	}

	cache := ls.generator.SpawnCache(c)
	if cache == nil {
		return nil
	}
	metrics.Get().RecordCacheGenerated()
	ls.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeCacheActivated,
		CellKey:   key,
	})
	return cache
}

// ActiveCache returns the live cache for a cell key, if it is active.
func (ls *LifecycleSystem) ActiveCache(key string) (*geocache.Cache, bool) {
	cache, ok := ls.active[key]
	return cache, ok
}

// ActiveCaches returns all currently active caches.
func (ls *LifecycleSystem) ActiveCaches() []*geocache.Cache {
	result := make([]*geocache.Cache, 0, len(ls.active))
	for _, cache := range ls.active {
		result = append(result, cache)
	}
	return result
}

// ActiveCells returns the cells of all currently active caches.
func (ls *LifecycleSystem) ActiveCells() []*cell.Cell {
	result := make([]*cell.Cell, 0, len(ls.active))
	for _, cache := range ls.active {
		result = append(result, cache.Cell())
	}
	return result
}

// MementoUnion merges the dormant store with freshly serialized active
// caches. Active entries win on key collision since they are more
// current. This is the cache portion of a world snapshot.
func (ls *LifecycleSystem) MementoUnion() (map[string]string, error) {
	union := make(map[string]string, len(ls.dormant)+len(ls.active))
	for key, memento := range ls.dormant {
		union[key] = memento
	}
	for key, cache := range ls.active {
		memento, err := cache.ToMemento()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize active cache %s: %w", key, err)
		}
		union[key] = memento
	}
	return union, nil
}

// LoadDormant replaces the whole cache universe with the given memento
// set. The active set is cleared; the caller re-runs
// UpdateVisibleCaches so the current window reactivates from the
// now-populated dormant map instead of regenerating.
func (ls *LifecycleSystem) LoadDormant(states map[string]string) {
	ls.active = make(map[string]*geocache.Cache)
	ls.dormant = make(map[string]string, len(states))
	for key, memento := range states {
		ls.dormant[key] = memento
	}
}

// DormantCount reports how many cells are parked as mementos.
func (ls *LifecycleSystem) DormantCount() int {
	return len(ls.dormant)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
