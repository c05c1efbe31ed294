package engine

import (
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/cell"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geo"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geocache"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/events"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/logger"
)

func originPoint() geo.Point {
	return geo.Point{Lat: 0, Lng: 0}
}

// pointInCell returns a geographic point inside cell (i,j) for the
// standard test grid (origin 0,0, cell size 0.0001).
func pointInCell(i, j int) geo.Point {
	return geo.Point{
		Lat: (float64(i) + 0.5) * 0.0001,
		Lng: (float64(j) + 0.5) * 0.0001,
	}
}

func testConfig(radius int, spawnProbability float64) Config {
	return Config{
		Origin:           originPoint(),
		CellSizeDegrees:  0.0001,
		VisibilityRadius: radius,
		SpawnProbability: spawnProbability,
		MaxCoinsPerCache: 10,
		Start:            pointInCell(0, 0),
	}
}

func newTestEngine(cfg Config) *Engine {
	return NewEngine(cfg, events.NewEventLog(nil), logger.NewLogger())
}

// fakePresenter records presentation-surface calls for assertions.
type fakePresenter struct {
	rendered   []string
	unrendered []string
	inventory  []int
}

func (p *fakePresenter) RenderCache(cache *geocache.Cache) {
	p.rendered = append(p.rendered, cache.Cell().Key())
}

func (p *fakePresenter) UnrenderCache(c *cell.Cell) {
	p.unrendered = append(p.unrendered, c.Key())
}

func (p *fakePresenter) NotifyInventoryChanged(count int) {
	p.inventory = append(p.inventory, count)
}

// mementoWithCoins builds a valid memento string for tests.
func mementoWithCoins(c cell.Cell, coinCount int) string {
	cache := geocache.New(&c, coinCount)
	m, err := cache.ToMemento()
	if err != nil {
		panic(err)
	}
	return m
}
