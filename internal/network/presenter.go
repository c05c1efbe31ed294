package network

import (
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/cell"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geo"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geocache"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/engine"
)

// cacheView is the render payload for one cache. Clients get the cell
// identity, its geographic rectangle, and the coin IDs on display.
type cacheView struct {
	Cell   string     `json:"cell"`
	Bounds geo.Bounds `json:"bounds"`
	Coins  []string   `json:"coins"`
}

type inventoryView struct {
	Coins int `json:"coins"`
}

func newCacheView(cache *geocache.Cache, board *engine.Board) cacheView {
	coins := cache.Coins()
	ids := make([]string, 0, len(coins))
	for _, cn := range coins {
		ids = append(ids, cn.ID())
	}
	return cacheView{
		Cell:   cache.Cell().Key(),
		Bounds: board.CellBounds(cache.Cell()),
		Coins:  ids,
	}
}

// HubPresenter implements engine.Presenter by broadcasting render
// frames through the Hub. It is called with the engine lock held, so
// it must only queue messages, never call back into locking engine
// methods.
type HubPresenter struct {
	hub   *Hub
	board *engine.Board
}

// NewHubPresenter creates the presentation surface adapter.
func NewHubPresenter(hub *Hub, board *engine.Board) *HubPresenter {
	return &HubPresenter{hub: hub, board: board}
}

// RenderCache announces a newly active or content-changed cache.
func (p *HubPresenter) RenderCache(cache *geocache.Cache) {
	p.hub.BroadcastMessage("CACHE_RENDER", newCacheView(cache, p.board))
}

// UnrenderCache announces that a cache went dormant.
func (p *HubPresenter) UnrenderCache(c *cell.Cell) {
	p.hub.BroadcastMessage("CACHE_UNRENDER", map[string]string{"cell": c.Key()})
}

// NotifyInventoryChanged announces the player's new coin count.
func (p *HubPresenter) NotifyInventoryChanged(count int) {
	p.hub.BroadcastMessage("INVENTORY", inventoryView{Coins: count})
}
