package engine

import (
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/cell"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geocache"
)

// Presenter is the narrow interface the core calls into the
// presentation surface with. Implementations render map markers and
// inventory counters; the core never touches the DOM/transport layer
// directly. A nil presenter is tolerated everywhere.
type Presenter interface {
	// RenderCache is called once per newly-active cache and again
	// whenever its coin content changes.
	RenderCache(cache *geocache.Cache)
	// UnrenderCache is called when a cache becomes dormant.
	UnrenderCache(c *cell.Cell)
	// NotifyInventoryChanged is called after every collect/deposit.
	NotifyInventoryChanged(count int)
}
