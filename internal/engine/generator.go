package engine

import (
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/cell"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geocache"
)

// Luck hashes an arbitrary string seed to a value in [0,1).
// It must stay portable and stable across versions and process
// restarts (no use of rand, no external state): the same seed always
// regenerates the same world. FNV-1a accumulation followed by a
// murmur-finalizer style avalanche.
func Luck(seed string) float64 {
	h := uint32(2166136261)
	for i := 0; i < len(seed); i++ {
		h ^= uint32(seed[i])
		h *= 16777619
	}
	h ^= h >> 16
	h *= 0x7feb352d
	h ^= h >> 15
	h *= 0x846ca68b
	h ^= h >> 16
	return float64(h) / (1 << 32)
}

// Generator decides deterministically which cells hold caches and how
// many coins each cache starts with. Only cells that were ever
// activated need explicit memento storage; everything else regenerates
// identically from the cell key alone.
type Generator struct {
	spawnProbability float64
	maxCoins         int
}

// NewGenerator creates a generator with the configured spawn
// probability and per-cache coin ceiling.
func NewGenerator(spawnProbability float64, maxCoins int) *Generator {
	return &Generator{
		spawnProbability: spawnProbability,
		maxCoins:         maxCoins,
	}
}

// SpawnCache rolls the cell's luck and returns a freshly minted cache,
// or nil when no cache exists at this cell.
func (g *Generator) SpawnCache(c *cell.Cell) *geocache.Cache {
	key := c.Key()
	if Luck(key) >= g.spawnProbability {
		return nil
	}
	coinCount := int(Luck(key+",coins") * float64(g.maxCoins))
	return geocache.New(c, coinCount)
}
