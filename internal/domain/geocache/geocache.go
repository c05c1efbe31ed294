// Package geocache defines the core domain entity for coin caches and
// their memento serialization.
// This package is PURE and must NOT import any infrastructure packages.
package geocache

import (
	"encoding/json"
	"fmt"

	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/cell"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/coin"
)

// Cache is a discoverable coin container tied to one grid cell.
// The cell never changes after construction. Coins form an ordered
// stack: Collect pops the most recently added coin.
type Cache struct {
	cell  *cell.Cell
	coins []coin.Coin
}

// New creates a freshly generated cache holding coinCount coins with
// serials 0..coinCount-1, all minted in the cache's own cell.
func New(c *cell.Cell, coinCount int) *Cache {
	coins := make([]coin.Coin, 0, coinCount)
	for serial := 0; serial < coinCount; serial++ {
		coins = append(coins, coin.Coin{Origin: c.Key(), Serial: serial})
	}
	return &Cache{cell: c, coins: coins}
}

// Restore rebuilds a cache from previously serialized coins.
func Restore(c *cell.Cell, coins []coin.Coin) *Cache {
	return &Cache{cell: c, coins: append([]coin.Coin(nil), coins...)}
}

// Cell returns the cache's grid cell.
func (c *Cache) Cell() *cell.Cell {
	return c.cell
}

// Coins returns a copy of the coin stack, bottom first.
func (c *Cache) Coins() []coin.Coin {
	return append([]coin.Coin(nil), c.coins...)
}

// CoinCount returns the number of coins currently in the cache.
func (c *Cache) CoinCount() int {
	return len(c.coins)
}

// Collect removes and returns the top coin. Returns false when the
// cache is empty; callers treat that as a no-op, not an error.
func (c *Cache) Collect() (coin.Coin, bool) {
	if len(c.coins) == 0 {
		return coin.Coin{}, false
	}
	top := c.coins[len(c.coins)-1]
	c.coins = c.coins[:len(c.coins)-1]
	return top, true
}

// Deposit pushes a coin onto the cache's stack.
func (c *Cache) Deposit(cn coin.Coin) {
	c.coins = append(c.coins, cn)
}

// NextSerial returns the next free display serial for this cache.
// Serials are monotonic per cache but may repeat across a cache's
// lifetime once higher-numbered coins have been collected.
func (c *Cache) NextSerial() int {
	next := 0
	for _, cn := range c.coins {
		if cn.Origin == c.cell.Key() && cn.Serial >= next {
			next = cn.Serial + 1
		}
	}
	return next
}

// Memento is the decoded form of a serialized cache.
type Memento struct {
	Cell  string      `json:"cell"`
	Coins []coin.Coin `json:"coins"`
}

// ToMemento serializes the cache to an opaque string. Decoding the
// result yields the same cell key and the same coin identities.
func (c *Cache) ToMemento() (string, error) {
	data, err := json.Marshal(Memento{Cell: c.cell.Key(), Coins: c.coins})
	if err != nil {
		return "", fmt.Errorf("failed to encode cache memento: %w", err)
	}
	return string(data), nil
}

// DecodeMemento parses a memento string produced by ToMemento. The
// caller re-canonicalizes the cell through the Board before rebuilding
// the cache so that restore never mints a duplicate cell identity.
func DecodeMemento(s string) (Memento, error) {
	var m Memento
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return Memento{}, fmt.Errorf("failed to decode cache memento: %w", err)
	}
	if _, err := cell.ParseKey(m.Cell); err != nil {
		return Memento{}, fmt.Errorf("memento has bad cell key: %w", err)
	}
	return m, nil
}
