package engine

import (
	"math"

	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/cell"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geo"
)

// Board canonicalizes geographic points into grid cell identities.
// It owns the identity-interning map: within one Board there is exactly
// one *cell.Cell per (i,j) pair, so equality checks downstream can use
// pointers or values interchangeably. The map is unbounded for the
// session; the reachable cell space is bounded by the play area.
type Board struct {
	origin   geo.Point
	cellSize float64
	known    map[string]*cell.Cell
}

// NewBoard creates a board anchored at origin with the given cell size
// in degrees.
func NewBoard(origin geo.Point, cellSizeDegrees float64) *Board {
	return &Board{
		origin:   origin,
		cellSize: cellSizeDegrees,
		known:    make(map[string]*cell.Cell),
	}
}

// CanonicalCell returns the session-unique identity for (i,j), creating
// and registering it on first use.
func (b *Board) CanonicalCell(i, j int) *cell.Cell {
	key := cell.Cell{I: i, J: j}.Key()
	if c, ok := b.known[key]; ok {
		return c
	}
	c := &cell.Cell{I: i, J: j}
	b.known[key] = c
	return c
}

// CellForPoint maps a continuous geographic point to its canonical cell.
func (b *Board) CellForPoint(p geo.Point) *cell.Cell {
	i := int(math.Floor((p.Lat - b.origin.Lat) / b.cellSize))
	j := int(math.Floor((p.Lng - b.origin.Lng) / b.cellSize))
	return b.CanonicalCell(i, j)
}

// CellForKey resolves a persisted "{i},{j}" key to its canonical cell.
func (b *Board) CellForKey(key string) (*cell.Cell, error) {
	c, err := cell.ParseKey(key)
	if err != nil {
		return nil, err
	}
	return b.CanonicalCell(c.I, c.J), nil
}

// CellBounds returns the geographic rectangle covered by a cell.
func (b *Board) CellBounds(c *cell.Cell) geo.Bounds {
	return geo.Bounds{
		SouthWest: geo.Point{
			Lat: b.origin.Lat + float64(c.I)*b.cellSize,
			Lng: b.origin.Lng + float64(c.J)*b.cellSize,
		},
		NorthEast: geo.Point{
			Lat: b.origin.Lat + float64(c.I+1)*b.cellSize,
			Lng: b.origin.Lng + float64(c.J+1)*b.cellSize,
		},
	}
}
