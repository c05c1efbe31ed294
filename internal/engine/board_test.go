package engine

import (
	"testing"

	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geo"
)

func TestCellForPointCanonicalizes(t *testing.T) {
	board := NewBoard(originPoint(), 0.0001)

	// Two distinct points inside the same grid square.
	a := board.CellForPoint(geo.Point{Lat: 0.00052, Lng: 0.00058})
	b := board.CellForPoint(geo.Point{Lat: 0.00059, Lng: 0.00051})

	if a != b {
		t.Errorf("Expected the same cell identity for both points, got %p and %p", a, b)
	}
	if a.I != 5 || a.J != 5 {
		t.Errorf("Expected cell (5,5), got (%d,%d)", a.I, a.J)
	}
}

func TestCanonicalCellReturnsSameIdentity(t *testing.T) {
	board := NewBoard(originPoint(), 0.0001)

	first := board.CanonicalCell(3, -4)
	second := board.CanonicalCell(3, -4)

	if first != second {
		t.Errorf("Expected one identity per (i,j), got %p and %p", first, second)
	}
}

func TestCellForPointNegativeCoordinates(t *testing.T) {
	board := NewBoard(originPoint(), 0.0001)

	// Just south-west of the origin must floor to (-1,-1), not truncate to (0,0).
	c := board.CellForPoint(geo.Point{Lat: -0.00001, Lng: -0.00001})
	if c.I != -1 || c.J != -1 {
		t.Errorf("Expected cell (-1,-1), got (%d,%d)", c.I, c.J)
	}
}

func TestCellForKeyResolvesToCanonical(t *testing.T) {
	board := NewBoard(originPoint(), 0.0001)

	direct := board.CanonicalCell(7, 8)
	viaKey, err := board.CellForKey("7,8")
	if err != nil {
		t.Fatalf("CellForKey failed: %v", err)
	}
	if direct != viaKey {
		t.Errorf("Expected the key lookup to return the interned identity")
	}

	if _, err := board.CellForKey("bogus"); err == nil {
		t.Errorf("Expected error for malformed key, got none")
	}
}

func TestCellBounds(t *testing.T) {
	board := NewBoard(geo.Point{Lat: 10, Lng: 20}, 0.5)
	c := board.CanonicalCell(2, -1)

	bounds := board.CellBounds(c)
	if bounds.SouthWest.Lat != 11 || bounds.SouthWest.Lng != 19.5 {
		t.Errorf("Unexpected south-west corner: %+v", bounds.SouthWest)
	}
	if bounds.NorthEast.Lat != 11.5 || bounds.NorthEast.Lng != 20 {
		t.Errorf("Unexpected north-east corner: %+v", bounds.NorthEast)
	}
}
