// Package geo defines geographic value types shared by the game core.
// This package is PURE and must NOT import any infrastructure packages.
package geo

// Point is a continuous geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds describes the rectangular area covered by one grid cell.
type Bounds struct {
	SouthWest Point `json:"south_west"`
	NorthEast Point `json:"north_east"`
}
