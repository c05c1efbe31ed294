package engine

import "github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geo"

// Config holds the world constants the core depends on. They are
// supplied externally (see platform/config); nothing here is hardcoded
// in the simulation logic.
type Config struct {
	Origin           geo.Point // grid anchor (0°N, 0°E in production)
	CellSizeDegrees  float64   // width/height of one cell in degrees
	VisibilityRadius int       // Chebyshev radius of the visibility window, in cells
	SpawnProbability float64   // chance a never-visited cell holds a cache
	MaxCoinsPerCache int       // upper bound for generated coin counts
	Start            geo.Point // player position for a fresh world
}
