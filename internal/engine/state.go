package engine

import "github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geo"

// GameState aggregates the player's mutable state. It is owned by the
// Engine; there is no module-level state anywhere in the core.
type GameState struct {
	Position geo.Point
	Coins    int         // inventory count, never negative
	Trail    []geo.Point // movement history, append-only during play
}
