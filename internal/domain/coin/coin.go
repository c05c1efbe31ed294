// Package coin defines the domain entity for collectible coins.
// This package is PURE and must NOT import any infrastructure packages.
package coin

import "strconv"

// Coin is identified by the cell it was minted in plus a per-cache serial.
// The serial is assigned monotonically within its origin cache and exists
// for display only; it is not a global identifier.
type Coin struct {
	Origin string `json:"origin"` // cell key "{i},{j}" of the minting cache
	Serial int    `json:"serial"`
}

// ID returns the display identity "{i},{j}#{serial}".
func (c Coin) ID() string {
	return c.Origin + "#" + strconv.Itoa(c.Serial)
}
