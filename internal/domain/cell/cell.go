// Package cell defines the domain entity for a grid cell.
// This package is PURE and must NOT import any infrastructure packages.
package cell

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is a discrete grid coordinate pair relative to the world origin.
// Canonical instances are handed out by the engine Board: within one
// session every (i,j) pair maps to exactly one *Cell, so pointer and
// value comparison agree.
type Cell struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Key returns the stable "{i},{j}" identity string for the cell.
// This is also the key format used in persisted snapshots.
func (c Cell) Key() string {
	return strconv.Itoa(c.I) + "," + strconv.Itoa(c.J)
}

// ParseKey is the inverse of Key.
func ParseKey(key string) (Cell, error) {
	left, right, ok := strings.Cut(key, ",")
	if !ok {
		return Cell{}, fmt.Errorf("invalid cell key %q", key)
	}
	i, err := strconv.Atoi(left)
	if err != nil {
		return Cell{}, fmt.Errorf("invalid cell key %q: %w", key, err)
	}
	j, err := strconv.Atoi(right)
	if err != nil {
		return Cell{}, fmt.Errorf("invalid cell key %q: %w", key, err)
	}
	return Cell{I: i, J: j}, nil
}
