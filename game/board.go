package game

import (
	"math"

	"github.com/eashang1/terminal-s8/model"
)

// Unit is one unit standing on the board.
type Unit struct {
	Kind           model.UnitKind
	Owner          model.Side
	Location       model.Coordinate
	Health         float64
	ID             string
	Upgraded       bool
	PendingRemoval bool
}

// rangeTolerance widens range checks so cells whose centres sit just past a
// whole-number radius still count, matching the engine's targeting.
const rangeTolerance = 0.51

// Board is the occupancy grid. Cells outside the diamond are never populated.
type Board struct {
	cells [model.ArenaSize][model.ArenaSize][]Unit
}

// UnitsAt returns the units at c. The slice must not be modified.
func (b *Board) UnitsAt(c model.Coordinate) []Unit {
	if !model.InArena(c) {
		return nil
	}
	return b.cells[c.X][c.Y]
}

// Stationary returns the structure at c, if any. There is at most one.
func (b *Board) Stationary(c model.Coordinate) (*Unit, bool) {
	if !model.InArena(c) {
		return nil, false
	}
	units := b.cells[c.X][c.Y]
	for i := range units {
		if units[i].Kind.IsStationary() {
			return &units[i], true
		}
	}
	return nil, false
}

// Add places u at its location. Out-of-arena units are dropped.
func (b *Board) Add(u Unit) bool {
	c := u.Location
	if !model.InArena(c) {
		return false
	}
	b.cells[c.X][c.Y] = append(b.cells[c.X][c.Y], u)
	return true
}

// LocationsInRange returns every arena cell within radius of c.
func (b *Board) LocationsInRange(c model.Coordinate, radius float64) []model.Coordinate {
	r := int(math.Ceil(radius))
	var out []model.Coordinate
	for x := c.X - r; x <= c.X+r; x++ {
		for y := c.Y - r; y <= c.Y+r; y++ {
			loc := model.C(x, y)
			if !model.InArena(loc) {
				continue
			}
			if c.Distance(loc) < radius+rangeTolerance {
				out = append(out, loc)
			}
		}
	}
	return out
}

// Structures lists every stationary unit owned by side.
func (b *Board) Structures(side model.Side) []Unit {
	var out []Unit
	for x := range b.cells {
		for y := range b.cells[x] {
			for _, u := range b.cells[x][y] {
				if u.Owner == side && u.Kind.IsStationary() {
					out = append(out, u)
				}
			}
		}
	}
	return out
}
