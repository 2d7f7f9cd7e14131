package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// Coordinate identifies one board cell. It is comparable, so it can key maps
// and be compared with ==.
type Coordinate struct {
	X int
	Y int
}

// C is shorthand for building coordinate tables.
func C(x, y int) Coordinate { return Coordinate{X: x, Y: y} }

func (c Coordinate) String() string { return fmt.Sprintf("[%d, %d]", c.X, c.Y) }

// Add offsets c by (dx, dy).
func (c Coordinate) Add(dx, dy int) Coordinate { return Coordinate{X: c.X + dx, Y: c.Y + dy} }

// Distance is the euclidean distance between two cells.
func (c Coordinate) Distance(o Coordinate) float64 {
	return math.Hypot(float64(c.X-o.X), float64(c.Y-o.Y))
}

// MarshalJSON encodes the coordinate as the [x, y] pair used on the wire.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.X, c.Y})
}

// UnmarshalJSON accepts [x, y]. The engine sometimes sends floats, so values
// are decoded as numbers and truncated.
func (c *Coordinate) UnmarshalJSON(b []byte) error {
	var pair []float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("decode coordinate: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode coordinate: want 2 values, got %d", len(pair))
	}
	c.X, c.Y = int(pair[0]), int(pair[1])
	return nil
}

// Coordinates builds a slice from flat x, y pairs.
func Coordinates(pairs ...[2]int) []Coordinate {
	out := make([]Coordinate, len(pairs))
	for i, p := range pairs {
		out[i] = Coordinate{X: p[0], Y: p[1]}
	}
	return out
}
