package model

// The board is a 28x28 diamond. Each player owns the half with y < 14 (us)
// or y >= 14 (opponent).
const (
	ArenaSize = 28
	HalfArena = ArenaSize / 2
)

// Edge names one of the four diagonal borders of the diamond.
type Edge int

const (
	TopRight Edge = iota
	TopLeft
	BottomLeft
	BottomRight
)

func (e Edge) String() string {
	switch e {
	case TopRight:
		return "top_right"
	case TopLeft:
		return "top_left"
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	}
	return "unknown"
}

// InArena reports whether c lies inside the diamond.
func InArena(c Coordinate) bool {
	x, y := c.X, c.Y
	if y < 0 || y >= ArenaSize {
		return false
	}
	var rowSize int
	if y < HalfArena {
		rowSize = y + 1
	} else {
		rowSize = ArenaSize - y
	}
	startX := HalfArena - rowSize
	endX := startX + 2*rowSize - 1
	return x >= startX && x <= endX
}

// OnOwnHalf reports whether c is on the half belonging to side.
func OnOwnHalf(c Coordinate, side Side) bool {
	if side == Self {
		return c.Y < HalfArena
	}
	return c.Y >= HalfArena
}

// EdgeLocations returns the 14 cells along e, ordered from the centre outward.
func EdgeLocations(e Edge) []Coordinate {
	out := make([]Coordinate, 0, HalfArena)
	for n := 0; n < HalfArena; n++ {
		var c Coordinate
		switch e {
		case TopRight:
			c = Coordinate{X: HalfArena + n, Y: ArenaSize - 1 - n}
		case TopLeft:
			c = Coordinate{X: HalfArena - 1 - n, Y: ArenaSize - 1 - n}
		case BottomLeft:
			c = Coordinate{X: HalfArena - 1 - n, Y: n}
		case BottomRight:
			c = Coordinate{X: HalfArena + n, Y: n}
		}
		out = append(out, c)
	}
	return out
}

// TargetEdge is the edge a mobile unit starting at c walks toward: the one
// diagonally opposite the quadrant it starts in.
func TargetEdge(c Coordinate) Edge {
	left := c.X < HalfArena
	bottom := c.Y < HalfArena
	switch {
	case left && bottom:
		return TopRight
	case left:
		return BottomRight
	case bottom:
		return TopLeft
	default:
		return BottomLeft
	}
}

// OnEdge reports whether c lies on any of the given edges.
func OnEdge(c Coordinate, edges ...Edge) bool {
	for _, e := range edges {
		for _, loc := range EdgeLocations(e) {
			if loc == c {
				return true
			}
		}
	}
	return false
}
