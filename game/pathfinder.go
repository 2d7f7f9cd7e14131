package game

import (
	"math"
	"slices"

	"github.com/eashang1/terminal-s8/model"
)

// Move axes remembered between steps so units zig-zag instead of running
// along one axis.
const (
	moveNone = iota
	moveHorizontal
	moveVertical
)

type pathNode struct {
	visitedIdealness bool
	visitedValidate  bool
	blocked          bool
	pathLength       int
}

// pathfinder reproduces the engine's mobile unit routing: find the most
// ideal reachable cell, build a distance field back from it, then walk
// downhill preferring to alternate axes.
type pathfinder struct {
	nodes     [model.ArenaSize][model.ArenaSize]pathNode
	endpoints []model.Coordinate
	dirX      int
	dirY      int
}

// neighbours are visited in this order; it decides ties.
func neighbours(c model.Coordinate) [4]model.Coordinate {
	return [4]model.Coordinate{c.Add(0, 1), c.Add(0, -1), c.Add(1, 0), c.Add(-1, 0)}
}

// FindPath returns the cells a mobile unit starting at start walks through
// toward endpoints, start included. It returns nil when start is blocked.
func FindPath(start model.Coordinate, endpoints []model.Coordinate, blocked func(model.Coordinate) bool) []model.Coordinate {
	if !model.InArena(start) || blocked(start) || len(endpoints) == 0 {
		return nil
	}
	p := &pathfinder{endpoints: endpoints, dirX: 1, dirY: 1}
	if endpoints[0].X < model.HalfArena {
		p.dirX = -1
	}
	if endpoints[0].Y < model.HalfArena {
		p.dirY = -1
	}
	for x := 0; x < model.ArenaSize; x++ {
		for y := 0; y < model.ArenaSize; y++ {
			c := model.C(x, y)
			p.nodes[x][y].blocked = model.InArena(c) && blocked(c)
		}
	}

	ideal := p.idealnessSearch(start)
	p.validate(ideal)
	return p.walk(start)
}

func (p *pathfinder) node(c model.Coordinate) *pathNode { return &p.nodes[c.X][c.Y] }

func (p *pathfinder) passable(c model.Coordinate) bool {
	return model.InArena(c) && !p.node(c).blocked
}

func (p *pathfinder) idealness(c model.Coordinate) int {
	if slices.Contains(p.endpoints, c) {
		return math.MaxInt
	}
	score := 0
	if p.dirY == 1 {
		score += model.ArenaSize * c.Y
	} else {
		score += model.ArenaSize * (model.ArenaSize - 1 - c.Y)
	}
	if p.dirX == 1 {
		score += c.X
	} else {
		score += model.ArenaSize - 1 - c.X
	}
	return score
}

// idealnessSearch floods from start and returns the reachable cell that is
// best by idealness: an endpoint if one is reachable, otherwise the deepest
// cell toward the target edge.
func (p *pathfinder) idealnessSearch(start model.Coordinate) model.Coordinate {
	queue := []model.Coordinate{start}
	p.node(start).visitedIdealness = true
	best := p.idealness(start)
	mostIdeal := start
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range neighbours(cur) {
			if !p.passable(n) {
				continue
			}
			if score := p.idealness(n); score > best {
				best = score
				mostIdeal = n
			}
			if !p.node(n).visitedIdealness {
				p.node(n).visitedIdealness = true
				queue = append(queue, n)
			}
		}
	}
	return mostIdeal
}

// validate builds the distance field. When the ideal cell is an endpoint
// every open endpoint is a goal; otherwise only the ideal cell is.
func (p *pathfinder) validate(ideal model.Coordinate) {
	var queue []model.Coordinate
	if slices.Contains(p.endpoints, ideal) {
		for _, e := range p.endpoints {
			if !p.passable(e) || p.node(e).visitedValidate {
				continue
			}
			p.node(e).pathLength = 0
			p.node(e).visitedValidate = true
			queue = append(queue, e)
		}
	} else {
		p.node(ideal).pathLength = 0
		p.node(ideal).visitedValidate = true
		queue = append(queue, ideal)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range neighbours(cur) {
			if !p.passable(n) || p.node(n).visitedValidate {
				continue
			}
			p.node(n).pathLength = p.node(cur).pathLength + 1
			p.node(n).visitedValidate = true
			queue = append(queue, n)
		}
	}

	for x := range p.nodes {
		for y := range p.nodes[x] {
			if !p.nodes[x][y].visitedValidate && !p.nodes[x][y].blocked {
				p.nodes[x][y].pathLength = -1
			}
		}
	}
}

func (p *pathfinder) walk(start model.Coordinate) []model.Coordinate {
	path := []model.Coordinate{start}
	cur := start
	dir := moveNone
	// a path can never be longer than the number of cells
	for steps := 0; p.node(cur).pathLength > 0 && steps < model.ArenaSize*model.ArenaSize; steps++ {
		next := p.nextMove(cur, dir)
		if next == cur {
			break
		}
		if cur.X == next.X {
			dir = moveVertical
		} else {
			dir = moveHorizontal
		}
		path = append(path, next)
		cur = next
	}
	return path
}

func (p *pathfinder) nextMove(cur model.Coordinate, prevDir int) model.Coordinate {
	best := cur
	bestLen := p.node(cur).pathLength
	for _, n := range neighbours(cur) {
		if !p.passable(n) {
			continue
		}
		l := p.node(n).pathLength
		if l < 0 || l > bestLen {
			continue
		}
		if l == bestLen && !p.betterDirection(cur, n, best, prevDir) {
			continue
		}
		best = n
		bestLen = l
	}
	return best
}

// betterDirection reports whether stepping from prev to next beats the
// current best candidate. Changing axis wins first; on the same axis the
// step toward the target edge wins.
func (p *pathfinder) betterDirection(prev, next, best model.Coordinate, prevDir int) bool {
	if prevDir == moveHorizontal && next.X != best.X {
		return prev.Y != next.Y
	}
	if prevDir == moveVertical && next.Y != best.Y {
		return prev.X != next.X
	}
	if prevDir == moveNone {
		return prev.Y != next.Y
	}

	if next.Y == best.Y {
		return (p.dirX == 1 && next.X > best.X) || (p.dirX == -1 && next.X < best.X)
	}
	if next.X == best.X {
		return (p.dirY == 1 && next.Y > best.Y) || (p.dirY == -1 && next.Y < best.Y)
	}
	return true
}
