package strategy

import (
	"errors"

	"github.com/eashang1/terminal-s8/model"
)

var (
	// ErrNoCandidates is returned when there is nothing to choose from.
	ErrNoCandidates = errors.New("no candidate locations")
	// ErrNoPath is returned when every candidate is blocked.
	ErrNoPath = errors.New("no candidate has a path")
)

// PathDamage estimates what a mobile unit launched from start would suffer:
// for each cell on its path, the number of enemy structures in range times a
// turret's damage against mobile units. ok is false when start is blocked.
func PathDamage(ctx TurnContext, start model.Coordinate) (damage float64, ok bool) {
	path := ctx.PathToEdge(start)
	if len(path) == 0 {
		return 0, false
	}
	perHit := ctx.Stats(model.Turret).DamageToMobile
	for _, c := range path {
		damage += float64(ctx.AttackerCount(c, model.Self)) * perHit
	}
	return damage, true
}

// LeastDamageLocation returns the candidate with the smallest PathDamage.
// Ties go to the earlier candidate.
func LeastDamageLocation(ctx TurnContext, candidates []model.Coordinate) (model.Coordinate, error) {
	if len(candidates) == 0 {
		return model.Coordinate{}, ErrNoCandidates
	}
	var (
		best      model.Coordinate
		bestScore float64
		found     bool
	)
	for _, c := range candidates {
		score, ok := PathDamage(ctx, c)
		if !ok {
			continue
		}
		if !found || score < bestScore {
			best, bestScore, found = c, score, true
		}
	}
	if !found {
		return model.Coordinate{}, ErrNoPath
	}
	return best, nil
}
