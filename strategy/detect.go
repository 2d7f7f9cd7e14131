package strategy

import (
	"slices"

	"github.com/eashang1/terminal-s8/model"
)

// EnemyFilter narrows DetectEnemyUnits. Empty fields match everything.
type EnemyFilter struct {
	Kinds []model.UnitKind
	Xs    []int
	Ys    []int
}

// DetectEnemyUnits counts the opponent's structures matching f.
func DetectEnemyUnits(ctx TurnContext, f EnemyFilter) int {
	kinds := f.Kinds
	if len(kinds) == 0 {
		kinds = []model.UnitKind{model.Wall, model.Support, model.Turret}
	}
	total := 0
	for _, k := range kinds {
		for _, c := range ctx.StructureLocations(model.Opponent, k) {
			if len(f.Xs) > 0 && !slices.Contains(f.Xs, c.X) {
				continue
			}
			if len(f.Ys) > 0 && !slices.Contains(f.Ys, c.Y) {
				continue
			}
			total++
		}
	}
	return total
}

// FilterBlocked drops the locations already occupied by a structure.
func FilterBlocked(ctx TurnContext, locations []model.Coordinate) []model.Coordinate {
	var open []model.Coordinate
	for _, c := range locations {
		if !ctx.ContainsStationaryUnit(c) {
			open = append(open, c)
		}
	}
	return open
}
