package strategy

import (
	"slices"

	"github.com/eashang1/terminal-s8/model"
	"github.com/eashang1/terminal-s8/rules"
)

// Reinforcement places turrets one row behind the cells where the opponent
// broke through.
type Reinforcement struct {
	after      int
	exclusions []model.Coordinate
	limit      int
}

// NewReinforcement reads the activation turn and the reserved cells from the
// doctrine. A positive historyLimit walks only that many recent breaches.
func NewReinforcement(d rules.Doctrine, historyLimit int) *Reinforcement {
	d.Validate()
	return &Reinforcement{
		after:      d.ReinforceAfter,
		exclusions: slices.Clone(d.ReinforceExclusions),
		limit:      max(historyLimit, 0),
	}
}

// PlanReinforcement walks history newest first and asks for an upgraded
// turret at (x, y+1) of each breach, skipping reserved cells. Repeated
// breaches produce repeated intents; the transaction layer rejects the
// duplicates.
func (r *Reinforcement) PlanReinforcement(ctx TurnContext, history []model.Coordinate) []model.Intent {
	if ctx.TurnNumber() <= r.after {
		return nil
	}
	var intents []model.Intent
	walked := 0
	for i := len(history) - 1; i >= 0; i-- {
		if r.limit > 0 && walked == r.limit {
			break
		}
		walked++
		target := history[i].Add(0, 1)
		if slices.Contains(r.exclusions, target) {
			continue
		}
		intents = append(intents, model.Spawn(model.Turret, 1, target), model.Upgrade(target))
	}
	return intents
}
