package rules

import (
	"fmt"

	"github.com/eashang1/terminal-s8/model"
)

// CompileDoctrine generates the placement rule set from a doctrine.
// Rules are ordered cheapest and most defensive first, so when resources run
// short the transaction layer drops expansion before core defense.
// All conditions are built via fmt.Sprintf with interpolated values, so the
// compiler never generates invalid expr.
func CompileDoctrine(d Doctrine) []*Rule {
	d.Validate()
	var rules []*Rule

	rules = append(rules, &Rule{
		Name:         "base-defenses",
		Priority:     700,
		ConditionSrc: `true`,
		Intents: []model.Intent{
			model.Spawn(model.Turret, 1, d.BaseTurrets...),
			model.Spawn(model.Wall, 1, d.BaseWalls...),
			model.Upgrade(d.BaseTurrets...),
			model.Upgrade(d.BaseWalls...),
		},
	})

	// Residue 0 is excluded by "> 1", which keeps this disjoint from
	// open-chokepoint except where the early-game range overlaps it
	// (turns 7 and 14 with the default doctrine). That overlap is kept as is.
	rules = append(rules, &Rule{
		Name:         "seal-chokepoint",
		Priority:     600,
		ConditionSrc: fmt.Sprintf(`Turn %% %d > 1 || Between(%d, %d)`, d.Cadence, d.ChokepointSealFrom, d.ChokepointSealUntil),
		Intents: []model.Intent{
			model.Spawn(model.Wall, 1, d.Chokepoint...),
			model.Upgrade(d.Chokepoint...),
		},
	})

	rules = append(rules, &Rule{
		Name:         "open-chokepoint",
		Priority:     500,
		ConditionSrc: fmt.Sprintf(`Every(%d, 0) && Turn > 1`, d.Cadence),
		Intents: []model.Intent{
			model.Remove(d.Chokepoint...),
		},
	})

	rules = append(rules, &Rule{
		Name:         "support-cluster",
		Priority:     400,
		ConditionSrc: fmt.Sprintf(`Turn > %d`, d.SupportClusterAfter),
		Intents: []model.Intent{
			model.Spawn(model.Support, 1, d.SupportCluster...),
			model.Upgrade(d.SupportCluster...),
		},
	})

	rules = append(rules, &Rule{
		Name:         "interceptor-stall",
		Priority:     300,
		ConditionSrc: fmt.Sprintf(`Turn > %d && Every(%d, 1)`, d.InterceptorsAfter, d.Cadence),
		Intents: []model.Intent{
			model.Spawn(model.Interceptor, d.InterceptorCount, d.InterceptorPost),
		},
	})

	battery := make([]model.Intent, 0, 2*len(d.ShieldBattery))
	for _, c := range d.ShieldBattery {
		battery = append(battery, model.Spawn(model.Support, 1, c), model.Upgrade(c))
	}
	rules = append(rules, &Rule{
		Name:         "shield-battery",
		Priority:     200,
		ConditionSrc: fmt.Sprintf(`Turn > %d`, d.ShieldBatteryAfter),
		Intents:      battery,
	})

	rules = append(rules, &Rule{
		Name:         "expansion",
		Priority:     100,
		ConditionSrc: fmt.Sprintf(`Turn > %d`, d.ExpansionAfter),
		Intents: []model.Intent{
			model.Spawn(model.Turret, 1, d.ExpandedTurrets...),
			model.Spawn(model.Wall, 1, d.ExpandedWalls...),
			model.Upgrade(d.ExpandedTurrets...),
			model.Upgrade(d.ExpandedWalls...),
		},
	})

	return rules
}

// CompileOffense generates the scout wave rules. Both waves share the
// cadence gate; the forward wave only joins late in the match.
func CompileOffense(d Doctrine) []*Rule {
	d.Validate()
	return []*Rule{
		{
			Name:         "forward-wave",
			Priority:     200,
			ConditionSrc: fmt.Sprintf(`Every(%d, 1) && Turn > %d`, d.Cadence, d.ForwardWaveAfter),
			Intents: []model.Intent{
				model.Spawn(model.Scout, model.AsManyAsAffordable, d.ForwardLane),
			},
		},
		{
			Name:         "main-wave",
			Priority:     100,
			ConditionSrc: fmt.Sprintf(`Every(%d, 1)`, d.Cadence),
			Intents: []model.Intent{
				model.Spawn(model.Scout, model.AsManyAsAffordable, d.MainLane),
			},
		},
	}
}
