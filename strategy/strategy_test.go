package strategy

import (
	"github.com/eashang1/terminal-s8/model"
	"github.com/eashang1/terminal-s8/rules"
)

// fakeContext is a hand-built board. Paths default to the start cell alone.
type fakeContext struct {
	turn       int
	resources  model.Resources
	blocked    map[model.Coordinate]bool
	attackers  map[model.Coordinate]int
	paths      map[model.Coordinate][]model.Coordinate
	structures map[model.UnitKind][]model.Coordinate
	cheapest   model.UnitKind
}

func (f *fakeContext) TurnNumber() int            { return f.turn }
func (f *fakeContext) Resources() model.Resources { return f.resources }

func (f *fakeContext) Stats(kind model.UnitKind) model.UnitStats {
	if kind == model.Turret {
		return model.UnitStats{Kind: kind, DamageToMobile: 5}
	}
	return model.UnitStats{Kind: kind}
}

func (f *fakeContext) ContainsStationaryUnit(c model.Coordinate) bool { return f.blocked[c] }

func (f *fakeContext) AttackerCount(c model.Coordinate, side model.Side) int {
	if side != model.Self {
		return 0
	}
	return f.attackers[c]
}

func (f *fakeContext) PathToEdge(c model.Coordinate) []model.Coordinate {
	if f.blocked[c] {
		return nil
	}
	if p, ok := f.paths[c]; ok {
		return p
	}
	return []model.Coordinate{c}
}

func (f *fakeContext) StructureLocations(side model.Side, kind model.UnitKind) []model.Coordinate {
	if side != model.Opponent {
		return nil
	}
	return f.structures[kind]
}

func (f *fakeContext) CheapestStructure() model.UnitKind { return f.cheapest }

func mustEngine(rs []*rules.Rule) *rules.Engine {
	e, err := rules.NewEngine(rs)
	if err != nil {
		panic(err)
	}
	return e
}

func hasIntent(intents []model.Intent, action model.Action, kind model.UnitKind, at model.Coordinate) bool {
	for _, in := range intents {
		if in.Action != action || (action == model.ActionSpawn && in.Unit != kind) {
			continue
		}
		for _, c := range in.Locations {
			if c == at {
				return true
			}
		}
	}
	return false
}

func countSpawns(intents []model.Intent, kind model.UnitKind) int {
	n := 0
	for _, in := range intents {
		if in.Action == model.ActionSpawn && in.Unit == kind {
			n++
		}
	}
	return n
}
