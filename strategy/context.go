// Package strategy holds the per-turn planners: what to build, where to
// reinforce, when to attack and from where.
package strategy

import (
	"github.com/eashang1/terminal-s8/model"
	"github.com/eashang1/terminal-s8/rules"
)

// TurnContext is the read-only view of the board the planners reason over.
// game.State implements it.
type TurnContext interface {
	TurnNumber() int
	Resources() model.Resources
	Stats(kind model.UnitKind) model.UnitStats
	ContainsStationaryUnit(c model.Coordinate) bool
	// AttackerCount counts structures not owned by side that can hit c.
	AttackerCount(c model.Coordinate, side model.Side) int
	// PathToEdge is nil when c is blocked.
	PathToEdge(c model.Coordinate) []model.Coordinate
	StructureLocations(side model.Side, kind model.UnitKind) []model.Coordinate
	CheapestStructure() model.UnitKind
}

func envFor(ctx TurnContext) rules.Env {
	r := ctx.Resources()
	return rules.Env{Turn: ctx.TurnNumber(), SP: r.SP, MP: r.MP}
}
