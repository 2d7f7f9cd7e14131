package strategy

import (
	"github.com/eashang1/terminal-s8/model"
	"github.com/eashang1/terminal-s8/rules"
)

// Placement turns the compiled build rules into this turn's defensive intents.
type Placement struct {
	engine *rules.Engine
}

func NewPlacement(engine *rules.Engine) *Placement {
	return &Placement{engine: engine}
}

// PlanDefenses returns the intents of every build rule whose turn gate holds.
// The result depends only on ctx, so calling it twice yields the same list.
func (p *Placement) PlanDefenses(ctx TurnContext) []model.Intent {
	return p.engine.Evaluate(envFor(ctx))
}

// Rules lists the build rules in evaluation order.
func (p *Placement) Rules() []string {
	return p.engine.Names()
}
