package strategy

import (
	"context"
	"errors"
	"log/slog"

	"github.com/eashang1/terminal-s8/model"
	"github.com/eashang1/terminal-s8/rules"
)

// OffenseOptions switches the optional wave behaviours on.
type OffenseOptions struct {
	// RouteThroughEstimator sends each wave from the least damaging open
	// lane instead of its fixed lane.
	RouteThroughEstimator bool
	DemolisherLine        DemolisherLineOptions
}

// DemolisherLineOptions replaces a wave with a wall line and demolishers
// when the opponent stacks its front rows.
type DemolisherLineOptions struct {
	Enabled   bool
	Threshold int
}

// Where the demolisher line goes. The wall row keeps demolishers at range
// from the opponent's two front rows.
var (
	enemyFrontRows     = []int{model.HalfArena, model.HalfArena + 1}
	demolisherLineY    = 11
	demolisherLineFrom = 27
	demolisherLineTo   = 6
	demolisherPost     = model.C(24, 10)
)

// Offense decides when scout waves go out and from where.
type Offense struct {
	engine *rules.Engine
	lanes  []model.Coordinate
	opts   OffenseOptions
}

// NewOffense builds the scheduler over compiled wave rules. lanes are the
// launch cells the estimator may choose between.
func NewOffense(engine *rules.Engine, lanes []model.Coordinate, opts OffenseOptions) *Offense {
	return &Offense{engine: engine, lanes: lanes, opts: opts}
}

// PlanOffense returns the wave intents for this turn, or nil off-cadence.
func (o *Offense) PlanOffense(ctx TurnContext) []model.Intent {
	intents := o.engine.Evaluate(envFor(ctx))
	if len(intents) == 0 {
		return nil
	}

	if dl := o.opts.DemolisherLine; dl.Enabled {
		front := DetectEnemyUnits(ctx, EnemyFilter{Ys: enemyFrontRows})
		if front > dl.Threshold {
			slog.Info("enemy front is stacked, building demolisher line", "turn", ctx.TurnNumber(), "structures", front)
			return demolisherLine(ctx)
		}
	}

	if o.opts.RouteThroughEstimator {
		o.route(ctx, intents)
	}
	return intents
}

// route rewrites each mobile spawn to launch from the safest open lane.
// Intents keep their fixed lane when no lane can be scored.
func (o *Offense) route(ctx TurnContext, intents []model.Intent) {
	open := FilterBlocked(ctx, o.lanes)
	pick, err := LeastDamageLocation(ctx, open)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, ErrNoCandidates) {
			level = slog.LevelDebug
		}
		slog.Log(context.Background(), level, "keeping fixed lanes", "turn", ctx.TurnNumber(), "error", err)
		return
	}
	for i := range intents {
		if intents[i].Action != model.ActionSpawn || intents[i].Unit.IsStationary() {
			continue
		}
		intents[i].Locations = []model.Coordinate{pick}
	}
}

func demolisherLine(ctx TurnContext) []model.Intent {
	line := make([]model.Coordinate, 0, demolisherLineFrom-demolisherLineTo+1)
	for x := demolisherLineFrom; x >= demolisherLineTo; x-- {
		line = append(line, model.C(x, demolisherLineY))
	}
	return []model.Intent{
		model.Spawn(ctx.CheapestStructure(), 1, line...),
		model.Spawn(model.Demolisher, model.AsManyAsAffordable, demolisherPost),
	}
}
