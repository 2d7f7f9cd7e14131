package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/eashang1/terminal-s8/model"
	"github.com/eashang1/terminal-s8/strategy"
)

// ErrTurnPlayed is returned when RunTurn is asked to play a turn twice.
var ErrTurnPlayed = errors.New("turn already played")

// Transactor applies intents and submits the turn. game.State implements it.
type Transactor interface {
	// Apply returns how many units the intent placed, upgraded or removed.
	Apply(in model.Intent) int
	Submit() error
}

// Turn is everything RunTurn needs: a board to plan against and a
// transaction to apply the plan to.
type Turn interface {
	strategy.TurnContext
	Transactor
}

// Planners are the three per-turn planners, run in this order.
type Planners struct {
	Placement     *strategy.Placement
	Reinforcement *strategy.Reinforcement
	Offense       *strategy.Offense
}

// TurnReport is what one RunTurn decided.
type TurnReport struct {
	Turn      int
	Resources model.Resources
	Intents   []model.Intent
	Accepted  int
	// NewBreaches are the log entries added since the previous turn.
	NewBreaches []model.Coordinate
}

// Orchestrator sequences the planners each turn and owns the breach log.
type Orchestrator struct {
	planners Planners
	breaches BreachLog
	metrics  *metrics

	reported   int
	lastTurn   int
	playedOnce bool
}

func NewOrchestrator(p Planners) (*Orchestrator, error) {
	if p.Placement == nil || p.Reinforcement == nil || p.Offense == nil {
		return nil, errors.New("orchestrator needs all three planners")
	}
	m, err := newMetrics()
	if err != nil {
		return nil, err
	}
	return &Orchestrator{planners: p, metrics: m}, nil
}

// Breaches returns a copy of the breach log.
func (o *Orchestrator) Breaches() []model.Coordinate { return o.breaches.All() }

// OnActionFrame appends the opponent's breaches from one action frame. A
// malformed frame is dropped whole and the log is left untouched.
func (o *Orchestrator) OnActionFrame(ctx context.Context, raw []byte) error {
	locs, err := ParseBreaches(raw)
	if err != nil {
		o.metrics.dropped.Add(ctx, 1)
		return fmt.Errorf("drop action frame: %w", err)
	}
	if len(locs) == 0 {
		return nil
	}
	o.breaches.Append(locs...)
	o.metrics.breaches.Add(ctx, int64(len(locs)))
	for _, c := range locs {
		slog.Debug("scored on", "location", c, "total", o.breaches.Len())
	}
	return nil
}

// RunTurn plans defenses, reinforcement and offense, applies every intent
// and submits. When ctx is cancelled before submission nothing is sent.
func (o *Orchestrator) RunTurn(ctx context.Context, t Turn) (TurnReport, error) {
	turn := t.TurnNumber()
	if o.playedOnce && turn == o.lastTurn {
		return TurnReport{}, fmt.Errorf("%w: %d", ErrTurnPlayed, turn)
	}
	o.playedOnce, o.lastTurn = true, turn

	report := TurnReport{Turn: turn, Resources: t.Resources()}
	stages := []struct {
		name string
		plan func() []model.Intent
	}{
		{"placement", func() []model.Intent { return o.planners.Placement.PlanDefenses(t) }},
		{"reinforcement", func() []model.Intent {
			return o.planners.Reinforcement.PlanReinforcement(t, o.breaches.All())
		}},
		{"offense", func() []model.Intent { return o.planners.Offense.PlanOffense(t) }},
	}
	for _, stage := range stages {
		intents := stage.plan()
		accepted := 0
		for _, in := range intents {
			accepted += t.Apply(in)
		}
		attrs := metric.WithAttributes(attribute.String("planner", stage.name))
		o.metrics.intents.Add(ctx, int64(len(intents)), attrs)
		o.metrics.accepted.Add(ctx, int64(accepted), attrs)
		report.Intents = append(report.Intents, intents...)
		report.Accepted += accepted
	}

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("turn %d abandoned: %w", turn, err)
	}
	if err := t.Submit(); err != nil {
		return report, fmt.Errorf("submit turn %d: %w", turn, err)
	}

	report.NewBreaches = o.breaches.Since(o.reported)
	o.reported = o.breaches.Len()
	slog.Info("turn submitted",
		"turn", turn,
		"sp", report.Resources.SP,
		"mp", report.Resources.MP,
		"intents", len(report.Intents),
		"accepted", report.Accepted,
		"breaches", o.breaches.Len(),
	)
	return report, nil
}
