package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eashang1/terminal-s8/game"
	"github.com/eashang1/terminal-s8/ipc"
	"github.com/eashang1/terminal-s8/model"
	"github.com/eashang1/terminal-s8/recorder"
)

var _ Turn = (*game.State)(nil)

// ErrNoConfig is returned for frames that arrive before the match config.
var ErrNoConfig = errors.New("no match config received")

// Agent plays one match: it turns engine messages into orchestrator calls
// and writes the results back through out.
type Agent struct {
	out          game.Sender
	orchestrator *Orchestrator
	recorder     recorder.Recorder
	stats        *model.StatsTable
}

func New(out game.Sender, o *Orchestrator, rec recorder.Recorder) *Agent {
	if rec == nil {
		rec = recorder.Noop{}
	}
	return &Agent{out: out, orchestrator: o, recorder: rec}
}

// Register wires the agent's handlers onto the connection.
func (a *Agent) Register(c *ipc.Connection) {
	c.RegisterHandler(ipc.TypeConfig, a.HandleConfig)
	c.RegisterHandler(ipc.TypeTurn, a.HandleTurn)
	c.RegisterHandler(ipc.TypeActionFrame, a.HandleActionFrame)
	c.RegisterHandler(ipc.TypeEndGame, a.HandleEndGame)
}

// HandleConfig resolves the unit stats for the match.
func (a *Agent) HandleConfig(ctx context.Context, env ipc.Envelope) error {
	var cfg model.GameConfig
	if err := json.Unmarshal(env.Data, &cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	stats, err := model.NewStatsTable(cfg)
	if err != nil {
		return fmt.Errorf("build stats table: %w", err)
	}
	a.stats = stats

	for _, k := range model.AllUnitKinds {
		st := stats.Stats(k)
		slog.Debug("unit stats", "kind", k, "shorthand", st.Shorthand, "sp", st.Cost.SP, "mp", st.Cost.MP,
			"damage", st.DamageToMobile, "range", st.Range)
	}
	slog.Info("match config received", "units", len(cfg.UnitInformation))

	if err := a.recorder.StartMatch(ctx); err != nil {
		slog.Warn("recorder failed to start match", "error", err)
	}
	return nil
}

// HandleTurn plays one deploy phase.
func (a *Agent) HandleTurn(ctx context.Context, env ipc.Envelope) error {
	if a.stats == nil {
		return ErrNoConfig
	}
	var frame model.TurnFrame
	if err := json.Unmarshal(env.Data, &frame); err != nil {
		return fmt.Errorf("unmarshal turn frame: %w", err)
	}
	state, err := game.NewState(a.stats, frame, a.out)
	if err != nil {
		return fmt.Errorf("build turn state: %w", err)
	}

	report, err := a.orchestrator.RunTurn(ctx, state)
	if err != nil {
		return err
	}

	err = a.recorder.RecordTurn(ctx, recorder.TurnSummary{
		Turn:      report.Turn,
		Resources: report.Resources,
		Intents:   report.Intents,
		Accepted:  report.Accepted,
		Breaches:  report.NewBreaches,
	})
	if err != nil {
		slog.Warn("recorder failed to record turn", "turn", report.Turn, "error", err)
	}
	return nil
}

// HandleActionFrame feeds the breach log. It must stay cheap: the engine
// sends many action frames per turn.
func (a *Agent) HandleActionFrame(ctx context.Context, env ipc.Envelope) error {
	return a.orchestrator.OnActionFrame(ctx, env.Data)
}

// HandleEndGame closes out the match record.
func (a *Agent) HandleEndGame(ctx context.Context, env ipc.Envelope) error {
	var frame model.TurnFrame
	if err := json.Unmarshal(env.Data, &frame); err != nil {
		return fmt.Errorf("unmarshal end frame: %w", err)
	}
	self, opponent := frame.Health()
	slog.Info("match over", "turn", frame.TurnNumber(), "health", self, "opponent_health", opponent,
		"breaches", len(a.orchestrator.Breaches()))

	err := a.recorder.EndMatch(ctx, recorder.Result{Turn: frame.TurnNumber(), Health: self, OpponentHealth: opponent})
	if err != nil {
		return fmt.Errorf("record match end: %w", err)
	}
	return nil
}
