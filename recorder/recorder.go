// Package recorder keeps a per-match log of what the bot decided each turn.
package recorder

import (
	"context"

	"github.com/eashang1/terminal-s8/model"
)

// Recorder is called only at turn boundaries, never from the action-frame
// path.
type Recorder interface {
	StartMatch(ctx context.Context) error
	RecordTurn(ctx context.Context, t TurnSummary) error
	EndMatch(ctx context.Context, r Result) error
	Close() error
}

// TurnSummary is what one turn decided and what it cost.
type TurnSummary struct {
	Turn      int
	Resources model.Resources
	Intents   []model.Intent
	Accepted  int
	// Breaches lists the breaches recorded since the previous turn.
	Breaches []model.Coordinate
}

// Result is the state of play when the match ended.
type Result struct {
	Turn           int
	Health         float64
	OpponentHealth float64
}

// Noop discards everything. It is used when recording is disabled.
type Noop struct{}

func (Noop) StartMatch(context.Context) error { return nil }
func (Noop) RecordTurn(context.Context, TurnSummary) error { return nil }
func (Noop) EndMatch(context.Context, Result) error { return nil }
func (Noop) Close() error { return nil }
