package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/eashang1/terminal-s8/model"
)

// ErrNoBreachEvents is returned for action frames without an events.breach list.
var ErrNoBreachEvents = errors.New("action frame has no events.breach")

// BreachLog is the match-long, append-only record of where the opponent
// scored on us, in the order the breaches were reported. Entries are never
// deduplicated or dropped.
//
// It is not safe for concurrent use; the ipc read loop is its only caller.
type BreachLog struct {
	entries []model.Coordinate
}

func (l *BreachLog) Append(locs ...model.Coordinate) {
	l.entries = append(l.entries, locs...)
}

// All returns a copy of the log, oldest first.
func (l *BreachLog) All() []model.Coordinate {
	return slices.Clone(l.entries)
}

// Since returns a copy of the entries from index n on.
func (l *BreachLog) Since(n int) []model.Coordinate {
	if n >= len(l.entries) {
		return nil
	}
	return slices.Clone(l.entries[max(n, 0):])
}

func (l *BreachLog) Len() int { return len(l.entries) }

type actionFrame struct {
	Events *model.FrameEvents `json:"events"`
}

// ParseBreaches returns the locations the opponent scored on us from one
// action frame. Any malformed entry fails the whole batch.
func ParseBreaches(raw []byte) ([]model.Coordinate, error) {
	var f actionFrame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("unmarshal action frame: %w", err)
	}
	if f.Events == nil || f.Events.Breach == nil {
		return nil, ErrNoBreachEvents
	}
	var locs []model.Coordinate
	for i, entry := range f.Events.Breach {
		ev, err := model.ParseBreach(entry)
		if err != nil {
			return nil, fmt.Errorf("breach %d: %w", i, err)
		}
		if ev.ScoredByOpponent() {
			locs = append(locs, ev.Location)
		}
	}
	return locs, nil
}
