package model

import (
	"encoding/json"
	"fmt"
)

// Phase is the first element of turnInfo and tells the algo what kind of
// frame it is looking at.
type Phase int

const (
	PhaseDeploy      Phase = 0 // start of turn: place units and submit
	PhaseActionFrame Phase = 1 // sub-turn combat snapshot
	PhaseEndGame     Phase = 2
)

// GameConfig is the first message of a match.
type GameConfig struct {
	UnitInformation []UnitInformation `json:"unitInformation"`
	Resources       ResourceRules     `json:"resources"`
}

type UnitInformation struct {
	Shorthand          string       `json:"shorthand"`
	Display            string       `json:"display,omitempty"`
	Cost1              float64      `json:"cost1"`
	Cost2              float64      `json:"cost2"`
	AttackDamageWalker float64      `json:"attackDamageWalker"`
	AttackDamageTower  float64      `json:"attackDamageTower"`
	AttackRange        float64      `json:"attackRange"`
	StartHealth        float64      `json:"startHealth"`
	Speed              float64      `json:"speed,omitempty"`
	Upgrade            *UnitUpgrade `json:"upgrade,omitempty"`
}

// UnitUpgrade overrides base stats once a structure is upgraded. Missing
// fields keep the base value.
type UnitUpgrade struct {
	Cost1              *float64 `json:"cost1,omitempty"`
	Cost2              *float64 `json:"cost2,omitempty"`
	AttackDamageWalker *float64 `json:"attackDamageWalker,omitempty"`
	AttackRange        *float64 `json:"attackRange,omitempty"`
	StartHealth        *float64 `json:"startHealth,omitempty"`
}

type ResourceRules struct {
	TurnIntervalForBitCapSchedule int     `json:"turnIntervalForBitCapSchedule,omitempty"`
	BitsPerRound                  float64 `json:"bitsPerRound,omitempty"`
	CoresPerRound                 float64 `json:"coresPerRound,omitempty"`
	StartingHP                    float64 `json:"startingHP,omitempty"`
}

// TurnFrame is one state message. Deploy frames and action frames share the
// layout; only action frames carry meaningful events.
type TurnFrame struct {
	TurnInfo []int         `json:"turnInfo"`
	P1Stats  []float64     `json:"p1Stats"`
	P2Stats  []float64     `json:"p2Stats"`
	P1Units  [][]UnitEntry `json:"p1Units"`
	P2Units  [][]UnitEntry `json:"p2Units"`
	Events   *FrameEvents  `json:"events,omitempty"`
}

// Phase returns turnInfo[0], or PhaseDeploy when it is missing.
func (f TurnFrame) Phase() Phase {
	if len(f.TurnInfo) == 0 {
		return PhaseDeploy
	}
	return Phase(f.TurnInfo[0])
}

// TurnNumber returns turnInfo[1].
func (f TurnFrame) TurnNumber() int {
	if len(f.TurnInfo) < 2 {
		return 0
	}
	return f.TurnInfo[1]
}

// Resources returns our SP and MP balances from p1Stats.
func (f TurnFrame) Resources() Resources {
	var r Resources
	if len(f.P1Stats) > 1 {
		r.SP = f.P1Stats[1]
	}
	if len(f.P1Stats) > 2 {
		r.MP = f.P1Stats[2]
	}
	return r
}

// Health returns each player's remaining health.
func (f TurnFrame) Health() (self, opponent float64) {
	if len(f.P1Stats) > 0 {
		self = f.P1Stats[0]
	}
	if len(f.P2Stats) > 0 {
		opponent = f.P2Stats[0]
	}
	return self, opponent
}

// Resources are the acting side's two currency balances.
type Resources struct {
	SP float64 `json:"sp"`
	MP float64 `json:"mp"`
}

// UnitEntry is one [x, y, health, id] record from p1Units/p2Units.
type UnitEntry struct {
	X      int
	Y      int
	Health float64
	ID     string
}

func (u UnitEntry) Location() Coordinate { return Coordinate{X: u.X, Y: u.Y} }

func (u *UnitEntry) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode unit entry: %w", err)
	}
	if len(raw) < 2 {
		return fmt.Errorf("decode unit entry: want at least 2 fields, got %d", len(raw))
	}
	var x, y float64
	if err := json.Unmarshal(raw[0], &x); err != nil {
		return fmt.Errorf("decode unit x: %w", err)
	}
	if err := json.Unmarshal(raw[1], &y); err != nil {
		return fmt.Errorf("decode unit y: %w", err)
	}
	u.X, u.Y = int(x), int(y)
	if len(raw) > 2 {
		if err := json.Unmarshal(raw[2], &u.Health); err != nil {
			return fmt.Errorf("decode unit health: %w", err)
		}
	}
	if len(raw) > 3 {
		// IDs arrive as strings, but accept bare numbers too.
		if err := json.Unmarshal(raw[3], &u.ID); err != nil {
			var n json.Number
			if err := json.Unmarshal(raw[3], &n); err != nil {
				return fmt.Errorf("decode unit id: %w", err)
			}
			u.ID = n.String()
		}
	}
	return nil
}

// FrameEvents holds the per-frame event lists. Only breach is interpreted;
// it stays raw so malformed entries can be rejected as a whole batch.
type FrameEvents struct {
	Breach []json.RawMessage `json:"breach"`
}

// Owner flags as they appear in raw frame events. These differ from Side,
// which is the 0-based index used everywhere else.
const (
	EventOwnerSelf     = 1
	EventOwnerOpponent = 2
)

// BreachEvent is a mobile unit reaching an edge.
type BreachEvent struct {
	Location Coordinate
	Damage   float64
	Owner    int
}

// ParseBreach decodes a [location, damage, unitType, unitId, owner, ...] record.
func ParseBreach(raw json.RawMessage) (BreachEvent, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return BreachEvent{}, fmt.Errorf("decode breach: %w", err)
	}
	if len(fields) < 5 {
		return BreachEvent{}, fmt.Errorf("decode breach: want at least 5 fields, got %d", len(fields))
	}
	var ev BreachEvent
	if err := json.Unmarshal(fields[0], &ev.Location); err != nil {
		return BreachEvent{}, fmt.Errorf("decode breach location: %w", err)
	}
	// damage is informational; tolerate placeholders there
	_ = json.Unmarshal(fields[1], &ev.Damage)
	var owner float64
	if err := json.Unmarshal(fields[4], &owner); err != nil {
		return BreachEvent{}, fmt.Errorf("decode breach owner: %w", err)
	}
	ev.Owner = int(owner)
	return ev, nil
}

// ScoredByOpponent reports whether the opponent's unit caused this breach,
// i.e. we were the side that got hit.
func (b BreachEvent) ScoredByOpponent() bool { return b.Owner == EventOwnerOpponent }
