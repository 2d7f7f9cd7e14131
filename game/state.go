package game

import (
	"fmt"

	"github.com/eashang1/terminal-s8/model"
)

// Sender writes one protocol line. ipc.Connection satisfies it.
type Sender interface {
	Send(v any) error
}

// State is one turn's view of the match: the board, our balances and the
// build/deploy stacks we are accumulating. It is rebuilt from every deploy
// frame and discarded after Submit.
type State struct {
	turn      int
	resources model.Resources
	stats     *model.StatsTable
	board     Board
	out       Sender

	buildStack  [][3]any
	deployStack [][3]any
	submitted   bool
}

// NewState builds the turn view from a deploy frame.
func NewState(stats *model.StatsTable, frame model.TurnFrame, out Sender) (*State, error) {
	s := &State{
		turn:      frame.TurnNumber(),
		resources: frame.Resources(),
		stats:     stats,
		out:       out,
	}
	if err := s.loadUnits(frame.P1Units, model.Self); err != nil {
		return nil, fmt.Errorf("load p1Units: %w", err)
	}
	if err := s.loadUnits(frame.P2Units, model.Opponent); err != nil {
		return nil, fmt.Errorf("load p2Units: %w", err)
	}
	return s, nil
}

// Unit lists are indexed like unitInformation; the two trailing lists mark
// structures that are queued for removal or already upgraded.
func (s *State) loadUnits(lists [][]model.UnitEntry, owner model.Side) error {
	for i, entries := range lists {
		for _, e := range entries {
			loc := e.Location()
			switch {
			case i < len(model.AllUnitKinds):
				s.board.Add(Unit{
					Kind:     model.UnitKind(i),
					Owner:    owner,
					Location: loc,
					Health:   e.Health,
					ID:       e.ID,
				})
			case i == len(model.AllUnitKinds):
				if u, ok := s.board.Stationary(loc); ok {
					u.PendingRemoval = true
				}
			case i == len(model.AllUnitKinds)+1:
				if u, ok := s.board.Stationary(loc); ok {
					u.Upgraded = true
				}
			default:
				return fmt.Errorf("unexpected unit list index %d", i)
			}
		}
	}
	return nil
}

func (s *State) TurnNumber() int { return s.turn }

func (s *State) Resources() model.Resources { return s.resources }

func (s *State) Stats(kind model.UnitKind) model.UnitStats { return s.stats.Stats(kind) }

// ContainsStationaryUnit reports whether any structure occupies c.
func (s *State) ContainsStationaryUnit(c model.Coordinate) bool {
	_, ok := s.board.Stationary(c)
	return ok
}

// Attackers lists the structures not owned by side that can hit a mobile
// unit standing on c.
func (s *State) Attackers(c model.Coordinate, side model.Side) []Unit {
	var out []Unit
	for _, loc := range s.board.LocationsInRange(c, s.stats.MaxAttackRange()) {
		u, ok := s.board.Stationary(loc)
		if !ok || u.Owner == side {
			continue
		}
		st := s.stats.Stats(u.Kind)
		damage, reach := st.DamageToMobile, st.Range
		if u.Upgraded {
			damage, reach = st.UpgradedDamage, st.UpgradedRange
		}
		if damage <= 0 {
			continue
		}
		if c.Distance(loc) < reach+rangeTolerance {
			out = append(out, *u)
		}
	}
	return out
}

// AttackerCount is len(Attackers(c, side)) without the copies.
func (s *State) AttackerCount(c model.Coordinate, side model.Side) int {
	return len(s.Attackers(c, side))
}

// PathToEdge is the route a mobile unit spawned at c would take toward the
// edge opposite its quadrant. It is nil when c is occupied by a structure.
func (s *State) PathToEdge(c model.Coordinate) []model.Coordinate {
	return FindPath(c, model.EdgeLocations(model.TargetEdge(c)), s.ContainsStationaryUnit)
}

// StructureLocations lists where side's structures of the given kind stand.
func (s *State) StructureLocations(side model.Side, kind model.UnitKind) []model.Coordinate {
	var out []model.Coordinate
	for _, u := range s.board.Structures(side) {
		if u.Kind == kind {
			out = append(out, u.Location)
		}
	}
	return out
}

// CheapestStructure is the structure kind with the lowest SP cost.
func (s *State) CheapestStructure() model.UnitKind { return s.stats.CheapestStructure() }
