package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/eashang1/terminal-s8/model"
)

// ErrTurnSubmitted is returned by Submit when the turn was already sent.
var ErrTurnSubmitted = errors.New("turn already submitted")

// ownEdges are where our mobile units may be deployed.
var ownEdges = []model.Edge{model.BottomLeft, model.BottomRight}

// maxPerLocation bounds an AsManyAsAffordable spawn in case a unit is free.
const maxPerLocation = 1000

func (s *State) canAfford(c model.Cost) bool {
	return s.resources.SP >= c.SP && s.resources.MP >= c.MP
}

func (s *State) debit(c model.Cost) {
	s.resources.SP -= c.SP
	s.resources.MP -= c.MP
}

// CanSpawn reports whether one unit of kind can be placed at c right now.
func (s *State) CanSpawn(kind model.UnitKind, c model.Coordinate) bool {
	if s.submitted || !slices.Contains(model.AllUnitKinds, kind) {
		return false
	}
	if !model.InArena(c) || !model.OnOwnHalf(c, model.Self) {
		return false
	}
	if !s.canAfford(s.stats.Stats(kind).Cost) {
		return false
	}
	if s.ContainsStationaryUnit(c) {
		return false
	}
	if kind.IsStationary() {
		return len(s.board.UnitsAt(c)) == 0
	}
	return model.OnEdge(c, ownEdges...)
}

// Spawn places up to count units of kind at each location and returns how
// many were accepted. A location stops taking units at the first rejection.
func (s *State) Spawn(kind model.UnitKind, count int, at ...model.Coordinate) int {
	spawned := 0
	for _, c := range at {
		limit := count
		if count == model.AsManyAsAffordable {
			limit = maxPerLocation
		}
		for i := 0; i < limit; i++ {
			if !s.CanSpawn(kind, c) {
				break
			}
			st := s.stats.Stats(kind)
			s.debit(st.Cost)
			s.board.Add(Unit{Kind: kind, Owner: model.Self, Location: c, Health: st.Health})
			entry := [3]any{st.Shorthand, c.X, c.Y}
			if kind.IsStationary() {
				s.buildStack = append(s.buildStack, entry)
			} else {
				s.deployStack = append(s.deployStack, entry)
			}
			spawned++
		}
	}
	return spawned
}

// Upgrade queues upgrades for our un-upgraded structures at the locations.
func (s *State) Upgrade(at ...model.Coordinate) int {
	upgraded := 0
	for _, c := range at {
		u, ok := s.board.Stationary(c)
		if s.submitted || !ok || u.Owner != model.Self || u.Upgraded {
			continue
		}
		st := s.stats.Stats(u.Kind)
		if !st.Upgradable || !s.canAfford(st.UpgradeCost) {
			continue
		}
		s.debit(st.UpgradeCost)
		u.Upgraded = true
		s.buildStack = append(s.buildStack, [3]any{s.stats.UpgradeShorthand(), c.X, c.Y})
		upgraded++
	}
	return upgraded
}

// Remove queues removal of our structures at the locations. Removal takes
// effect at the end of the following action phase.
func (s *State) Remove(at ...model.Coordinate) int {
	removed := 0
	for _, c := range at {
		u, ok := s.board.Stationary(c)
		if s.submitted || !ok || u.Owner != model.Self || u.PendingRemoval {
			continue
		}
		u.PendingRemoval = true
		s.buildStack = append(s.buildStack, [3]any{s.stats.RemoveShorthand(), c.X, c.Y})
		removed++
	}
	return removed
}

// Apply carries out one intent and returns the accepted count. Invalid or
// unaffordable requests are dropped silently.
func (s *State) Apply(in model.Intent) int {
	switch in.Action {
	case model.ActionSpawn:
		count := in.Count
		if count == 0 || count < model.AsManyAsAffordable {
			count = 1
		}
		return s.Spawn(in.Unit, count, in.Locations...)
	case model.ActionUpgrade:
		return s.Upgrade(in.Locations...)
	case model.ActionRemove:
		return s.Remove(in.Locations...)
	}
	return 0
}

// Submit sends the build stack then the deploy stack. After it returns no
// further placements are accepted this turn.
func (s *State) Submit() error {
	if s.submitted {
		return ErrTurnSubmitted
	}
	s.submitted = true
	if s.out == nil {
		return errors.New("submit: no output configured")
	}
	if err := s.out.Send(stackOrEmpty(s.buildStack)); err != nil {
		return fmt.Errorf("send build stack: %w", err)
	}
	if err := s.out.Send(stackOrEmpty(s.deployStack)); err != nil {
		return fmt.Errorf("send deploy stack: %w", err)
	}
	return nil
}

// stackOrEmpty keeps an empty stack encoding as [] rather than null.
func stackOrEmpty(stack [][3]any) [][3]any {
	if stack == nil {
		return [][3]any{}
	}
	return stack
}

// BuildStack returns the structure placements, upgrades and removals queued so far.
func (s *State) BuildStack() [][3]any { return slices.Clone(s.buildStack) }

// DeployStack returns the mobile unit deployments queued so far.
func (s *State) DeployStack() [][3]any { return slices.Clone(s.deployStack) }
