package strategy

import (
	"slices"
	"testing"

	"github.com/eashang1/terminal-s8/model"
	"github.com/eashang1/terminal-s8/rules"
)

func TestPlanReinforcementInactiveEarly(t *testing.T) {
	r := NewReinforcement(rules.DefaultDoctrine(), 0)
	history := model.Coordinates([2]int{5, 8}, [2]int{20, 6}, [2]int{5, 8})
	for turn := 0; turn <= 5; turn++ {
		if got := r.PlanReinforcement(&fakeContext{turn: turn}, history); len(got) != 0 {
			t.Errorf("turn %d: got %d intents, want 0", turn, len(got))
		}
	}
	if got := r.PlanReinforcement(&fakeContext{turn: 6}, history); len(got) == 0 {
		t.Error("turn 6: expected reinforcement")
	}
}

func TestPlanReinforcementExclusions(t *testing.T) {
	r := NewReinforcement(rules.DefaultDoctrine(), 0)
	ctx := &fakeContext{turn: 10}

	// (11,3) and (16,3) are both reserved launch cells.
	if got := r.PlanReinforcement(ctx, model.Coordinates([2]int{11, 2}, [2]int{16, 2})); len(got) != 0 {
		t.Errorf("reserved cells targeted: %v", got)
	}

	got := r.PlanReinforcement(ctx, model.Coordinates([2]int{11, 2}, [2]int{5, 8}, [2]int{16, 2}))
	want := []model.Intent{
		model.Spawn(model.Turret, 1, model.C(5, 9)),
		model.Upgrade(model.C(5, 9)),
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i].String() != want[i].String() {
			t.Errorf("intent %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPlanReinforcementNewestFirst(t *testing.T) {
	r := NewReinforcement(rules.DefaultDoctrine(), 0)
	history := model.Coordinates([2]int{1, 12}, [2]int{20, 6}, [2]int{1, 12})
	got := r.PlanReinforcement(&fakeContext{turn: 9}, history)

	var targets []model.Coordinate
	for _, in := range got {
		if in.Action == model.ActionSpawn {
			targets = append(targets, in.Locations[0])
		}
	}
	want := model.Coordinates([2]int{1, 13}, [2]int{20, 7}, [2]int{1, 13})
	if !slices.Equal(targets, want) {
		t.Errorf("targets = %v, want %v", targets, want)
	}
	if !slices.Equal(history, model.Coordinates([2]int{1, 12}, [2]int{20, 6}, [2]int{1, 12})) {
		t.Errorf("history was modified: %v", history)
	}
}

func TestPlanReinforcementHistoryLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, 8},
		{-3, 8},
		{1, 2},
		{3, 6},
		{10, 8},
	}
	history := model.Coordinates([2]int{1, 12}, [2]int{2, 11}, [2]int{3, 10}, [2]int{4, 9})
	for _, tc := range tests {
		r := NewReinforcement(rules.DefaultDoctrine(), tc.limit)
		if got := r.PlanReinforcement(&fakeContext{turn: 30}, history); len(got) != tc.want {
			t.Errorf("limit %d: got %d intents, want %d", tc.limit, len(got), tc.want)
		}
	}
}

func TestPlanReinforcementLimitCountsExcluded(t *testing.T) {
	r := NewReinforcement(rules.DefaultDoctrine(), 1)
	// The newest breach maps to a reserved cell, so nothing is left to place.
	history := model.Coordinates([2]int{4, 9}, [2]int{16, 2})
	if got := r.PlanReinforcement(&fakeContext{turn: 30}, history); len(got) != 0 {
		t.Errorf("got %v, want nothing", got)
	}
}
