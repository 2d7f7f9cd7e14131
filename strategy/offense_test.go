package strategy

import (
	"testing"

	"github.com/eashang1/terminal-s8/model"
	"github.com/eashang1/terminal-s8/rules"
)

func newOffense(opts OffenseOptions) *Offense {
	d := rules.DefaultDoctrine()
	return NewOffense(mustEngine(rules.CompileOffense(d)), []model.Coordinate{d.MainLane, d.ForwardLane}, opts)
}

func TestPlanOffenseCadence(t *testing.T) {
	o := newOffense(OffenseOptions{})
	for turn := 0; turn <= 200; turn++ {
		got := countSpawns(o.PlanOffense(&fakeContext{turn: turn}), model.Scout)
		switch {
		case turn%7 != 1:
			if got != 0 {
				t.Errorf("turn %d: %d scout intents off-cadence", turn, got)
			}
		case turn > 25:
			if got != 2 {
				t.Errorf("turn %d: %d scout intents, want 2", turn, got)
			}
		default:
			if got < 1 {
				t.Errorf("turn %d: no scout intent on cadence", turn)
			}
		}
	}
}

func TestPlanOffenseLanes(t *testing.T) {
	o := newOffense(OffenseOptions{})
	intents := o.PlanOffense(&fakeContext{turn: 29})
	if !hasIntent(intents, model.ActionSpawn, model.Scout, model.C(8, 5)) {
		t.Error("missing forward wave at (8, 5)")
	}
	if !hasIntent(intents, model.ActionSpawn, model.Scout, model.C(4, 9)) {
		t.Error("missing main wave at (4, 9)")
	}
	for _, in := range intents {
		if in.Count != model.AsManyAsAffordable {
			t.Errorf("wave %v is capped", in)
		}
	}
}

func TestPlanOffenseRouteThroughEstimator(t *testing.T) {
	main, forward := model.C(4, 9), model.C(8, 5)
	o := newOffense(OffenseOptions{RouteThroughEstimator: true})

	// The main lane's path runs past a turret, so both waves move forward.
	ctx := &fakeContext{
		turn:      29,
		paths:     map[model.Coordinate][]model.Coordinate{main: {main, model.C(4, 10)}},
		attackers: map[model.Coordinate]int{model.C(4, 10): 1},
	}
	intents := o.PlanOffense(ctx)
	if len(intents) != 2 {
		t.Fatalf("got %d intents, want 2", len(intents))
	}
	for _, in := range intents {
		if len(in.Locations) != 1 || in.Locations[0] != forward {
			t.Errorf("wave routed to %v, want %v", in.Locations, forward)
		}
	}

	// With both lanes blocked the fixed lanes are kept.
	ctx = &fakeContext{turn: 8, blocked: map[model.Coordinate]bool{main: true, forward: true}}
	intents = o.PlanOffense(ctx)
	if !hasIntent(intents, model.ActionSpawn, model.Scout, main) {
		t.Errorf("blocked lanes: got %v, want the fixed main lane", intents)
	}
}

func TestPlanOffenseDemolisherLine(t *testing.T) {
	front := make([]model.Coordinate, 0, 11)
	for x := 5; x < 16; x++ {
		front = append(front, model.C(x, 14))
	}
	opts := OffenseOptions{DemolisherLine: DemolisherLineOptions{Enabled: true, Threshold: 10}}

	tests := []struct {
		name       string
		turn       int
		structures []model.Coordinate
		line       bool
	}{
		{"stacked front", 8, front, true},
		{"at threshold", 8, front[:10], false},
		{"off cadence", 9, front, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := &fakeContext{
				turn:       tc.turn,
				cheapest:   model.Wall,
				structures: map[model.UnitKind][]model.Coordinate{model.Wall: tc.structures},
			}
			intents := newOffense(opts).PlanOffense(ctx)
			got := countSpawns(intents, model.Demolisher) > 0
			if got != tc.line {
				t.Fatalf("demolisher line = %v, want %v (%v)", got, tc.line, intents)
			}
			if !tc.line {
				return
			}
			if countSpawns(intents, model.Scout) != 0 {
				t.Error("scout wave should be replaced by the demolisher line")
			}
			wall := intents[0]
			if wall.Unit != model.Wall || len(wall.Locations) != 22 {
				t.Errorf("line = %v, want 22 walls", wall)
			}
			if wall.Locations[0] != model.C(27, 11) || wall.Locations[21] != model.C(6, 11) {
				t.Errorf("line runs %v to %v", wall.Locations[0], wall.Locations[21])
			}
			if !hasIntent(intents, model.ActionSpawn, model.Demolisher, model.C(24, 10)) {
				t.Error("missing demolishers at (24, 10)")
			}
		})
	}
}

func TestDetectEnemyUnits(t *testing.T) {
	ctx := &fakeContext{structures: map[model.UnitKind][]model.Coordinate{
		model.Wall:   model.Coordinates([2]int{10, 14}, [2]int{11, 15}, [2]int{12, 17}),
		model.Turret: model.Coordinates([2]int{13, 14}, [2]int{20, 16}),
	}}
	tests := []struct {
		name string
		f    EnemyFilter
		want int
	}{
		{"all", EnemyFilter{}, 5},
		{"front rows", EnemyFilter{Ys: []int{14, 15}}, 3},
		{"turrets", EnemyFilter{Kinds: []model.UnitKind{model.Turret}}, 2},
		{"column", EnemyFilter{Xs: []int{13}, Ys: []int{14}}, 1},
		{"none", EnemyFilter{Kinds: []model.UnitKind{model.Support}}, 0},
	}
	for _, tc := range tests {
		if got := DetectEnemyUnits(ctx, tc.f); got != tc.want {
			t.Errorf("%s: DetectEnemyUnits = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestFilterBlocked(t *testing.T) {
	ctx := &fakeContext{blocked: map[model.Coordinate]bool{model.C(4, 9): true}}
	got := FilterBlocked(ctx, model.Coordinates([2]int{4, 9}, [2]int{8, 5}))
	if len(got) != 1 || got[0] != model.C(8, 5) {
		t.Errorf("FilterBlocked = %v, want [(8, 5)]", got)
	}
}
