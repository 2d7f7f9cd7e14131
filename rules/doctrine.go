package rules

import "github.com/eashang1/terminal-s8/model"

// Doctrine is the fixed layout and cadence of the funnel strategy. The
// compiler turns it into placement and offense rules.
type Doctrine struct {
	Name    string
	Cadence int // turns between chokepoint openings and scout waves

	BaseTurrets     []model.Coordinate // table A
	BaseWalls       []model.Coordinate
	ExpandedTurrets []model.Coordinate // table B
	ExpandedWalls   []model.Coordinate
	Chokepoint      []model.Coordinate
	SupportCluster  []model.Coordinate
	ShieldBattery   []model.Coordinate

	InterceptorPost  model.Coordinate
	InterceptorCount int

	ChokepointSealFrom  int // rule 2 also holds for SealFrom < turn < SealUntil
	ChokepointSealUntil int
	ShieldBatteryAfter  int
	ExpansionAfter      int
	InterceptorsAfter   int
	SupportClusterAfter int

	MainLane         model.Coordinate
	ForwardLane      model.Coordinate
	ForwardWaveAfter int

	ReinforceAfter      int
	ReinforceExclusions []model.Coordinate
}

// DefaultDoctrine returns the funnel layout.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:    "Funnel",
		Cadence: 7,

		BaseTurrets: model.Coordinates(
			[2]int{2, 12}, [2]int{25, 12}, [2]int{6, 10}, [2]int{21, 10}, [2]int{11, 9}, [2]int{16, 9},
		),
		BaseWalls: model.Coordinates(
			[2]int{11, 10}, [2]int{16, 10}, [2]int{0, 13}, [2]int{1, 13}, [2]int{2, 13}, [2]int{25, 13},
			[2]int{26, 13}, [2]int{27, 13}, [2]int{6, 11}, [2]int{21, 11}, [2]int{3, 12}, [2]int{24, 12},
			[2]int{4, 11}, [2]int{5, 11}, [2]int{22, 11}, [2]int{23, 11}, [2]int{7, 10}, [2]int{8, 10},
			[2]int{9, 10}, [2]int{10, 10}, [2]int{12, 10}, [2]int{15, 10}, [2]int{17, 10}, [2]int{18, 10},
			[2]int{19, 10}, [2]int{20, 10}, [2]int{12, 9}, [2]int{15, 9}, [2]int{7, 11}, [2]int{8, 11},
		),
		ExpandedTurrets: model.Coordinates(
			[2]int{1, 12}, [2]int{26, 12}, [2]int{3, 11}, [2]int{24, 11}, [2]int{5, 10}, [2]int{22, 10},
			[2]int{8, 9}, [2]int{10, 9}, [2]int{17, 9}, [2]int{19, 9}, [2]int{12, 8}, [2]int{15, 8},
			[2]int{11, 8}, [2]int{11, 7}, [2]int{11, 6},
		),
		ExpandedWalls: model.Coordinates([2]int{3, 13}, [2]int{24, 13}),
		Chokepoint:    model.Coordinates([2]int{13, 9}, [2]int{14, 9}),
		SupportCluster: model.Coordinates(
			[2]int{3, 10}, [2]int{4, 10}, [2]int{6, 9}, [2]int{7, 9},
		),
		ShieldBattery: model.Coordinates(
			[2]int{6, 7}, [2]int{7, 7}, [2]int{8, 7}, [2]int{9, 7}, [2]int{7, 6}, [2]int{8, 6}, [2]int{9, 6},
		),

		InterceptorPost:  model.C(7, 6),
		InterceptorCount: 2,

		ChokepointSealFrom:  2,
		ChokepointSealUntil: 20,
		ShieldBatteryAfter:  15,
		ExpansionAfter:      20,
		InterceptorsAfter:   25,
		SupportClusterAfter: 30,

		MainLane:         model.C(4, 9),
		ForwardLane:      model.C(8, 5),
		ForwardWaveAfter: 25,

		ReinforceAfter:      5,
		ReinforceExclusions: model.Coordinates([2]int{11, 3}, [2]int{16, 3}, [2]int{17, 4}),
	}
}

// Validate clamps the numeric knobs to usable ranges. A cadence below 2
// would make every turn an offense turn, so 2 is the floor.
func (d *Doctrine) Validate() {
	d.Cadence = clampInt(d.Cadence, 2, 100)
	d.InterceptorCount = clampInt(d.InterceptorCount, 0, 50)
	d.ReinforceAfter = clampInt(d.ReinforceAfter, 0, 1000)
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
