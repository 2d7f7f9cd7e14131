package model

import (
	"fmt"
	"strings"
)

// UnitKind is the fixed roster of placeable units. The numeric values match
// the index of each unit in the match config's unitInformation list.
type UnitKind int

const (
	Wall UnitKind = iota
	Support
	Turret
	Scout
	Demolisher
	Interceptor
)

// unitInformation indices for the two pseudo-units used in the build stack.
const (
	removeIndex  = 6
	upgradeIndex = 7
)

var unitKindNames = [...]string{
	Wall:        "wall",
	Support:     "support",
	Turret:      "turret",
	Scout:       "scout",
	Demolisher:  "demolisher",
	Interceptor: "interceptor",
}

// AllUnitKinds lists every kind in config order.
var AllUnitKinds = []UnitKind{Wall, Support, Turret, Scout, Demolisher, Interceptor}

func (k UnitKind) String() string {
	if k < 0 || int(k) >= len(unitKindNames) {
		return fmt.Sprintf("UnitKind(%d)", int(k))
	}
	return unitKindNames[k]
}

// IsStationary reports whether the kind is a structure.
func (k UnitKind) IsStationary() bool {
	return k == Wall || k == Support || k == Turret
}

// ParseUnitKind accepts the lowercase names used in config files.
func ParseUnitKind(s string) (UnitKind, error) {
	for i, name := range unitKindNames {
		if strings.EqualFold(name, s) {
			return UnitKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown unit kind %q", s)
}

func (k UnitKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *UnitKind) UnmarshalText(b []byte) error {
	parsed, err := ParseUnitKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Side identifies the owner of a unit from the agent's point of view.
type Side int

const (
	Self     Side = 0
	Opponent Side = 1
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == Self {
		return Opponent
	}
	return Self
}

// Cost is the price of a unit on each currency track.
type Cost struct {
	SP float64 // structure points
	MP float64 // mobile points
}

// UnitStats holds the combat numbers for one kind, base and upgraded.
type UnitStats struct {
	Kind           UnitKind
	Shorthand      string
	Cost           Cost
	UpgradeCost    Cost
	DamageToMobile float64
	DamageToStatic float64
	Range          float64
	Health         float64
	UpgradedDamage float64
	UpgradedRange  float64
	UpgradedHealth float64
	Upgradable     bool
}

// StatsTable is the per-kind lookup resolved once from match configuration.
type StatsTable struct {
	units            map[UnitKind]UnitStats
	removeShorthand  string
	upgradeShorthand string
}

// Stats returns the stats for k. Unknown kinds return the zero value.
func (t *StatsTable) Stats(k UnitKind) UnitStats {
	return t.units[k]
}

// KindForShorthand maps a wire shorthand ("TU", "FF", ...) back to its kind.
func (t *StatsTable) KindForShorthand(s string) (UnitKind, bool) {
	for k, st := range t.units {
		if st.Shorthand == s {
			return k, true
		}
	}
	return 0, false
}

// RemoveShorthand is the build-stack code that queues a removal.
func (t *StatsTable) RemoveShorthand() string { return t.removeShorthand }

// UpgradeShorthand is the build-stack code that queues an upgrade.
func (t *StatsTable) UpgradeShorthand() string { return t.upgradeShorthand }

// MaxAttackRange is the largest range any stationary attacker can reach,
// upgraded or not.
func (t *StatsTable) MaxAttackRange() float64 {
	var best float64
	for _, st := range t.units {
		if !st.Kind.IsStationary() || (st.DamageToMobile <= 0 && st.UpgradedDamage <= 0) {
			continue
		}
		best = max(best, st.Range, st.UpgradedRange)
	}
	return best
}

// CheapestStructure returns the stationary kind with the lowest SP cost.
// Ties keep the earlier kind in config order.
func (t *StatsTable) CheapestStructure() UnitKind {
	cheapest := Wall
	for _, k := range []UnitKind{Wall, Turret, Support} {
		if t.units[k].Cost.SP < t.units[cheapest].Cost.SP {
			cheapest = k
		}
	}
	return cheapest
}

// NewStatsTable builds the lookup from the unitInformation list.
func NewStatsTable(cfg GameConfig) (*StatsTable, error) {
	if len(cfg.UnitInformation) < len(AllUnitKinds) {
		return nil, fmt.Errorf("unitInformation has %d entries, need at least %d",
			len(cfg.UnitInformation), len(AllUnitKinds))
	}
	t := &StatsTable{units: make(map[UnitKind]UnitStats, len(AllUnitKinds))}
	for _, k := range AllUnitKinds {
		info := cfg.UnitInformation[k]
		st := UnitStats{
			Kind:           k,
			Shorthand:      info.Shorthand,
			Cost:           Cost{SP: info.Cost1, MP: info.Cost2},
			DamageToMobile: info.AttackDamageWalker,
			DamageToStatic: info.AttackDamageTower,
			Range:          info.AttackRange,
			Health:         info.StartHealth,
			UpgradedDamage: info.AttackDamageWalker,
			UpgradedRange:  info.AttackRange,
			UpgradedHealth: info.StartHealth,
		}
		if up := info.Upgrade; up != nil {
			st.Upgradable = true
			st.UpgradeCost = st.Cost
			if up.Cost1 != nil {
				st.UpgradeCost.SP = *up.Cost1
			}
			if up.Cost2 != nil {
				st.UpgradeCost.MP = *up.Cost2
			}
			if up.AttackDamageWalker != nil {
				st.UpgradedDamage = *up.AttackDamageWalker
			}
			if up.AttackRange != nil {
				st.UpgradedRange = *up.AttackRange
			}
			if up.StartHealth != nil {
				st.UpgradedHealth = *up.StartHealth
			}
		}
		t.units[k] = st
	}
	if len(cfg.UnitInformation) > upgradeIndex {
		t.removeShorthand = cfg.UnitInformation[removeIndex].Shorthand
		t.upgradeShorthand = cfg.UnitInformation[upgradeIndex].Shorthand
	}
	return t, nil
}
