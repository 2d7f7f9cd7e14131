package model

import (
	"fmt"
	"strings"
)

// Action is what an intent asks the transaction layer to do.
type Action string

const (
	ActionSpawn   Action = "spawn"
	ActionUpgrade Action = "upgrade"
	ActionRemove  Action = "remove"
)

// ParseAction accepts the config spelling of an action.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(s)); a {
	case ActionSpawn, ActionUpgrade, ActionRemove:
		return a, nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

func (a *Action) UnmarshalText(b []byte) error {
	parsed, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// AsManyAsAffordable asks the transaction layer to keep spawning at a
// location until resources run out or a placement is rejected.
const AsManyAsAffordable = -1

// Intent is a fire-and-forget placement request. Count is per location and
// only meaningful for spawns.
type Intent struct {
	Action    Action       `json:"action" mapstructure:"action"`
	Unit      UnitKind     `json:"unit" mapstructure:"unit"`
	Count     int          `json:"count,omitempty" mapstructure:"count"`
	Locations []Coordinate `json:"at" mapstructure:"at"`
}

func (i Intent) String() string {
	switch i.Action {
	case ActionSpawn:
		n := fmt.Sprint(i.Count)
		if i.Count == AsManyAsAffordable {
			n = "max"
		}
		return fmt.Sprintf("spawn %s x%s at %v", i.Unit, n, i.Locations)
	default:
		return fmt.Sprintf("%s at %v", i.Action, i.Locations)
	}
}

// Spawn requests count units of kind at each location.
func Spawn(kind UnitKind, count int, at ...Coordinate) Intent {
	return Intent{Action: ActionSpawn, Unit: kind, Count: count, Locations: at}
}

// Upgrade requests an upgrade of our structures at each location.
func Upgrade(at ...Coordinate) Intent {
	return Intent{Action: ActionUpgrade, Locations: at}
}

// Remove requests removal of our structures at each location.
func Remove(at ...Coordinate) Intent {
	return Intent{Action: ActionRemove, Locations: at}
}
