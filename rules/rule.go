package rules

import (
	"github.com/eashang1/terminal-s8/model"
	"github.com/expr-lang/expr/vm"
)

// Rule is the atomic unit of build behaviour: a condition → intents pair.
// Rules are declarative, so firing one twice is harmless; the transaction
// layer silently rejects placements that are already satisfied.
type Rule struct {
	Name         string         `mapstructure:"name"`     // human-readable identifier
	Priority     int            `mapstructure:"priority"` // higher = evaluated first
	ConditionSrc string         `mapstructure:"when"`     // expr source; empty means always
	Intents      []model.Intent `mapstructure:"intents"`
	program      *vm.Program    // compiled bytecode
}
