package rules

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/eashang1/terminal-s8/model"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Engine runs compiled rules against a turn's environment.
// Rules fire in priority order and every matching rule contributes its
// intents; rules with equal priority keep their declaration order.
type Engine struct {
	rules []*Rule
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled}, nil
}

// Evaluate returns the intents of every rule whose condition holds, in rule
// order. It keeps no state between calls.
func (e *Engine) Evaluate(env Env) []model.Intent {
	var intents []model.Intent
	for _, r := range e.rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "turn", env.Turn, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "turn", env.Turn, "intents", len(r.Intents))
		for _, in := range r.Intents {
			in.Locations = slices.Clone(in.Locations)
			intents = append(intents, in)
		}
	}
	return intents
}

// Names lists the compiled rules in evaluation order.
func (e *Engine) Names() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	compiled := make([]*Rule, 0, len(rules))
	for _, r := range rules {
		src := r.ConditionSrc
		if src == "" {
			src = "true"
		}
		prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		c := *r
		c.program = prog
		compiled = append(compiled, &c)
	}
	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})
	return compiled, nil
}
