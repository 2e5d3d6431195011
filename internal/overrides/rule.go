// Package overrides adjusts a base score using correlated metrics of the same
// company. Rules are data: one generic interpreter walks a per-sector table.
package overrides

import (
	"fmt"

	"github.com/wonny/quickrate/internal/contracts"
)

// Action is the score move a rule makes when it fires
type Action string

const (
	// Dampen moves good to medium
	Dampen Action = "dampen"
	// Relax moves bad to medium
	Relax Action = "relax"
	// Tighten moves medium to bad
	Tighten Action = "tighten"
)

// Apply moves s by at most one step. A rule never turns bad into good.
func (a Action) Apply(s contracts.Score) contracts.Score {
	switch {
	case a == Dampen && s == contracts.ScoreGood:
		return contracts.ScoreMedium
	case a == Relax && s == contracts.ScoreBad:
		return contracts.ScoreMedium
	case a == Tighten && s == contracts.ScoreMedium:
		return contracts.ScoreBad
	default:
		return s
	}
}

// Valid reports a known action
func (a Action) Valid() bool {
	return a == Dampen || a == Relax || a == Tighten
}

// Op compares a source metric against a rule limit
type Op string

const (
	Below   Op = "<"
	AtMost  Op = "<="
	Above   Op = ">"
	AtLeast Op = ">="
)

func (o Op) holds(v, limit float64) bool {
	switch o {
	case Below:
		return v < limit
	case AtMost:
		return v <= limit
	case Above:
		return v > limit
	case AtLeast:
		return v >= limit
	default:
		return false
	}
}

// Rule is one row of the override table: when Source Op Limit holds in the
// bag, Action is applied to the score of Target.
type Rule struct {
	Sector contracts.Sector    `json:"sector"`
	Source contracts.MetricKey `json:"source"`
	Target contracts.MetricKey `json:"target"`
	Op     Op                  `json:"op"`
	Limit  float64             `json:"limit"`
	Action Action              `json:"action"`
	// PositiveTarget restricts the rule to positive target values
	// (a negative P/L reflects losses, not cheapness)
	PositiveTarget bool   `json:"positive_target,omitempty"`
	Reason         string `json:"reason"`
}

func (r Rule) String() string {
	return fmt.Sprintf("%s: %s %s %g → %s %s", r.Sector, r.Source, r.Op, r.Limit, r.Action, r.Target)
}

// When reports whether the rule fires for the given source and target values
func (r Rule) When(source, value float64) bool {
	if r.PositiveTarget && value <= 0 {
		return false
	}
	return r.Op.holds(source, r.Limit)
}

func (r Rule) validate() error {
	switch {
	case !r.Sector.Valid():
		return fmt.Errorf("rule %s: unknown sector", r)
	case r.Source == "" || r.Target == "":
		return fmt.Errorf("rule %s: source and target required", r)
	case r.Source == r.Target:
		return fmt.Errorf("rule %s: source equals target", r)
	case !r.Action.Valid():
		return fmt.Errorf("rule %s: unknown action %q", r, r.Action)
	}
	switch r.Op {
	case Below, AtMost, Above, AtLeast:
		return nil
	default:
		return fmt.Errorf("rule %s: unknown op %q", r, r.Op)
	}
}
