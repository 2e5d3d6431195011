package overrides

import (
	"fmt"

	"github.com/wonny/quickrate/internal/complementary"
	"github.com/wonny/quickrate/internal/contracts"
)

type ruleKey struct {
	sector contracts.Sector
	source contracts.MetricKey
	target contracts.MetricKey
}

// Engine interprets an override table. It is immutable after New.
type Engine struct {
	rules []Rule
	index map[ruleKey][]Rule
}

// New validates rules and indexes them by (sector, source, target)
func New(rules []Rule) (*Engine, error) {
	e := &Engine{
		rules: make([]Rule, len(rules)),
		index: make(map[ruleKey][]Rule, len(rules)),
	}
	copy(e.rules, rules)

	for _, r := range rules {
		if err := r.validate(); err != nil {
			return nil, err
		}
		k := ruleKey{r.Sector, r.Source, r.Target}
		e.index[k] = append(e.index[k], r)
	}
	return e, nil
}

// Default returns an engine over DefaultRules
func Default() *Engine {
	e, err := New(DefaultRules())
	if err != nil {
		panic(fmt.Sprintf("overrides: invalid default rules: %v", err))
	}
	return e
}

// Rules returns a copy of the table in order
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// For returns the rules of one sector in table order
func (e *Engine) For(sector contracts.Sector) []Rule {
	var out []Rule
	for _, r := range e.rules {
		if r.Sector == sector {
			out = append(out, r)
		}
	}
	return out
}

// Adjust applies the sector's rules to base and returns the final score
func (e *Engine) Adjust(sector contracts.Sector, md contracts.IndicatorMetadata, base contracts.Score, value float64, bag *complementary.Bag) contracts.Score {
	score, _ := e.Trace(sector, md, base, value, bag)
	return score
}

// Trace is Adjust that also returns the rules that changed the score.
// Sources are visited in ComplementaryKeys order; each rule sees the score
// left by the previous one. A bag built for another sector is ignored.
func (e *Engine) Trace(sector contracts.Sector, md contracts.IndicatorMetadata, base contracts.Score, value float64, bag *complementary.Bag) (contracts.Score, []Rule) {
	if bag == nil || bag.Sector() != sector {
		return base, nil
	}

	score := base
	var fired []Rule
	for _, source := range md.ComplementaryKeys {
		v, ok := bag.Get(source)
		if !ok {
			continue
		}
		for _, r := range e.index[ruleKey{sector, source, md.Key}] {
			if !r.When(v, value) {
				continue
			}
			next := r.Action.Apply(score)
			if next != score {
				fired = append(fired, r)
				score = next
			}
		}
	}
	return score, fired
}
