// Package evaluator is the single entry point of the rating core: it resolves
// a label, classifies the value, applies contextual overrides and renders the
// explanation. It never returns an error; every failure degrades to a medium,
// informational Evaluation.
package evaluator

import (
	"fmt"
	"math"

	"github.com/wonny/quickrate/internal/catalog"
	"github.com/wonny/quickrate/internal/classifier"
	"github.com/wonny/quickrate/internal/complementary"
	"github.com/wonny/quickrate/internal/contracts"
	"github.com/wonny/quickrate/internal/overrides"
	"github.com/wonny/quickrate/internal/resolver"
	"github.com/wonny/quickrate/pkg/logger"
)

// Explanations of the safe defaults
const (
	ExplainUnmapped    = "unmapped indicator"
	ExplainNoThreshold = "no threshold"
	ExplainInvalid     = "invalid value"
	ExplainDegraded    = "indicator could not be classified"
)

// Resolver binds free-text provider labels to catalog metadata
type Resolver interface {
	Resolve(sector contracts.Sector, label string) (contracts.IndicatorMetadata, bool)
}

// Options carries the optional inputs of one evaluation
type Options struct {
	PreviousValue *float64
	Bag           *complementary.Bag
}

// Evaluator is stateless and safe for concurrent use
type Evaluator struct {
	cat        *catalog.Catalog
	hash       string
	resolver   Resolver
	classifier *classifier.Classifier
	overrides  *overrides.Engine
	log        *logger.Logger
}

// New wires the default resolver, classifier and override table around cat
func New(cat *catalog.Catalog, log *logger.Logger) (*Evaluator, error) {
	hash, err := catalog.Hash(cat)
	if err != nil {
		return nil, fmt.Errorf("hash catalog: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Evaluator{
		cat:        cat,
		hash:       hash,
		resolver:   resolver.New(cat),
		classifier: classifier.New(),
		overrides:  overrides.Default(),
		log:        log.WithField("component", "evaluator"),
	}, nil
}

// WithResolver returns a copy using r for label resolution
func (e *Evaluator) WithResolver(r Resolver) *Evaluator {
	cp := *e
	cp.resolver = r
	return &cp
}

// WithClassifier returns a copy using c for classification
func (e *Evaluator) WithClassifier(c *classifier.Classifier) *Evaluator {
	cp := *e
	cp.classifier = c
	return &cp
}

// WithOverrides returns a copy using engine for contextual overrides
func (e *Evaluator) WithOverrides(engine *overrides.Engine) *Evaluator {
	cp := *e
	cp.overrides = engine
	return &cp
}

// Catalog returns the catalog the evaluator reads
func (e *Evaluator) Catalog() *catalog.Catalog {
	return e.cat
}

// CatalogHash identifies the effective catalog content
func (e *Evaluator) CatalogHash() string {
	return e.hash
}

// Evaluate rates one (sector, label, value) triple
func (e *Evaluator) Evaluate(sector contracts.Sector, label string, value float64, opts Options) (ev contracts.Evaluation) {
	defer e.recoverInto(&ev, sector, label)

	if !finite(value) {
		return invalid(label)
	}

	md, ok := e.resolver.Resolve(sector, label)
	if !ok {
		e.log.WithFields(map[string]interface{}{
			"sector": sector,
			"label":  label,
		}).Warn("unmapped indicator")
		return unmapped(label, value)
	}

	return e.evaluate(sector, md, value, opts)
}

// EvaluateID rates an indicator whose key is already known
func (e *Evaluator) EvaluateID(id contracts.IndicatorID, value float64, opts Options) (ev contracts.Evaluation) {
	defer e.recoverInto(&ev, id.Sector, id.String())

	if !finite(value) {
		return invalid(id.String())
	}

	md, ok := e.cat.Metadata(id.Sector, id.Key)
	if !ok {
		e.log.WithField("id", id.String()).Warn("unmapped indicator")
		return unmapped(id.String(), value)
	}

	return e.evaluate(id.Sector, md, value, opts)
}

func (e *Evaluator) evaluate(sector contracts.Sector, md contracts.IndicatorMetadata, value float64, opts Options) contracts.Evaluation {
	ev := contracts.Evaluation{
		Key:               md.Key,
		Label:             md.Label,
		Weight:            md.Weight,
		InformationalOnly: md.InformationalOnly,
	}

	spec, ok := e.cat.Threshold(sector, md.Key)
	if !ok {
		ev.Score = contracts.ScoreMedium
		ev.InformationalOnly = true
		ev.Explanation = ExplainNoThreshold
		return ev
	}

	bag := opts.Bag
	if bag != nil && bag.Sector() != sector {
		e.log.WithFields(map[string]interface{}{
			"sector":     sector,
			"bag_sector": bag.Sector(),
			"key":        md.Key,
		}).Warn("complementary bag built for another sector ignored")
		bag = nil
	}

	prev := opts.PreviousValue
	if prev != nil && !finite(*prev) {
		prev = nil
	}

	var (
		score contracts.Score
		err   error
	)
	if prev != nil {
		ev.Trend = classifier.TrendOf(value, *prev)
	}
	if md.DeltaSensitive && prev != nil {
		score, _, err = e.classifier.ClassifyWithDelta(value, *prev, spec, bag)
	} else {
		score, err = e.classifier.Classify(value, spec, bag)
	}
	if err != nil {
		e.log.WithError(err).WithFields(map[string]interface{}{
			"sector": sector,
			"key":    md.Key,
		}).Warn("evaluation degraded")
		return degraded(ev)
	}

	score, fired := e.overrides.Trace(sector, md, score, value, bag)
	if len(fired) > 0 {
		e.log.WithFields(map[string]interface{}{
			"sector": sector,
			"key":    md.Key,
			"rules":  len(fired),
			"score":  score,
		}).Debug("contextual overrides applied")
	}

	// informational indicators never penalize
	if md.InformationalOnly && score == contracts.ScoreBad {
		score = contracts.ScoreMedium
	}

	ev.Score = score
	ev.Classified = true
	ev.Explanation = md.Explanation.Render(contracts.ExplainInput{
		Value:         value,
		PreviousValue: prev,
		Score:         score,
		Metadata:      md,
	})
	return ev
}

// recoverInto turns a panic anywhere in the pipeline into a degraded result
func (e *Evaluator) recoverInto(ev *contracts.Evaluation, sector contracts.Sector, label string) {
	if r := recover(); r != nil {
		e.log.WithFields(map[string]interface{}{
			"sector": sector,
			"label":  label,
			"panic":  fmt.Sprint(r),
		}).Error("evaluation panicked")
		*ev = degraded(contracts.Evaluation{Label: label, Weight: 1})
	}
}

func degraded(ev contracts.Evaluation) contracts.Evaluation {
	ev.Score = contracts.ScoreMedium
	ev.InformationalOnly = true
	ev.Classified = false
	ev.Trend = contracts.TrendNone
	ev.Explanation = ExplainDegraded
	return ev
}

func invalid(label string) contracts.Evaluation {
	return contracts.Evaluation{
		Label:             label,
		Score:             contracts.ScoreMedium,
		Weight:            1,
		InformationalOnly: true,
		Explanation:       ExplainInvalid,
	}
}

func unmapped(label string, value float64) contracts.Evaluation {
	return contracts.Evaluation{
		Label:             label,
		Score:             heuristicDefault(label, value),
		Weight:            1,
		InformationalOnly: true,
		Classified:        false,
		Explanation:       ExplainUnmapped,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
