package evaluator

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/quickrate/internal/complementary"
	"github.com/wonny/quickrate/internal/contracts"
)

// parallelThreshold is the panel size from which inputs fan out
const parallelThreshold = 16

// Grade cut-offs on the 0-100 overall score
const (
	StrongAt  = 70.0
	NeutralAt = 45.0
)

// Input is one indicator of a panel. Key takes precedence over Label.
type Input struct {
	Label         string              `json:"label" validate:"required_without=Key"`
	Key           contracts.MetricKey `json:"key,omitempty"`
	Value         float64             `json:"value"`
	PreviousValue *float64            `json:"previous_value,omitempty"`
}

// EvaluatePanel evaluates every input against one sector and bag and
// aggregates the rating. Output order follows input order.
func (e *Evaluator) EvaluatePanel(sector contracts.Sector, inputs []Input, bag *complementary.Bag) contracts.Panel {
	evals := make([]contracts.Evaluation, len(inputs))

	one := func(i int) {
		in := inputs[i]
		opts := Options{PreviousValue: in.PreviousValue, Bag: bag}
		if in.Key != "" {
			evals[i] = e.EvaluateID(contracts.IndicatorID{Sector: sector, Key: in.Key}, in.Value, opts)
			return
		}
		evals[i] = e.Evaluate(sector, in.Label, in.Value, opts)
	}

	if len(inputs) < parallelThreshold {
		for i := range inputs {
			one(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := range inputs {
			i := i
			g.Go(func() error {
				one(i)
				return nil
			})
		}
		_ = g.Wait() // evaluations never fail
	}

	e.log.WithFields(map[string]interface{}{
		"sector": sector,
		"count":  len(inputs),
	}).Debug("panel evaluated")

	return contracts.Panel{
		Sector:      sector,
		CatalogHash: e.hash,
		Evaluations: evals,
		Rating:      Aggregate(evals),
	}
}

// Aggregate scores classified, non-informational evaluations:
// good=1, medium=0.5, bad=0, weighted, scaled to 0-100
func Aggregate(evals []contracts.Evaluation) contracts.Rating {
	var (
		r      contracts.Rating
		points float64
		weight float64
	)

	for _, ev := range evals {
		if ev.InformationalOnly || !ev.Classified || ev.Weight <= 0 {
			r.Skipped++
			continue
		}
		r.Scored++
		weight += ev.Weight
		switch ev.Score {
		case contracts.ScoreGood:
			r.Good++
			points += ev.Weight
		case contracts.ScoreMedium:
			r.Medium++
			points += ev.Weight * 0.5
		default:
			r.Bad++
		}
	}

	if weight == 0 {
		r.Grade = contracts.GradeNone
		return r
	}

	r.Overall = math.Round(points/weight*1000) / 10
	r.Grade = GradeOf(r.Overall)
	return r
}

// GradeOf maps an overall score to a grade
func GradeOf(overall float64) contracts.Grade {
	switch {
	case overall >= StrongAt:
		return contracts.GradeStrong
	case overall >= NeutralAt:
		return contracts.GradeNeutral
	default:
		return contracts.GradeWeak
	}
}
