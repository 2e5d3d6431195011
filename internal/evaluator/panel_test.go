package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickrate/internal/complementary"
	"github.com/wonny/quickrate/internal/contracts"
)

func TestAggregate(t *testing.T) {
	evals := []contracts.Evaluation{
		{Score: contracts.ScoreGood, Weight: 2, Classified: true},
		{Score: contracts.ScoreMedium, Weight: 1, Classified: true},
		{Score: contracts.ScoreBad, Weight: 1, Classified: true},
		{Score: contracts.ScoreBad, Weight: 1, Classified: true, InformationalOnly: true},
		{Score: contracts.ScoreMedium, Weight: 1, InformationalOnly: true},
	}

	r := Aggregate(evals)

	// (2*1 + 1*0.5 + 0) / 4 = 62.5
	assert.Equal(t, 62.5, r.Overall)
	assert.Equal(t, contracts.GradeNeutral, r.Grade)
	assert.Equal(t, 1, r.Good)
	assert.Equal(t, 1, r.Medium)
	assert.Equal(t, 1, r.Bad)
	assert.Equal(t, 3, r.Scored)
	assert.Equal(t, 2, r.Skipped)
}

func TestAggregate_Empty(t *testing.T) {
	r := Aggregate(nil)
	assert.Equal(t, contracts.GradeNone, r.Grade)
	assert.Zero(t, r.Overall)

	r = Aggregate([]contracts.Evaluation{{Score: contracts.ScoreGood, InformationalOnly: true, Classified: true, Weight: 1}})
	assert.Equal(t, contracts.GradeNone, r.Grade)
	assert.Equal(t, 1, r.Skipped)
}

func TestGradeOf(t *testing.T) {
	assert.Equal(t, contracts.GradeStrong, GradeOf(70))
	assert.Equal(t, contracts.GradeStrong, GradeOf(100))
	assert.Equal(t, contracts.GradeNeutral, GradeOf(45))
	assert.Equal(t, contracts.GradeNeutral, GradeOf(69.9))
	assert.Equal(t, contracts.GradeWeak, GradeOf(44.9))
	assert.Equal(t, contracts.GradeWeak, GradeOf(0))
}

func TestEvaluatePanel_PreservesOrder(t *testing.T) {
	e := newEvaluator(t)
	entries := e.Catalog().Entries(contracts.SectorTechnology)
	require.Greater(t, len(entries), parallelThreshold, "exercise the parallel path")

	inputs := make([]Input, len(entries))
	for i, md := range entries {
		inputs[i] = Input{Label: md.Label, Value: float64(i)}
	}

	panel := e.EvaluatePanel(contracts.SectorTechnology, inputs, nil)

	require.Len(t, panel.Evaluations, len(inputs))
	for i, ev := range panel.Evaluations {
		assert.Equal(t, entries[i].Key, ev.Key, "position %d", i)
	}
	assert.Equal(t, contracts.SectorTechnology, panel.Sector)
	assert.Equal(t, e.CatalogHash(), panel.CatalogHash)
	assert.Equal(t, len(inputs), panel.Rating.Scored+panel.Rating.Skipped)
}

func TestEvaluatePanel_RealEstate(t *testing.T) {
	e := newEvaluator(t)
	bag := complementary.Build(complementary.RealEstateProps{
		CommonProps: complementary.CommonProps{CurrentPrice: "100"},
		FFOPayout:   "95",
		Occupancy:   "97",
		LTV:         "30",
	})

	panel := e.EvaluatePanel(contracts.SectorRealEstate, []Input{
		{Label: "FFO Payout Ratio", Value: 95},
		{Label: "Dividend Yield", Value: 8},
		{Key: contracts.KeyOccupancy, Value: 97},
		{Label: "Indicador Desconhecido", Value: 1},
	}, bag)

	require.Len(t, panel.Evaluations, 4)
	assert.Equal(t, contracts.ScoreBad, panel.Evaluations[0].Score)
	assert.Equal(t, contracts.ScoreGood, panel.Evaluations[1].Score)
	assert.Equal(t, contracts.KeyOccupancy, panel.Evaluations[2].Key)
	assert.True(t, panel.Evaluations[3].InformationalOnly)
	assert.Equal(t, 1, panel.Rating.Skipped)
	assert.Equal(t, 3, panel.Rating.Scored)
}

func TestEvaluatePanel_Idempotent(t *testing.T) {
	e := newEvaluator(t)
	inputs := []Input{{Label: "P/L", Value: 30}, {Label: "ROE", Value: 20, PreviousValue: ptr(15)}}

	a := e.EvaluatePanel(contracts.SectorTechnology, inputs, nil)
	b := e.EvaluatePanel(contracts.SectorTechnology, inputs, nil)
	assert.Equal(t, a, b)
}
