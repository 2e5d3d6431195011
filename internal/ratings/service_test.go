package ratings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickrate/internal/catalog"
	"github.com/wonny/quickrate/internal/complementary"
	"github.com/wonny/quickrate/internal/contracts"
	"github.com/wonny/quickrate/internal/evaluator"
	"github.com/wonny/quickrate/pkg/logger"
)

type memoryStore struct {
	saved   []contracts.Panel
	saveErr error
}

func (m *memoryStore) Save(_ context.Context, panel *contracts.Panel) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, *panel)
	return nil
}

func (m *memoryStore) Latest(_ context.Context, ticker string) (*contracts.Panel, error) {
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].Ticker == ticker {
			p := m.saved[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func newService(t *testing.T) *Service {
	t.Helper()
	eval, err := evaluator.New(catalog.Default(), logger.Nop())
	require.NoError(t, err)

	svc := NewService(eval, logger.Nop())
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return svc
}

func realEstateRequest() PanelRequest {
	return PanelRequest{
		Ticker: " hglg11 ",
		Sector: "REIT",
		Props:  json.RawMessage(`{"current_price":"160,50","ffo_payout":"95","occupancy":"97%"}`),
		Indicators: []evaluator.Input{
			{Label: "FFO Payout Ratio", Value: 95},
			{Label: "Dividend Yield", Value: 8},
		},
	}
}

func TestEvaluatePanel(t *testing.T) {
	store := &memoryStore{}
	svc := newService(t).WithStore(store)

	res, err := svc.EvaluatePanel(context.Background(), realEstateRequest())
	require.NoError(t, err)

	assert.False(t, res.Cached)
	assert.Equal(t, "HGLG11", res.Panel.Ticker)
	assert.Equal(t, contracts.SectorRealEstate, res.Panel.Sector)
	assert.Equal(t, svc.Evaluator().CatalogHash(), res.Panel.CatalogHash)
	require.Len(t, res.Panel.Evaluations, 2)
	assert.Equal(t, contracts.ScoreBad, res.Panel.Evaluations[0].Score)
	assert.False(t, res.Panel.CreatedAt.IsZero())

	require.Len(t, store.saved, 1)
	latest, err := svc.Latest(context.Background(), "hglg11")
	require.NoError(t, err)
	assert.Equal(t, res.Panel.Rating, latest.Rating)
}

func TestEvaluatePanel_InvalidRequest(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name   string
		mutate func(r *PanelRequest)
	}{
		{"missing ticker", func(r *PanelRequest) { r.Ticker = "  " }},
		{"unknown sector", func(r *PanelRequest) { r.Sector = "Crypto" }},
		{"unknown prop", func(r *PanelRequest) { r.Props = json.RawMessage(`{"basel":"12"}`) }},
		{"malformed props", func(r *PanelRequest) { r.Props = json.RawMessage(`{"occupancy":`) }},
		{"no indicators", func(r *PanelRequest) { r.Indicators = nil }},
		{"indicator without label or key", func(r *PanelRequest) { r.Indicators = []evaluator.Input{{Value: 1}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := realEstateRequest()
			tt.mutate(&req)
			_, err := svc.EvaluatePanel(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestEvaluatePanel_SaveFailureStillReturnsPanel(t *testing.T) {
	svc := newService(t).WithStore(&memoryStore{saveErr: errors.New("connection refused")})

	res, err := svc.EvaluatePanel(context.Background(), realEstateRequest())
	require.NoError(t, err)
	assert.NotNil(t, res.Panel)
}

func TestLatest_PersistenceDisabled(t *testing.T) {
	_, err := newService(t).Latest(context.Background(), "WEGE3")
	assert.ErrorIs(t, err, ErrPersistenceDisabled)
}

func TestLatest_NotFound(t *testing.T) {
	_, err := newService(t).WithStore(&memoryStore{}).Latest(context.Background(), "WEGE3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDigest(t *testing.T) {
	inputs := []evaluator.Input{{Label: "P/L", Value: 30}}

	a, err := complementary.BuildRaw(contracts.SectorTechnology, []byte(`{"peg":"1,2"}`))
	require.NoError(t, err)
	b, err := complementary.BuildRaw(contracts.SectorTechnology, []byte(`{"peg":"1.2"}`))
	require.NoError(t, err)

	da, err := Digest(contracts.SectorTechnology, a, inputs)
	require.NoError(t, err)
	db, err := Digest(contracts.SectorTechnology, b, inputs)
	require.NoError(t, err)
	assert.Equal(t, da, db, "same bag, same digest")

	other, err := Digest(contracts.SectorTechnology, a, []evaluator.Input{{Label: "P/L", Value: 31}})
	require.NoError(t, err)
	assert.NotEqual(t, da, other)

	empty, err := Digest(contracts.SectorTechnology, nil, nil)
	require.NoError(t, err)
	assert.Len(t, empty, 64)
}
