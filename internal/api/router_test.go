package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickrate/internal/api/handlers"
	"github.com/wonny/quickrate/internal/catalog"
	"github.com/wonny/quickrate/internal/contracts"
	"github.com/wonny/quickrate/internal/evaluator"
	"github.com/wonny/quickrate/internal/ratings"
	"github.com/wonny/quickrate/internal/resolver"
	"github.com/wonny/quickrate/pkg/logger"
)

func newTestRouter(t *testing.T, opts RouterOptions) http.Handler {
	t.Helper()
	cat := catalog.Default()
	eval, err := evaluator.New(cat, logger.Nop())
	require.NoError(t, err)

	h := handlers.NewRatingHandler(ratings.NewService(eval, logger.Nop()), resolver.New(cat), logger.Nop())
	return NewRouter(h, logger.Nop(), opts)
}

func defaultOptions() RouterOptions {
	return RouterOptions{RateLimit: 1000, RateBurst: 1000}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, defaultOptions()), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestEvaluate(t *testing.T) {
	router := newTestRouter(t, defaultOptions())

	tests := []struct {
		name   string
		body   string
		status int
		score  contracts.Score
	}{
		{"technology P/L with PEG", `{"sector":"Technology","label":"P/L","value":30,"complementares":{"peg":1.2}}`, http.StatusOK, contracts.ScoreMedium},
		{"rich P/L alone", `{"sector":"Technology","label":"P/L","value":50}`, http.StatusOK, contracts.ScoreBad},
		{"rich P/L relaxed by numeric PEG", `{"sector":"Technology","label":"P/L","value":50,"complementares":{"peg":1.2}}`, http.StatusOK, contracts.ScoreMedium},
		{"rich P/L relaxed by PEG prop", `{"sector":"Technology","label":"P/L","value":50,"props":{"peg":"1,2"}}`, http.StatusOK, contracts.ScoreMedium},
		{"numeric bag wins over props", `{"sector":"Technology","label":"P/L","value":50,"props":{"peg":"1,2"},"complementares":{"peg":3}}`, http.StatusOK, contracts.ScoreBad},
		{"derived metric passed through", `{"sector":"Healthcare","label":"Crescimento da Receita","value":20,"complementares":{"cash_runway":6}}`, http.StatusOK, contracts.ScoreMedium},
		{"derived metric absent", `{"sector":"Healthcare","label":"Crescimento da Receita","value":20}`, http.StatusOK, contracts.ScoreGood},
		{"unknown numeric key ignored", `{"sector":"Technology","label":"P/L","value":12,"complementares":{"zzz":1}}`, http.StatusOK, contracts.ScoreGood},
		{"string complementary value", `{"sector":"Technology","label":"P/L","value":30,"complementares":{"peg":"1,2"}}`, http.StatusBadRequest, ""},
		{"by key", `{"sector":"tech","key":"pe","value":12}`, http.StatusOK, contracts.ScoreGood},
		{"sector alias", `{"sector":"REIT","label":"FFO Payout Ratio","value":95}`, http.StatusOK, contracts.ScoreBad},
		{"unknown sector", `{"sector":"Crypto","label":"P/L","value":30}`, http.StatusBadRequest, ""},
		{"missing value", `{"sector":"Technology","label":"P/L"}`, http.StatusBadRequest, ""},
		{"missing label", `{"sector":"Technology","value":1}`, http.StatusBadRequest, ""},
		{"unknown field", `{"sector":"Technology","label":"P/L","value":1,"extra":true}`, http.StatusBadRequest, ""},
		{"foreign prop", `{"sector":"Technology","label":"P/L","value":1,"props":{"ffo_payout":"90"}}`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/evaluate", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"error"`)
				return
			}

			var ev contracts.Evaluation
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ev))
			assert.Equal(t, tt.score, ev.Score)
			assert.NotEmpty(t, ev.Explanation)
		})
	}
}

func TestEvaluatePanel(t *testing.T) {
	router := newTestRouter(t, defaultOptions())
	body := `{
		"ticker": "wege3",
		"sector": "Industrials",
		"props": {"roe": "28", "backlog_coverage": "1,4"},
		"indicators": [
			{"label": "P/L", "value": 18},
			{"label": "ROE", "value": 28, "previous_value": 25},
			{"label": "Zzz Qqq", "value": 1}
		]
	}`

	rec := do(t, router, http.MethodPost, "/api/panels", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	var panel contracts.Panel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &panel))
	assert.Equal(t, "WEGE3", panel.Ticker)
	assert.Equal(t, contracts.SectorIndustrials, panel.Sector)
	require.Len(t, panel.Evaluations, 3)
	assert.True(t, panel.Evaluations[2].InformationalOnly)
	assert.NotEqual(t, contracts.GradeNone, panel.Rating.Grade)

	rec = do(t, router, http.MethodPost, "/api/panels", `{"ticker":"X","sector":"Nope","indicators":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLatestPanel_PersistenceDisabled(t *testing.T) {
	rec := do(t, newTestRouter(t, defaultOptions()), http.MethodGet, "/api/panels/WEGE3/latest", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCatalog(t *testing.T) {
	router := newTestRouter(t, defaultOptions())

	rec := do(t, router, http.MethodGet, "/api/catalog/technology", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, contracts.SectorTechnology, resp.Sector)
	assert.NotEmpty(t, resp.CatalogHash)
	assert.Len(t, resp.Indicators, len(catalog.Default().Entries(contracts.SectorTechnology)))

	var pe *handlers.IndicatorView
	for i := range resp.Indicators {
		if resp.Indicators[i].Key == contracts.KeyPE {
			pe = &resp.Indicators[i]
		}
	}
	require.NotNil(t, pe)
	require.NotNil(t, pe.Threshold)
	assert.True(t, pe.Threshold.Reverse)

	rec = do(t, router, http.MethodGet, "/api/catalog/unknown", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolve(t *testing.T) {
	router := newTestRouter(t, defaultOptions())

	rec := do(t, router, http.MethodGet, "/api/resolve?sector=Technology&label=Crescimento+Receita", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp handlers.ResolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, contracts.KeyRevenueGrowth, resp.Indicator.Key)
	assert.Equal(t, "compacted", resp.Tier)

	rec = do(t, router, http.MethodGet, "/api/resolve?sector=Technology&label=Zzz+Qqq", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/resolve?sector=Technology", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(t, RouterOptions{RateLimit: 0.001, RateBurst: 1})

	rec := do(t, router, http.MethodGet, "/api/catalog/technology", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/catalog/technology", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// health is never limited
	rec = do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(t, defaultOptions())

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get("X-Request-ID"))
}
