package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/wonny/quickrate/internal/complementary"
	"github.com/wonny/quickrate/internal/contracts"
	"github.com/wonny/quickrate/internal/evaluator"
	"github.com/wonny/quickrate/internal/ratings"
	"github.com/wonny/quickrate/internal/resolver"
	"github.com/wonny/quickrate/pkg/logger"
)

// RatingHandler handles indicator and panel rating endpoints
// ⭐ SSOT: 평가 API 핸들러는 이 구조체에서만
type RatingHandler struct {
	service  *ratings.Service
	resolver *resolver.Resolver
	logger   *logger.Logger
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(service *ratings.Service, res *resolver.Resolver, log *logger.Logger) *RatingHandler {
	return &RatingHandler{
		service:  service,
		resolver: res,
		logger:   log,
	}
}

var validate = validator.New()

// EvaluateRequest is the body of POST /api/evaluate.
// Complementares is an already-built numeric bag passed through as is;
// Props are raw provider strings run through the sector builder.
// When both are sent, Complementares wins key by key.
type EvaluateRequest struct {
	Sector         string             `json:"sector" validate:"required"`
	Label          string             `json:"label" validate:"required_without=Key"`
	Key            string             `json:"key,omitempty"`
	Value          *float64           `json:"value" validate:"required"`
	PreviousValue  *float64           `json:"previous_value,omitempty"`
	Complementares map[string]float64 `json:"complementares,omitempty"`
	Props          json.RawMessage    `json:"props,omitempty"`
}

// Evaluate rates one indicator
// POST /api/evaluate
func (h *RatingHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sector, err := contracts.ParseSector(req.Sector)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	bag, err := complementary.BuildRaw(sector, req.Props)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Complementares) > 0 {
		given, dropped := complementary.FromValues(sector, req.Complementares)
		if len(dropped) > 0 {
			h.logger.WithFields(map[string]interface{}{
				"sector":  sector,
				"dropped": dropped,
			}).Warn("Ignoring unknown complementary metrics")
		}
		bag = bag.With(given.Values())
	}

	eval := h.service.Evaluator()
	opts := evaluator.Options{PreviousValue: req.PreviousValue, Bag: bag}

	var ev contracts.Evaluation
	if req.Key != "" {
		ev = eval.EvaluateID(contracts.IndicatorID{Sector: sector, Key: contracts.MetricKey(req.Key)}, *req.Value, opts)
	} else {
		ev = eval.Evaluate(sector, req.Label, *req.Value, opts)
	}

	respondJSON(w, http.StatusOK, ev)
}

// EvaluatePanel rates a company panel
// POST /api/panels
func (h *RatingHandler) EvaluatePanel(w http.ResponseWriter, r *http.Request) {
	var req ratings.PanelRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.service.EvaluatePanel(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	if res.Cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	respondJSON(w, http.StatusOK, res.Panel)
}

// LatestPanel returns the last persisted panel of a ticker
// GET /api/panels/{ticker}/latest
func (h *RatingHandler) LatestPanel(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	panel, err := h.service.Latest(r.Context(), ticker)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, panel)
}

// IndicatorView is one catalog row
type IndicatorView struct {
	Label             string                   `json:"label"`
	Key               contracts.MetricKey      `json:"key"`
	Weight            float64                  `json:"weight"`
	InformationalOnly bool                     `json:"informational_only"`
	DeltaSensitive    bool                     `json:"delta_sensitive"`
	ComplementaryKeys []contracts.MetricKey    `json:"complementary_keys,omitempty"`
	Threshold         *contracts.ThresholdSpec `json:"threshold,omitempty"`
}

// CatalogResponse lists the indicators of a sector
type CatalogResponse struct {
	Sector      contracts.Sector `json:"sector"`
	Version     string           `json:"version"`
	CatalogHash string           `json:"catalog_hash"`
	Indicators  []IndicatorView  `json:"indicators"`
}

// Catalog returns labels, keys and thresholds of a sector
// GET /api/catalog/{sector}
func (h *RatingHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	sector, err := contracts.ParseSector(mux.Vars(r)["sector"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	eval := h.service.Evaluator()
	cat := eval.Catalog()

	entries := cat.Entries(sector)
	views := make([]IndicatorView, 0, len(entries))
	for _, md := range entries {
		views = append(views, indicatorView(cat.Threshold, sector, md))
	}

	respondJSON(w, http.StatusOK, CatalogResponse{
		Sector:      sector,
		Version:     cat.Version(),
		CatalogHash: eval.CatalogHash(),
		Indicators:  views,
	})
}

// ResolveResponse is the result of a label lookup
type ResolveResponse struct {
	Query     string        `json:"query"`
	Tier      string        `json:"tier"`
	Indicator IndicatorView `json:"indicator"`
}

// Resolve maps a free-text label to a catalog indicator
// GET /api/resolve?sector=&label=
func (h *RatingHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sector, err := contracts.ParseSector(q.Get("sector"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	label := q.Get("label")
	if label == "" {
		respondError(w, http.StatusBadRequest, "label is required")
		return
	}

	md, tier := h.resolver.ResolveTier(sector, label)
	if tier == resolver.TierNone {
		respondError(w, http.StatusNotFound, "indicator not found")
		return
	}

	respondJSON(w, http.StatusOK, ResolveResponse{
		Query:     label,
		Tier:      tier.String(),
		Indicator: indicatorView(h.service.Evaluator().Catalog().Threshold, sector, md),
	})
}

func indicatorView(
	threshold func(contracts.Sector, contracts.MetricKey) (contracts.ThresholdSpec, bool),
	sector contracts.Sector,
	md contracts.IndicatorMetadata,
) IndicatorView {
	v := IndicatorView{
		Label:             md.Label,
		Key:               md.Key,
		Weight:            md.Weight,
		InformationalOnly: md.InformationalOnly,
		DeltaSensitive:    md.DeltaSensitive,
		ComplementaryKeys: md.ComplementaryKeys,
	}
	if spec, ok := threshold(sector, md.Key); ok {
		v.Threshold = &spec
	}
	return v
}

func (h *RatingHandler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ratings.ErrInvalidRequest):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ratings.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ratings.ErrPersistenceDisabled):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.WithError(err).Error("panel request failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
