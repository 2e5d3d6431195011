package ratings

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/wonny/quickrate/internal/complementary"
	"github.com/wonny/quickrate/internal/contracts"
	"github.com/wonny/quickrate/internal/evaluator"
	"github.com/wonny/quickrate/pkg/logger"
	"github.com/wonny/quickrate/pkg/redis"
)

var (
	// ErrInvalidRequest marks caller mistakes (bad sector, props, ticker)
	ErrInvalidRequest = errors.New("invalid panel request")

	// ErrPersistenceDisabled is returned by Latest without a database
	ErrPersistenceDisabled = errors.New("panel persistence disabled")
)

// validate is safe for concurrent use and caches struct metadata
var validate = validator.New()

// PanelRequest is the shared input of POST /api/panels and `rating panel`
type PanelRequest struct {
	Ticker     string            `json:"ticker" validate:"required,max=32"`
	Sector     string            `json:"sector" validate:"required"`
	Props      json.RawMessage   `json:"props,omitempty"`
	Indicators []evaluator.Input `json:"indicators" validate:"required,min=1,max=200,dive"`
}

// Result is an evaluated panel and whether it came from the cache
type Result struct {
	Panel  *contracts.Panel
	Cached bool
}

// Store is the persistence the service needs
type Store interface {
	Save(ctx context.Context, panel *contracts.Panel) error
	Latest(ctx context.Context, ticker string) (*contracts.Panel, error)
}

// Service evaluates panels and wires cache and persistence around the core
// ⭐ SSOT: 패널 평가 흐름(캐시 → 평가 → 저장)은 여기서만
type Service struct {
	eval     *evaluator.Evaluator
	cache    *redis.Cache
	cacheTTL time.Duration
	store    Store
	logger   *logger.Logger
	now      func() time.Time
}

// NewService creates a service without cache or persistence
func NewService(eval *evaluator.Evaluator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		eval:   eval,
		logger: log,
		now:    time.Now,
	}
}

// WithCache enables the Redis panel cache
func (s *Service) WithCache(cache *redis.Cache, ttl time.Duration) *Service {
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

// WithStore enables snapshot persistence
func (s *Service) WithStore(store Store) *Service {
	s.store = store
	return s
}

// Evaluator returns the underlying evaluator
func (s *Service) Evaluator() *evaluator.Evaluator {
	return s.eval
}

// EvaluatePanel builds the bag from props, evaluates the indicators and
// caches/persists the panel when those are configured
func (s *Service) EvaluatePanel(ctx context.Context, req PanelRequest) (*Result, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker is required", ErrInvalidRequest)
	}

	sector, err := contracts.ParseSector(req.Sector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	bag, err := complementary.BuildRaw(sector, req.Props)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	digest, err := Digest(sector, bag, req.Indicators)
	if err != nil {
		return nil, fmt.Errorf("failed to digest panel request: %w", err)
	}
	key := redis.PanelKey(ticker, s.eval.CatalogHash(), digest)

	log := s.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"sector": sector,
	})

	if s.cache.Enabled() {
		var cached contracts.Panel
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.WithError(err).Warn("panel cache read failed")
		}
		if found {
			log.Debug("panel cache hit")
			return &Result{Panel: &cached, Cached: true}, nil
		}
	}

	panel := s.eval.EvaluatePanel(sector, req.Indicators, bag)
	panel.Ticker = ticker
	panel.CreatedAt = s.now().UTC()

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, panel, s.cacheTTL); err != nil {
			log.WithError(err).Warn("panel cache write failed")
		}
	}

	if s.store != nil {
		if err := s.store.Save(ctx, &panel); err != nil {
			log.WithError(err).Error("panel snapshot not saved")
		}
	}

	log.WithFields(map[string]interface{}{
		"overall": panel.Rating.Overall,
		"grade":   panel.Rating.Grade,
	}).Info("panel evaluated")

	return &Result{Panel: &panel}, nil
}

// Latest returns the last persisted panel of a ticker
func (s *Service) Latest(ctx context.Context, ticker string) (*contracts.Panel, error) {
	if s.store == nil {
		return nil, ErrPersistenceDisabled
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker is required", ErrInvalidRequest)
	}
	return s.store.Latest(ctx, ticker)
}

type digestView struct {
	Sector     contracts.Sector                `json:"sector"`
	Bag        map[contracts.MetricKey]float64 `json:"bag"`
	Indicators []evaluator.Input               `json:"indicators"`
}

// Digest fingerprints the evaluated content of a request. Props that parse
// to the same bag share a digest.
func Digest(sector contracts.Sector, bag *complementary.Bag, inputs []evaluator.Input) (string, error) {
	data, err := json.Marshal(digestView{
		Sector:     sector,
		Bag:        bag.Values(),
		Indicators: inputs,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
