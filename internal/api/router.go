package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/quickrate/internal/api/handlers"
	"github.com/wonny/quickrate/pkg/logger"
	"github.com/wonny/quickrate/pkg/redis"
)

// RouterOptions configures the middleware chain
type RouterOptions struct {
	RateLimit float64 // requests per second, process-wide
	RateBurst int

	// Shared enables the Redis per-client limit on top of the local bucket
	Shared *redis.RateLimiter
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(ratingHandler *handlers.RatingHandler, log *logger.Logger, opts RouterOptions) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Rating endpoints
	api.HandleFunc("/evaluate", ratingHandler.Evaluate).Methods("POST")
	api.HandleFunc("/panels", ratingHandler.EvaluatePanel).Methods("POST")
	api.HandleFunc("/panels/{ticker}/latest", ratingHandler.LatestPanel).Methods("GET")
	api.HandleFunc("/catalog/{sector}", ratingHandler.Catalog).Methods("GET")
	api.HandleFunc("/resolve", ratingHandler.Resolve).Methods("GET")

	// Rate limits apply to the API only, never to /health
	api.Use(rateLimitMiddleware(opts.RateLimit, opts.RateBurst, log))
	if opts.Shared != nil {
		api.Use(sharedRateLimitMiddleware(opts.Shared, opts.RateBurst, log))
	}

	// Apply middleware
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "quickrate-api",
	})
}
