package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/quickrate/internal/api"
	"github.com/wonny/quickrate/internal/api/handlers"
	"github.com/wonny/quickrate/internal/evaluator"
	"github.com/wonny/quickrate/internal/ratings"
	"github.com/wonny/quickrate/internal/resolver"
	"github.com/wonny/quickrate/internal/scheduler"
	"github.com/wonny/quickrate/internal/scheduler/jobs"
	"github.com/wonny/quickrate/pkg/config"
	"github.com/wonny/quickrate/pkg/database"
	"github.com/wonny/quickrate/pkg/logger"
	"github.com/wonny/quickrate/pkg/redis"
)

func newAPICmd(opts *globalOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "api",
		Short: "API 서버 시작",
		Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- REDIS_ENABLED 이면 패널 캐시와 공유 레이트 리밋 사용
- DATABASE_URL 이 있으면 스냅샷 저장과 보존 기간 정리 작업 실행

Endpoints:
  GET  /health                      - Health check
  POST /api/evaluate                - 지표 하나 평가
  POST /api/panels                  - 패널 평가 (캐시/저장)
  GET  /api/panels/{ticker}/latest  - 마지막 저장 패널
  GET  /api/catalog/{sector}        - 섹터 카탈로그
  GET  /api/resolve?sector=&label=  - 라벨 매칭

Example:
  go run ./cmd/rating api
  go run ./cmd/rating api --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPIServer(opts, port)
		},
	}

	// Flags
	cmd.Flags().StringVar(&port, "port", "", "API 서버 포트 (default PORT)")

	return cmd
}

func runAPIServer(opts *globalOptions, port string) error {
	fmt.Println("=== Quick Analysis API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if port != "" {
		cfg.Port = port
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Catalog and evaluator
	cat, err := loadCatalog(opts, cfg)
	if err != nil {
		return err
	}
	eval, err := evaluator.New(cat, log)
	if err != nil {
		return fmt.Errorf("create evaluator: %w", err)
	}
	service := ratings.NewService(eval, log)

	log.WithFields(map[string]interface{}{
		"version": cat.Version(),
		"hash":    eval.CatalogHash(),
	}).Info("Catalog loaded")

	// 4. Redis (optional)
	rdb, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer rdb.Close()

	routerOpts := api.RouterOptions{
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
	}
	if rdb.Enabled() {
		service.WithCache(redis.NewCache(rdb, "quickrate"), cfg.Redis.PanelTTL)
		routerOpts.Shared = redis.NewRateLimiter(rdb, "quickrate")
		log.Info("Connected to redis")
	}

	// 5. Database (optional) + retention job
	sched := scheduler.New(log)

	db, err := database.New(cfg)
	switch {
	case errors.Is(err, database.ErrDisabled):
		log.Warn("DATABASE_URL not set: panel snapshots disabled")
	case err != nil:
		return fmt.Errorf("connect to database: %w", err)
	default:
		defer db.Close()

		repo := ratings.NewRepository(db.Pool)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			return err
		}
		service.WithStore(repo)

		job := jobs.NewSnapshotRetentionJob(repo, cfg.Rating.SnapshotRetention, cfg.Rating.RetentionSchedule, log)
		if err := sched.AddJob(job); err != nil {
			return fmt.Errorf("schedule retention job: %w", err)
		}
		log.Info("Connected to database")
	}

	sched.Start()
	defer sched.Stop()

	// 6. Router and server
	ratingHandler := handlers.NewRatingHandler(service, resolver.New(cat), log)
	router := api.NewRouter(ratingHandler, log, routerOpts)
	server := api.New(cfg, log, router)

	// 7. Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal or server failure
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
