package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/quickrate/internal/ratings"
	"github.com/wonny/quickrate/internal/scheduler"
	"github.com/wonny/quickrate/internal/scheduler/jobs"
	"github.com/wonny/quickrate/pkg/config"
	"github.com/wonny/quickrate/pkg/database"
	"github.com/wonny/quickrate/pkg/redis"
)

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "설정/카탈로그/DB/Redis 상태 점검",
		Long: `실행 환경을 점검합니다.

이 명령어는:
- config 로드 및 검증
- 카탈로그(+overrides) 로드, 버전과 해시 표시
- DATABASE_URL 이 있으면 Health Check 와 풀 통계 표시
- REDIS_ENABLED 이면 Redis 연결 확인

Example:
  go run ./cmd/rating status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			sess, err := bootstrap(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✅ Config loaded (ENV: %s)\n", sess.cfg.Env)
			fmt.Fprintf(out, "✅ Catalog %s (%.12s)\n", sess.catalog.Version(), sess.evaluator.CatalogHash())

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			if err := checkDatabase(ctx, out, sess.cfg); err != nil {
				return err
			}
			return checkRedis(out, sess.cfg)
		},
	}
}

func checkDatabase(ctx context.Context, out io.Writer, cfg *config.Config) error {
	db, err := database.New(cfg)
	if errors.Is(err, database.ErrDisabled) {
		fmt.Fprintln(out, "➖ Database disabled (snapshots off)")
		return nil
	}
	if err != nil {
		return fmt.Errorf("❌ Failed to connect to database: %w", err)
	}
	defer db.Close()

	status, err := db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("❌ Health check failed: %w", err)
	}

	fmt.Fprintf(out, "✅ Database %s\n", redactURL(cfg.Database.URL))
	fmt.Fprintf(out, "   Response Time: %v\n", status.ResponseTime)
	fmt.Fprintf(out, "   Connections: %d total / %d idle / %d max\n",
		status.Stats.TotalConns, status.Stats.IdleConns, status.Stats.MaxConns)
	return nil
}

func checkRedis(out io.Writer, cfg *config.Config) error {
	if !cfg.Redis.Enabled {
		fmt.Fprintln(out, "➖ Redis disabled (panel cache off)")
		return nil
	}

	rdb, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("❌ %w", err)
	}
	defer rdb.Close()

	fmt.Fprintf(out, "✅ Redis %s:%s\n", cfg.Redis.Host, cfg.Redis.Port)
	return nil
}

func newPruneCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "보존 기간 지난 스냅샷 즉시 정리",
		Long: `api 서버가 매일 실행하는 snapshot_retention 작업을 한 번 실행합니다.
SNAPSHOT_RETENTION_DAYS 보다 오래된 스냅샷을 삭제합니다.

Example:
  go run ./cmd/rating prune`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := bootstrap(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			db, err := database.New(sess.cfg)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer db.Close()

			repo := ratings.NewRepository(db.Pool)
			job := jobs.NewSnapshotRetentionJob(repo, sess.cfg.Rating.SnapshotRetention, sess.cfg.Rating.RetentionSchedule, sess.log)

			sched := scheduler.New(sess.log, scheduler.WithRetries(0, 0))
			if err := sched.AddJob(job); err != nil {
				return err
			}

			result, err := sched.RunJobSync(job.Name())
			if err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("❌ %s failed: %s", result.JobName, result.Error)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s completed in %v (attempts: %d)\n", result.JobName, result.Duration, result.Attempts)
			return nil
		},
	}
}

// redactURL hides the password of a connection URL
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "***"
	}
	return u.Redacted()
}
