package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/quickrate/pkg/logger"
)

// Pruner deletes snapshots created before a cutoff
type Pruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SnapshotRetentionJob removes panel snapshots past the retention window
type SnapshotRetentionJob struct {
	pruner    Pruner
	retention time.Duration
	schedule  string
	logger    *logger.Logger
	now       func() time.Time
}

// NewSnapshotRetentionJob creates a new snapshot retention job
func NewSnapshotRetentionJob(pruner Pruner, retention time.Duration, schedule string, log *logger.Logger) *SnapshotRetentionJob {
	return &SnapshotRetentionJob{
		pruner:    pruner,
		retention: retention,
		schedule:  schedule,
		logger:    log,
		now:       time.Now,
	}
}

// Name returns the job name
func (j *SnapshotRetentionJob) Name() string {
	return "snapshot_retention"
}

// Schedule returns the cron schedule (default every day at 03:30)
func (j *SnapshotRetentionJob) Schedule() string {
	return j.schedule
}

// Run executes the snapshot cleanup
func (j *SnapshotRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().Add(-j.retention)
	j.logger.WithField("cutoff", cutoff).Debug("Starting scheduled snapshot cleanup")

	removed, err := j.pruner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("snapshot retention: %w", err)
	}

	if removed > 0 {
		j.logger.WithField("removed", removed).Info("Snapshot cleanup completed")
	}

	return nil
}
