package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickrate/pkg/logger"
)

type fakePruner struct {
	cutoff time.Time
	count  int64
	err    error
}

func (f *fakePruner) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.count, f.err
}

func TestSnapshotRetentionJob(t *testing.T) {
	now := time.Date(2026, 10, 19, 3, 30, 0, 0, time.UTC)
	pruner := &fakePruner{count: 12}

	job := NewSnapshotRetentionJob(pruner, 90*24*time.Hour, "0 30 3 * * *", logger.Nop())
	job.now = func() time.Time { return now }

	assert.Equal(t, "snapshot_retention", job.Name())
	assert.Equal(t, "0 30 3 * * *", job.Schedule())

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, now.Add(-90*24*time.Hour), pruner.cutoff)
}

func TestSnapshotRetentionJob_Error(t *testing.T) {
	pruner := &fakePruner{err: errors.New("connection reset")}
	job := NewSnapshotRetentionJob(pruner, time.Hour, "@daily", logger.Nop())

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
