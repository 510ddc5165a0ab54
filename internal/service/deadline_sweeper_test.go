package service

import (
	"context"
	"testing"
	"time"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep_SubmitsOnlyExpiredSessions(t *testing.T) {
	f := newEngineFixture(t, testutil.WithTimeLimit(10))
	ctx := context.Background()

	expired, err := f.sessions.Start(ctx, "emp-1", f.catalog.Template.ID)
	require.NoError(t, err)
	f.advance(5 * time.Minute)
	fresh, err := f.sessions.Start(ctx, "emp-2", f.catalog.Template.ID)
	require.NoError(t, err)

	f.advance(6 * time.Minute)
	report, err := f.sweeper.SweepAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepReport{Found: 1, Submitted: 1}, report)

	result, err := f.sessions.Result(ctx, expired.AssessmentID)
	require.NoError(t, err)
	assert.True(t, result.SubmittedLate)

	stillRunning, err := f.sessions.Continue(ctx, fresh.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, model.AssessmentStatusInProgress, stillRunning.Status)
}

func TestSweepAll_DrainsInBatches(t *testing.T) {
	f := newEngineFixture(t, testutil.WithTimeLimit(1))
	ctx := context.Background()

	for _, emp := range []string{"emp-1", "emp-2", "emp-3"} {
		_, err := f.sessions.Start(ctx, emp, f.catalog.Template.ID)
		require.NoError(t, err)
	}

	f.advance(2 * time.Minute)
	report, err := f.sweeper.SweepAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Found)
	assert.Equal(t, 3, report.Submitted)

	var inProgress int64
	require.NoError(t, f.db.Model(&model.Assessment{}).
		Where("status = ?", model.AssessmentStatusInProgress).
		Count(&inProgress).Error)
	assert.Zero(t, inProgress)

	report, err = f.sweeper.SweepAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepReport{}, report)
}

func TestSweep_IgnoresUnboundedSessions(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	_, err := f.sessions.Start(ctx, "emp-1", f.catalog.Template.ID)
	require.NoError(t, err)

	f.advance(48 * time.Hour)
	report, err := f.sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Found)
}
