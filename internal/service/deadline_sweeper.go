package service

import (
	"context"

	"skill_matrix_backend/pkg/logger"
	"skill_matrix_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// DeadlineSweeper force-submits in-progress assessments whose deadline has passed.
// The engine itself never does this; the sweeper runs as a scheduled job.
type DeadlineSweeper struct {
	Sessions  *SessionManager
	BatchSize int
}

func NewDeadlineSweeper(sessions *SessionManager, batchSize int) *DeadlineSweeper {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &DeadlineSweeper{Sessions: sessions, BatchSize: batchSize}
}

type SweepReport struct {
	Found     int `json:"found"`
	Submitted int `json:"submitted"`
	Failed    int `json:"failed"`
}

// Sweep handles one batch. A failing assessment is logged and skipped.
func (w *DeadlineSweeper) Sweep(ctx context.Context) (SweepReport, error) {
	var report SweepReport

	expired, err := w.Sessions.Assessments.ListExpiredInProgress(ctx, w.Sessions.now(), w.BatchSize)
	if err != nil {
		return report, err
	}
	report.Found = len(expired)

	for i := range expired {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		a := &expired[i]
		if _, err := w.Sessions.submit(ctx, a.ID, TriggerDeadline); err != nil {
			report.Failed++
			monitoring.SweepSubmitted.WithLabelValues("failed").Inc()
			logger.Log.Error("Failed to auto-submit expired assessment",
				zap.String("assessmentId", a.ID),
				zap.Error(err),
			)
			continue
		}
		report.Submitted++
		monitoring.SweepSubmitted.WithLabelValues("submitted").Inc()
	}

	if report.Found > 0 {
		logger.Log.Info("Auto-submitted expired assessments",
			zap.Int("found", report.Found),
			zap.Int("submitted", report.Submitted),
			zap.Int("failed", report.Failed),
		)
	}
	return report, nil
}

// SweepAll repeats Sweep until a batch comes back short.
func (w *DeadlineSweeper) SweepAll(ctx context.Context) (SweepReport, error) {
	var total SweepReport
	for {
		r, err := w.Sweep(ctx)
		total.Found += r.Found
		total.Submitted += r.Submitted
		total.Failed += r.Failed
		if err != nil || r.Found < w.BatchSize || r.Submitted == 0 {
			return total, err
		}
	}
}

