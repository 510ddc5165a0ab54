package service

import (
	"context"
	"time"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/util"
	"skill_matrix_backend/pkg/lock"
	"skill_matrix_backend/pkg/logger"
	"skill_matrix_backend/pkg/monitoring"
	"skill_matrix_backend/pkg/tracing"

	"go.uber.org/zap"
)

// passRatio is the share of a question's points at which an external grade counts as correct.
const passRatio = 0.7

// AnswerRecorder keeps exactly one response per (assessment, question).
type AnswerRecorder struct {
	Catalog     *repository.CatalogRepository
	Assessments *repository.AssessmentRepository
	Locker      lock.Locker

	now func() time.Time
}

func NewAnswerRecorder(catalog *repository.CatalogRepository, assessments *repository.AssessmentRepository, locker lock.Locker) *AnswerRecorder {
	return &AnswerRecorder{
		Catalog:     catalog,
		Assessments: assessments,
		Locker:      locker,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SubmitAnswer grades and upserts one answer. Resubmitting overwrites the payload
// and adds the reported time to the stored total.
func (r *AnswerRecorder) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (result *SubmitAnswerResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "AnswerRecorder.SubmitAnswer", in.AssessmentID)
	defer func() { tracing.EndSpan(span, err) }()

	if in.AssessmentID == "" || in.QuestionID == "" {
		return nil, util.ValidationError("assessmentId and questionId are required")
	}
	spent := 0
	if in.TimeSpentSeconds != nil {
		if *in.TimeSpentSeconds < 0 {
			return nil, util.ErrNegativeTimeSpent
		}
		spent = *in.TimeSpentSeconds
	}

	unlock, err := r.Locker.Lock(ctx, in.AssessmentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		saved    *model.AssessmentResponse
		verdict  Verdict
		question *model.Question
	)
	err = r.Assessments.Transaction(ctx, func(tx *repository.AssessmentRepository) error {
		a, err := tx.LockByID(ctx, in.AssessmentID)
		if err != nil {
			if repository.IsNotFound(err) {
				return util.ErrAssessmentNotFound
			}
			return err
		}
		if a.Status != model.AssessmentStatusInProgress {
			if a.Status.NotStarted() {
				return util.ErrAssessmentNotStarted
			}
			return util.ErrAssessmentNotInProgress
		}

		question, err = questionInAssessment(ctx, r.Catalog.WithDB(tx.DB), a, in.QuestionID)
		if err != nil {
			return err
		}

		selected := uniqueIDs(in.SelectedOptionIDs)
		for _, id := range selected {
			if !question.HasOption(id) {
				return util.ErrInvalidOption
			}
		}

		verdict, err = Grade(question, Answer{
			SelectedOptionIDs: selected,
			TextResponse:      in.TextResponse,
			CodeResponse:      in.CodeResponse,
		})
		if err != nil {
			return err
		}

		cumulative := spent
		existing, err := tx.FindResponse(ctx, a.ID, question.ID)
		switch {
		case err == nil:
			cumulative += existing.TimeSpentSeconds
		case !repository.IsNotFound(err):
			return err
		}

		saved, err = tx.UpsertResponse(ctx, &model.AssessmentResponse{
			AssessmentID:      a.ID,
			QuestionID:        question.ID,
			SelectedOptionIDs: selected,
			TextResponse:      in.TextResponse,
			CodeResponse:      in.CodeResponse,
			IsCorrect:         verdict.IsCorrect,
			PointsAwarded:     verdict.PointsAwarded,
			TimeSpentSeconds:  cumulative,
			AnsweredAt:        r.now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	monitoring.AnswersRecorded.WithLabelValues(string(question.Type), verdict.Label()).Inc()
	logger.Log.Debug("Answer recorded",
		zap.String("assessmentId", in.AssessmentID),
		zap.String("questionId", in.QuestionID),
		zap.String("verdict", verdict.Label()),
		zap.Int("timeSpentSeconds", saved.TimeSpentSeconds),
	)

	return &SubmitAnswerResult{
		ResponseID:       saved.ID,
		QuestionID:       saved.QuestionID,
		IsCorrect:        saved.IsCorrect,
		PointsAwarded:    saved.PointsAwarded,
		TimeSpentSeconds: saved.TimeSpentSeconds,
		Feedback:         verdict.Feedback(),
	}, nil
}

// ApplyExternalGrade fills in the verdict for a subjective response. Finished
// assessments are re-aggregated and their stored scores replaced.
func (r *AnswerRecorder) ApplyExternalGrade(ctx context.Context, assessmentID, questionID string, in GradePatchInput) (result *GradePatchResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "AnswerRecorder.ApplyExternalGrade", assessmentID)
	defer func() { tracing.EndSpan(span, err) }()

	unlock, err := r.Locker.Lock(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	result = &GradePatchResult{}
	err = r.Assessments.Transaction(ctx, func(tx *repository.AssessmentRepository) error {
		catalog := r.Catalog.WithDB(tx.DB)

		a, err := tx.LockByID(ctx, assessmentID)
		if err != nil {
			if repository.IsNotFound(err) {
				return util.ErrAssessmentNotFound
			}
			return err
		}
		if a.Status.NotStarted() {
			return util.ErrAssessmentNotStarted
		}

		q, err := questionInAssessment(ctx, catalog, a, questionID)
		if err != nil {
			return err
		}
		if q.Type.IsChoice() {
			return util.ErrQuestionNotGradable
		}
		if in.PointsAwarded < 0 || in.PointsAwarded > q.Points {
			return util.ErrPointsOutOfRange
		}

		resp, err := tx.FindResponse(ctx, a.ID, q.ID)
		if err != nil {
			if repository.IsNotFound(err) {
				return util.NotFoundError("no response recorded for question %s", q.ID)
			}
			return err
		}

		correct := float64(in.PointsAwarded) >= passRatio*float64(q.Points)
		if in.IsCorrect != nil {
			correct = *in.IsCorrect
		}
		points := in.PointsAwarded
		now := r.now()
		resp.IsCorrect = &correct
		resp.PointsAwarded = &points
		resp.GradedAt = &now
		resp.GradedBy = in.GradedBy
		resp.Feedback = in.Feedback
		if err := tx.UpdateResponseGrade(ctx, resp); err != nil {
			return err
		}
		result.Response = resp

		if !a.Status.Finished() {
			return nil
		}
		input, err := loadResultInput(ctx, catalog, tx, a)
		if err != nil {
			return err
		}
		result.Result = BuildResult(input)
		return tx.SaveScores(ctx, a.ID, repository.ScoreSummary{
			Score:      result.Result.TotalScore,
			MaxScore:   result.Result.MaxScore,
			Percentage: result.Result.Percentage,
			Passed:     result.Result.Passed,
		}, result.Result.SkillResultModels())
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("External grade applied",
		zap.String("assessmentId", assessmentID),
		zap.String("questionId", questionID),
		zap.String("gradedBy", in.GradedBy),
		zap.Int("points", in.PointsAwarded),
		zap.Bool("reaggregated", result.Result != nil),
	)
	return result, nil
}

func questionInAssessment(ctx context.Context, catalog *repository.CatalogRepository, a *model.Assessment, questionID string) (*model.Question, error) {
	if !a.HasQuestion(questionID) {
		return nil, util.ErrQuestionNotInAssessment
	}
	questions, err := catalog.FindQuestions(ctx, []string{questionID}, repository.IncludeDeleted)
	if err != nil {
		return nil, err
	}
	q, ok := questions[questionID]
	if !ok {
		return nil, util.ErrQuestionNotInAssessment
	}
	return q, nil
}
