package repository

import (
	"context"
	"time"

	"skill_matrix_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// Transaction runs fn against a repository bound to a single database transaction.
func (r *AssessmentRepository) Transaction(ctx context.Context, fn func(tx *AssessmentRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AssessmentRepository{DB: tx})
	})
}

func (r *AssessmentRepository) Create(ctx context.Context, a *model.Assessment) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *AssessmentRepository) FindByID(ctx context.Context, id string, deleted SoftDelete) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.WithContext(ctx).
		Scopes(deleted.Scope("deleted_at")).
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// LockByID reads the assessment with a row lock held until the surrounding transaction ends.
// SQLite has no row locks; its single writer gives the same serialization.
func (r *AssessmentRepository) LockByID(ctx context.Context, id string) (*model.Assessment, error) {
	q := r.DB.WithContext(ctx).Scopes(ExcludeDeleted.Scope("deleted_at"))
	if r.DB.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var a model.Assessment
	if err := q.First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindInProgress returns the newest in-progress assessment for the pair.
func (r *AssessmentRepository) FindInProgress(ctx context.Context, employeeID, templateID string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.WithContext(ctx).
		Scopes(ExcludeDeleted.Scope("deleted_at")).
		Where("employee_id = ? AND test_template_id = ? AND status = ?", employeeID, templateID, model.AssessmentStatusInProgress).
		Order("started_at DESC").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// MarkStarted moves a not-yet-started assessment to InProgress. It fails with
// ErrStaleState when the row is no longer Draft or Pending.
func (r *AssessmentRepository) MarkStarted(ctx context.Context, a *model.Assessment) error {
	res := r.DB.WithContext(ctx).Model(&model.Assessment{}).
		Scopes(ExcludeDeleted.Scope("deleted_at")).
		Where("id = ? AND status IN ?", a.ID, []model.AssessmentStatus{model.AssessmentStatusDraft, model.AssessmentStatusPending}).
		Updates(map[string]interface{}{
			"status":           model.AssessmentStatusInProgress,
			"started_at":       a.StartedAt,
			"must_complete_by": a.MustCompleteBy,
			"question_ids":     a.QuestionIDs,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleState
	}
	a.Status = model.AssessmentStatusInProgress
	return nil
}

type ScoreSummary struct {
	Score      int
	MaxScore   int
	Percentage float64
	Passed     bool
}

func (s ScoreSummary) columns() map[string]interface{} {
	return map[string]interface{}{
		"score":      s.Score,
		"max_score":  s.MaxScore,
		"percentage": s.Percentage,
		"passed":     s.Passed,
	}
}

// Complete finalizes an in-progress assessment and replaces its skill results.
// It fails with ErrStaleState when the assessment already left InProgress.
func (r *AssessmentRepository) Complete(ctx context.Context, id string, completedAt time.Time, summary ScoreSummary, skills []model.AssessmentSkillResult) error {
	cols := summary.columns()
	cols["status"] = model.AssessmentStatusCompleted
	cols["completed_at"] = completedAt

	res := r.DB.WithContext(ctx).Model(&model.Assessment{}).
		Where("id = ? AND status = ?", id, model.AssessmentStatusInProgress).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleState
	}
	return r.replaceSkillResults(ctx, id, skills)
}

// SaveScores rewrites the score columns and skill results of a finished assessment.
func (r *AssessmentRepository) SaveScores(ctx context.Context, id string, summary ScoreSummary, skills []model.AssessmentSkillResult) error {
	err := r.DB.WithContext(ctx).Model(&model.Assessment{}).
		Where("id = ?", id).
		Updates(summary.columns()).Error
	if err != nil {
		return err
	}
	return r.replaceSkillResults(ctx, id, skills)
}

func (r *AssessmentRepository) replaceSkillResults(ctx context.Context, id string, skills []model.AssessmentSkillResult) error {
	if err := r.DB.WithContext(ctx).Where("assessment_id = ?", id).Delete(&model.AssessmentSkillResult{}).Error; err != nil {
		return err
	}
	if len(skills) == 0 {
		return nil
	}
	for i := range skills {
		skills[i].AssessmentID = id
	}
	return r.DB.WithContext(ctx).Create(&skills).Error
}

func (r *AssessmentRepository) FindResponse(ctx context.Context, assessmentID, questionID string) (*model.AssessmentResponse, error) {
	var resp model.AssessmentResponse
	err := r.DB.WithContext(ctx).
		Scopes(ExcludeDeleted.Scope("deleted_at")).
		Where("assessment_id = ? AND question_id = ?", assessmentID, questionID).
		First(&resp).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

var responseUpsertColumns = []string{
	"selected_option_ids",
	"text_response",
	"code_response",
	"is_correct",
	"points_awarded",
	"time_spent_seconds",
	"answered_at",
	"graded_at",
	"graded_by",
	"feedback",
	"updated_at",
}

// UpsertResponse writes the single response row for (assessment, question) in one
// statement; the unique index decides between insert and update.
func (r *AssessmentRepository) UpsertResponse(ctx context.Context, resp *model.AssessmentResponse) (*model.AssessmentResponse, error) {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "assessment_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns(responseUpsertColumns),
		}).
		Create(resp).Error
	if err != nil {
		return nil, err
	}
	// the insert may have resolved to an existing row with a different id
	return r.FindResponse(ctx, resp.AssessmentID, resp.QuestionID)
}

func (r *AssessmentRepository) ListResponses(ctx context.Context, assessmentID string) ([]model.AssessmentResponse, error) {
	var responses []model.AssessmentResponse
	err := r.DB.WithContext(ctx).
		Scopes(ExcludeDeleted.Scope("deleted_at")).
		Where("assessment_id = ?", assessmentID).
		Order("answered_at ASC").
		Find(&responses).Error
	return responses, err
}

func (r *AssessmentRepository) UpdateResponseGrade(ctx context.Context, resp *model.AssessmentResponse) error {
	return r.DB.WithContext(ctx).Model(&model.AssessmentResponse{}).
		Where("id = ?", resp.ID).
		Updates(map[string]interface{}{
			"is_correct":     resp.IsCorrect,
			"points_awarded": resp.PointsAwarded,
			"graded_at":      resp.GradedAt,
			"graded_by":      resp.GradedBy,
			"feedback":       resp.Feedback,
		}).Error
}

func (r *AssessmentRepository) ListSkillResults(ctx context.Context, assessmentID string) ([]model.AssessmentSkillResult, error) {
	var results []model.AssessmentSkillResult
	err := r.DB.WithContext(ctx).
		Scopes(ExcludeDeleted.Scope("deleted_at")).
		Where("assessment_id = ?", assessmentID).
		Find(&results).Error
	return results, err
}

// ListExpiredInProgress returns up to limit in-progress assessments whose deadline is before now.
func (r *AssessmentRepository) ListExpiredInProgress(ctx context.Context, now time.Time, limit int) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.DB.WithContext(ctx).
		Scopes(ExcludeDeleted.Scope("deleted_at")).
		Where("status = ? AND must_complete_by IS NOT NULL AND must_complete_by < ?", model.AssessmentStatusInProgress, now).
		Order("must_complete_by ASC").
		Limit(limit).
		Find(&assessments).Error
	return assessments, err
}

func (r *AssessmentRepository) ListByEmployee(ctx context.Context, employeeID string, page, limit int) ([]model.Assessment, int64, error) {
	byEmployee := func(db *gorm.DB) *gorm.DB {
		return db.Scopes(ExcludeDeleted.Scope("deleted_at")).Where("employee_id = ?", employeeID)
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.Assessment{}).Scopes(byEmployee).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assessments []model.Assessment
	err := r.DB.WithContext(ctx).
		Scopes(byEmployee).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&assessments).Error
	return assessments, total, err
}

type AttemptStatRow struct {
	TestTemplateID string   `json:"testTemplateId"`
	Attempts       int      `json:"attempts"`
	BestPercentage *float64 `json:"bestPercentage"`
}

// AttemptStats counts every started attempt per template and the best finished percentage.
func (r *AssessmentRepository) AttemptStats(ctx context.Context, employeeID string) (map[string]AttemptStatRow, error) {
	var rows []AttemptStatRow
	err := r.DB.WithContext(ctx).Model(&model.Assessment{}).
		Select("test_template_id, COUNT(*) AS attempts, MAX(percentage) AS best_percentage").
		Scopes(ExcludeDeleted.Scope("deleted_at")).
		Where("employee_id = ? AND status NOT IN ?", employeeID,
			[]model.AssessmentStatus{model.AssessmentStatusDraft, model.AssessmentStatusPending}).
		Group("test_template_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[string]AttemptStatRow, len(rows))
	for _, row := range rows {
		stats[row.TestTemplateID] = row
	}
	return stats, nil
}
