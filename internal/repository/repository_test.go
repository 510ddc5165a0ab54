package repository

import (
	"context"
	"testing"
	"time"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newAssessment(t *testing.T, db *gorm.DB, status model.AssessmentStatus, deadline *time.Time) *model.Assessment {
	t.Helper()
	a := &model.Assessment{
		EmployeeID:     "emp-1",
		TestTemplateID: "tpl-1",
		Status:         status,
		MustCompleteBy: deadline,
		QuestionIDs:    []string{"q1", "q2"},
	}
	if status == model.AssessmentStatusInProgress {
		a.StartedAt = &t0
	}
	require.NoError(t, NewAssessmentRepository(db).Create(context.Background(), a))
	return a
}

func TestCatalog_FindTemplateHonoursSoftDelete(t *testing.T) {
	db := testutil.NewDB(t)
	c := testutil.SeedCatalog(t, db)
	repo := NewCatalogRepository(db, nil, 0)
	ctx := context.Background()

	require.NoError(t, db.Model(&model.TestTemplate{}).Where("id = ?", c.Template.ID).Update("deleted_at", t0).Error)

	_, err := repo.FindTemplate(ctx, c.Template.ID, ExcludeDeleted)
	assert.True(t, IsNotFound(err))

	tpl, err := repo.FindTemplate(ctx, c.Template.ID, IncludeDeleted)
	require.NoError(t, err)
	assert.True(t, tpl.IsDeleted())
}

func TestCatalog_RefreshStateTracksLiveRow(t *testing.T) {
	db := testutil.NewDB(t)
	c := testutil.SeedCatalog(t, db)
	repo := NewCatalogRepository(db, nil, 0)
	ctx := context.Background()

	cached := c.Template
	require.True(t, cached.IsActive)

	require.NoError(t, db.Model(&model.TestTemplate{}).Where("id = ?", c.Template.ID).Update("is_active", false).Error)
	require.NoError(t, repo.refreshState(ctx, &cached))
	assert.False(t, cached.IsActive)

	require.NoError(t, db.Model(&model.TestTemplate{}).Where("id = ?", c.Template.ID).Update("deleted_at", t0).Error)
	assert.True(t, IsNotFound(repo.refreshState(ctx, &cached)))

	missing := model.TestTemplate{}
	missing.ID = "missing"
	assert.True(t, IsNotFound(repo.refreshState(ctx, &missing)))
}

func TestCatalog_ListActiveSectionsOrdersEverything(t *testing.T) {
	db := testutil.NewDB(t)
	c := testutil.SeedCatalog(t, db)
	repo := NewCatalogRepository(db, nil, 0)

	require.NoError(t, db.Model(&model.QuestionOption{}).
		Where("id = ?", testutil.Option(c.MultipleAnswer, 2)).
		Update("deleted_at", t0).Error)

	sections, err := repo.ListActiveSections(context.Background(), c.Template.ID)
	require.NoError(t, err)

	require.Len(t, sections, 2)
	assert.Equal(t, "Go", sections[0].Title)
	require.Len(t, sections[0].Questions, 2)
	assert.Equal(t, c.MultipleChoice.ID, sections[0].Questions[0].ID)
	assert.Equal(t, "Go", sections[0].Questions[0].Skill.Name)
	assert.Len(t, sections[1].Questions[0].Options, 2)
}

func TestCatalog_FindQuestionsIncludesDeletedOnRequest(t *testing.T) {
	db := testutil.NewDB(t)
	c := testutil.SeedCatalog(t, db)
	repo := NewCatalogRepository(db, nil, 0)
	ctx := context.Background()

	require.NoError(t, db.Model(&model.Question{}).Where("id = ?", c.TrueFalse.ID).Update("deleted_at", t0).Error)

	live, err := repo.FindQuestions(ctx, c.QuestionIDs(), ExcludeDeleted)
	require.NoError(t, err)
	assert.Len(t, live, 3)
	assert.NotContains(t, live, c.TrueFalse.ID)

	all, err := repo.FindQuestions(ctx, c.QuestionIDs(), IncludeDeleted)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Len(t, all[c.TrueFalse.ID].Options, 2)

	empty, err := repo.FindQuestions(ctx, nil, ExcludeDeleted)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCatalog_ListActiveTemplatesCountsLiveQuestions(t *testing.T) {
	db := testutil.NewDB(t)
	c := testutil.SeedCatalog(t, db)
	repo := NewCatalogRepository(db, nil, 0)

	require.NoError(t, db.Model(&model.Question{}).Where("id = ?", c.LongAnswer.ID).Update("is_active", false).Error)

	rows, err := repo.ListActiveTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, c.Template.ID, rows[0].ID)
	assert.Equal(t, 3, rows[0].QuestionCount)
}

func TestAssessment_FindByIDHonoursSoftDelete(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAssessmentRepository(db)
	ctx := context.Background()
	a := newAssessment(t, db, model.AssessmentStatusInProgress, nil)

	require.NoError(t, db.Model(&model.Assessment{}).Where("id = ?", a.ID).Update("deleted_at", t0).Error)

	_, err := repo.FindByID(ctx, a.ID, ExcludeDeleted)
	assert.True(t, IsNotFound(err))
	_, err = repo.FindInProgress(ctx, "emp-1", "tpl-1")
	assert.True(t, IsNotFound(err))

	found, err := repo.FindByID(ctx, a.ID, IncludeDeleted)
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2"}, []string(found.QuestionIDs))
}

func TestAssessment_MarkStartedIsConditional(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAssessmentRepository(db)
	ctx := context.Background()
	a := newAssessment(t, db, model.AssessmentStatusPending, nil)

	a.StartedAt = &t0
	require.NoError(t, repo.MarkStarted(ctx, a))
	assert.Equal(t, model.AssessmentStatusInProgress, a.Status)

	assert.ErrorIs(t, repo.MarkStarted(ctx, a), ErrStaleState)
}

func TestAssessment_CompleteIsConditional(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAssessmentRepository(db)
	ctx := context.Background()
	a := newAssessment(t, db, model.AssessmentStatusInProgress, nil)

	summary := ScoreSummary{Score: 3, MaxScore: 4, Percentage: 75, Passed: true}
	skills := []model.AssessmentSkillResult{{SkillID: "s1", Score: 3, MaxScore: 4}}
	require.NoError(t, repo.Complete(ctx, a.ID, t0.Add(time.Minute), summary, skills))

	err := repo.Complete(ctx, a.ID, t0.Add(2*time.Minute), summary, skills)
	assert.ErrorIs(t, err, ErrStaleState)

	stored, err := repo.FindByID(ctx, a.ID, ExcludeDeleted)
	require.NoError(t, err)
	assert.Equal(t, model.AssessmentStatusCompleted, stored.Status)
	assert.True(t, stored.CompletedAt.Equal(t0.Add(time.Minute)))
	assert.Equal(t, 75.0, *stored.Percentage)

	rows, err := repo.ListSkillResults(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAssessment_UpsertResponseKeepsOneRow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAssessmentRepository(db)
	ctx := context.Background()
	a := newAssessment(t, db, model.AssessmentStatusInProgress, nil)

	correct := false
	first, err := repo.UpsertResponse(ctx, &model.AssessmentResponse{
		AssessmentID:      a.ID,
		QuestionID:        "q1",
		SelectedOptionIDs: []string{"o1"},
		IsCorrect:         &correct,
		TimeSpentSeconds:  5,
		AnsweredAt:        t0,
	})
	require.NoError(t, err)

	correct = true
	second, err := repo.UpsertResponse(ctx, &model.AssessmentResponse{
		AssessmentID:      a.ID,
		QuestionID:        "q1",
		SelectedOptionIDs: []string{"o2"},
		IsCorrect:         &correct,
		TimeSpentSeconds:  9,
		AnsweredAt:        t0.Add(time.Minute),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []string{"o2"}, []string(second.SelectedOptionIDs))
	assert.True(t, *second.IsCorrect)
	assert.Equal(t, 9, second.TimeSpentSeconds)

	responses, err := repo.ListResponses(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, responses, 1)
}

func TestAssessment_ListExpiredInProgress(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAssessmentRepository(db)

	past := t0.Add(-time.Minute)
	future := t0.Add(time.Minute)
	expired := newAssessment(t, db, model.AssessmentStatusInProgress, &past)
	newAssessment(t, db, model.AssessmentStatusInProgress, &future)
	newAssessment(t, db, model.AssessmentStatusInProgress, nil)
	newAssessment(t, db, model.AssessmentStatusCompleted, &past)

	rows, err := repo.ListExpiredInProgress(context.Background(), t0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, expired.ID, rows[0].ID)
}

func TestAssessment_ListByEmployeePaginates(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAssessmentRepository(db)
	for i := 0; i < 3; i++ {
		newAssessment(t, db, model.AssessmentStatusPending, nil)
	}

	page, total, err := repo.ListByEmployee(context.Background(), "emp-1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)

	_, total, err = repo.ListByEmployee(context.Background(), "emp-2", 1, 2)
	require.NoError(t, err)
	assert.Zero(t, total)
}
