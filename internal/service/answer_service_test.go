package service

import (
	"context"
	"testing"
	"time"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/testutil"
	"skill_matrix_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startSession(t *testing.T, f *engineFixture) string {
	t.Helper()
	view, err := f.sessions.Start(context.Background(), "emp-1", f.catalog.Template.ID)
	require.NoError(t, err)
	return view.AssessmentID
}

func TestSubmitAnswer_GradesChoiceQuestion(t *testing.T) {
	f := newEngineFixture(t)
	id := startSession(t, f)

	result, err := f.answers.SubmitAnswer(context.Background(), SubmitAnswerInput{
		AssessmentID:      id,
		QuestionID:        f.catalog.MultipleChoice.ID,
		SelectedOptionIDs: []string{testutil.Option(f.catalog.MultipleChoice, 0)},
		TimeSpentSeconds:  intPtr(20),
	})
	require.NoError(t, err)

	require.NotNil(t, result.IsCorrect)
	assert.True(t, *result.IsCorrect)
	assert.Equal(t, 1, *result.PointsAwarded)
	assert.Equal(t, 20, result.TimeSpentSeconds)
	assert.Equal(t, FeedbackCorrect, result.Feedback)
	assert.NotEmpty(t, result.ResponseID)
}

func TestSubmitAnswer_ResubmitOverwritesAndAccumulatesTime(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	id := startSession(t, f)
	q := f.catalog.MultipleChoice

	first, err := f.answers.SubmitAnswer(ctx, SubmitAnswerInput{
		AssessmentID:      id,
		QuestionID:        q.ID,
		SelectedOptionIDs: []string{testutil.Option(q, 1)},
		TimeSpentSeconds:  intPtr(10),
	})
	require.NoError(t, err)
	assert.False(t, *first.IsCorrect)

	f.advance(time.Minute)
	second, err := f.answers.SubmitAnswer(ctx, SubmitAnswerInput{
		AssessmentID:      id,
		QuestionID:        q.ID,
		SelectedOptionIDs: []string{testutil.Option(q, 0)},
		TimeSpentSeconds:  intPtr(15),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ResponseID, second.ResponseID)
	assert.True(t, *second.IsCorrect)
	assert.Equal(t, 25, second.TimeSpentSeconds)

	var rows []model.AssessmentResponse
	require.NoError(t, f.db.Where("assessment_id = ?", id).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{testutil.Option(q, 0)}, []string(rows[0].SelectedOptionIDs))
	assert.True(t, rows[0].AnsweredAt.Equal(f.clock))
}

func TestSubmitAnswer_SubjectiveIsPending(t *testing.T) {
	f := newEngineFixture(t)
	id := startSession(t, f)

	result, err := f.answers.SubmitAnswer(context.Background(), SubmitAnswerInput{
		AssessmentID: id,
		QuestionID:   f.catalog.LongAnswer.ID,
		TextResponse: strPtr("token bucket per client"),
	})
	require.NoError(t, err)

	assert.Nil(t, result.IsCorrect)
	assert.Nil(t, result.PointsAwarded)
	assert.Equal(t, 0, result.TimeSpentSeconds)
	assert.Equal(t, FeedbackPending, result.Feedback)
}

func TestSubmitAnswer_Validation(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	id := startSession(t, f)

	_, err := f.answers.SubmitAnswer(ctx, SubmitAnswerInput{
		AssessmentID:     id,
		QuestionID:       f.catalog.MultipleChoice.ID,
		TimeSpentSeconds: intPtr(-1),
	})
	assert.ErrorIs(t, err, util.ErrNegativeTimeSpent)

	_, err = f.answers.SubmitAnswer(ctx, SubmitAnswerInput{
		AssessmentID:      id,
		QuestionID:        f.catalog.MultipleChoice.ID,
		SelectedOptionIDs: []string{testutil.Option(f.catalog.TrueFalse, 0)},
	})
	assert.ErrorIs(t, err, util.ErrInvalidOption)
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	_, err = f.answers.SubmitAnswer(ctx, SubmitAnswerInput{QuestionID: f.catalog.MultipleChoice.ID})
	assert.Equal(t, util.KindValidation, util.KindOf(err))
}

func TestSubmitAnswer_QuestionOutsideAssessment(t *testing.T) {
	f := newEngineFixture(t, testutil.WithRandomized(2))
	f.sessions.shuffle = func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
	ctx := context.Background()
	id := startSession(t, f)

	// MultipleChoice exists in the catalog but was not drawn
	_, err := f.answers.SubmitAnswer(ctx, SubmitAnswerInput{
		AssessmentID:      id,
		QuestionID:        f.catalog.MultipleChoice.ID,
		SelectedOptionIDs: []string{testutil.Option(f.catalog.MultipleChoice, 0)},
	})
	assert.ErrorIs(t, err, util.ErrQuestionNotInAssessment)

	_, err = f.answers.SubmitAnswer(ctx, SubmitAnswerInput{AssessmentID: id, QuestionID: "missing"})
	assert.ErrorIs(t, err, util.ErrQuestionNotInAssessment)
	assert.Equal(t, util.KindNotFound, util.KindOf(err))
}

func TestSubmitAnswer_StateErrors(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	_, err := f.answers.SubmitAnswer(ctx, SubmitAnswerInput{AssessmentID: "missing", QuestionID: f.catalog.MultipleChoice.ID})
	assert.ErrorIs(t, err, util.ErrAssessmentNotFound)

	assigned, err := f.sessions.Assign(ctx, "emp-1", f.catalog.Template.ID, "")
	require.NoError(t, err)
	_, err = f.answers.SubmitAnswer(ctx, SubmitAnswerInput{AssessmentID: assigned.ID, QuestionID: f.catalog.MultipleChoice.ID})
	assert.ErrorIs(t, err, util.ErrAssessmentNotStarted)

	id := startSession(t, f)
	_, err = f.sessions.Submit(ctx, id)
	require.NoError(t, err)
	_, err = f.answers.SubmitAnswer(ctx, SubmitAnswerInput{
		AssessmentID:      id,
		QuestionID:        f.catalog.MultipleChoice.ID,
		SelectedOptionIDs: []string{testutil.Option(f.catalog.MultipleChoice, 0)},
	})
	assert.ErrorIs(t, err, util.ErrAssessmentNotInProgress)
	assert.Equal(t, util.KindInvalidState, util.KindOf(err))
}

func TestSubmitAnswer_AfterDeadlineIsStillAccepted(t *testing.T) {
	f := newEngineFixture(t, testutil.WithTimeLimit(5))
	id := startSession(t, f)

	f.advance(10 * time.Minute)
	_, err := f.answers.SubmitAnswer(context.Background(), SubmitAnswerInput{
		AssessmentID:      id,
		QuestionID:        f.catalog.TrueFalse.ID,
		SelectedOptionIDs: []string{testutil.Option(f.catalog.TrueFalse, 1)},
	})
	assert.NoError(t, err)
}

func TestApplyExternalGrade_ReaggregatesFinishedAssessment(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	c := f.catalog
	id := startSession(t, f)

	for _, in := range []SubmitAnswerInput{
		{QuestionID: c.MultipleChoice.ID, SelectedOptionIDs: []string{testutil.Option(c.MultipleChoice, 0)}},
		{QuestionID: c.TrueFalse.ID, SelectedOptionIDs: []string{testutil.Option(c.TrueFalse, 1)}},
		{QuestionID: c.LongAnswer.ID, TextResponse: strPtr("sliding window")},
	} {
		in.AssessmentID = id
		_, err := f.answers.SubmitAnswer(ctx, in)
		require.NoError(t, err)
	}
	before, err := f.sessions.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, before.TotalScore)
	assert.Equal(t, 1, before.PendingReviewQuestions)

	patched, err := f.answers.ApplyExternalGrade(ctx, id, c.LongAnswer.ID, GradePatchInput{
		PointsAwarded: 3,
		Feedback:      "clear and complete",
		GradedBy:      "grader-1",
	})
	require.NoError(t, err)

	require.NotNil(t, patched.Response.IsCorrect)
	assert.True(t, *patched.Response.IsCorrect)
	assert.Equal(t, "grader-1", patched.Response.GradedBy)
	require.NotNil(t, patched.Result)
	assert.Equal(t, 5, patched.Result.TotalScore)
	assert.Equal(t, 0, patched.Result.PendingReviewQuestions)
	assert.True(t, patched.Result.Passed)

	stored, err := f.sessions.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5, *stored.Score)
	assert.True(t, *stored.Passed)

	result, err := f.sessions.Result(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "clear and complete", result.QuestionResults[3].Feedback)
}

func TestApplyExternalGrade_DefaultsCorrectnessFromPoints(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	id := startSession(t, f)

	_, err := f.answers.SubmitAnswer(ctx, SubmitAnswerInput{
		AssessmentID: id,
		QuestionID:   f.catalog.LongAnswer.ID,
		TextResponse: strPtr("partial"),
	})
	require.NoError(t, err)

	patched, err := f.answers.ApplyExternalGrade(ctx, id, f.catalog.LongAnswer.ID, GradePatchInput{PointsAwarded: 2})
	require.NoError(t, err)
	assert.False(t, *patched.Response.IsCorrect)
	assert.Equal(t, 2, *patched.Response.PointsAwarded)
	assert.Nil(t, patched.Result)

	patched, err = f.answers.ApplyExternalGrade(ctx, id, f.catalog.LongAnswer.ID, GradePatchInput{PointsAwarded: 2, IsCorrect: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, *patched.Response.IsCorrect)
}

func TestApplyExternalGrade_Errors(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	id := startSession(t, f)

	_, err := f.answers.ApplyExternalGrade(ctx, id, f.catalog.LongAnswer.ID, GradePatchInput{PointsAwarded: 1})
	assert.Equal(t, util.KindNotFound, util.KindOf(err))

	_, err = f.answers.SubmitAnswer(ctx, SubmitAnswerInput{
		AssessmentID: id,
		QuestionID:   f.catalog.LongAnswer.ID,
		TextResponse: strPtr("answer"),
	})
	require.NoError(t, err)

	_, err = f.answers.ApplyExternalGrade(ctx, id, f.catalog.LongAnswer.ID, GradePatchInput{PointsAwarded: 4})
	assert.ErrorIs(t, err, util.ErrPointsOutOfRange)

	_, err = f.answers.ApplyExternalGrade(ctx, id, f.catalog.MultipleChoice.ID, GradePatchInput{PointsAwarded: 1})
	assert.ErrorIs(t, err, util.ErrQuestionNotGradable)

	_, err = f.answers.ApplyExternalGrade(ctx, "missing", f.catalog.LongAnswer.ID, GradePatchInput{})
	assert.ErrorIs(t, err, util.ErrAssessmentNotFound)
}
