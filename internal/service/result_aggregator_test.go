package service

import (
	"fmt"
	"testing"
	"time"

	"skill_matrix_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

type aggregatorFixture struct {
	skill     model.Skill
	questions map[string]*model.Question
	a         *model.Assessment
	tpl       *model.TestTemplate
}

// three questions of one skill worth 1, 2 and 3 points
func newAggregatorFixture() *aggregatorFixture {
	f := &aggregatorFixture{skill: model.Skill{Code: "GO", Name: "Go"}}
	f.skill.ID = "skill-go"

	f.questions = map[string]*model.Question{}
	for i, id := range []string{"q1", "q2", "q3"} {
		q := &model.Question{Type: model.QuestionTypeMultipleChoice, Points: i + 1, SkillID: &f.skill.ID, Skill: &f.skill}
		q.ID = id
		f.questions[id] = q
	}

	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	completed := started.Add(30 * time.Minute)
	f.a = &model.Assessment{
		EmployeeID:     "emp-1",
		TestTemplateID: "tpl-1",
		Title:          "Go basics",
		Status:         model.AssessmentStatusCompleted,
		StartedAt:      &started,
		CompletedAt:    &completed,
		QuestionIDs:    []string{"q1", "q2", "q3"},
	}
	f.a.ID = "a-1"
	f.tpl = &model.TestTemplate{Title: "Go basics", PassingScore: 70}
	return f
}

func graded(qid string, correct bool, points int) model.AssessmentResponse {
	return model.AssessmentResponse{QuestionID: qid, IsCorrect: &correct, PointsAwarded: &points}
}

func TestBuildResult_Totals(t *testing.T) {
	f := newAggregatorFixture()
	result := BuildResult(ResultInput{
		Assessment: f.a,
		Template:   f.tpl,
		Questions:  f.questions,
		Responses: []model.AssessmentResponse{
			graded("q1", true, 1),
			graded("q2", false, 0),
		},
	})

	assert.Equal(t, 1, result.TotalScore)
	assert.Equal(t, 6, result.MaxScore)
	assert.InDelta(t, 16.6667, result.Percentage, 0.001)
	assert.Equal(t, 16.7, result.DisplayPercentage)
	assert.False(t, result.Passed)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 1, result.WrongAnswers)
	assert.Equal(t, 1, result.UnansweredQuestions)
	assert.Equal(t, 0, result.PendingReviewQuestions)
	assert.Equal(t, 30.0, result.TotalTimeMinutes)
	assert.False(t, result.SubmittedLate)

	require.Len(t, result.QuestionResults, 3)
	assert.Equal(t, 1, result.QuestionResults[0].QuestionNumber)
	assert.True(t, result.QuestionResults[0].Answered)
	assert.False(t, result.QuestionResults[2].Answered)
	assert.Empty(t, result.QuestionResults[2].SelectedOptionIDs)
}

func TestBuildResult_PassesAtThreshold(t *testing.T) {
	f := newAggregatorFixture()
	f.tpl.PassingScore = 50

	result := BuildResult(ResultInput{
		Assessment: f.a,
		Template:   f.tpl,
		Questions:  f.questions,
		Responses:  []model.AssessmentResponse{graded("q3", true, 3)},
	})

	assert.Equal(t, 50.0, result.Percentage)
	assert.True(t, result.Passed)
}

func TestBuildResult_PassesAtExactThreshold(t *testing.T) {
	f := newAggregatorFixture()
	f.questions = map[string]*model.Question{}
	f.a.QuestionIDs = nil
	var responses []model.AssessmentResponse
	for i := 0; i < 100; i++ {
		q := &model.Question{Type: model.QuestionTypeMultipleChoice, Points: 1}
		q.ID = fmt.Sprintf("q%d", i)
		f.questions[q.ID] = q
		f.a.QuestionIDs = append(f.a.QuestionIDs, q.ID)
		if i < 29 {
			responses = append(responses, graded(q.ID, true, 1))
		}
	}
	f.tpl.PassingScore = 29

	result := BuildResult(ResultInput{Assessment: f.a, Template: f.tpl, Questions: f.questions, Responses: responses})

	assert.Equal(t, 29.0, result.Percentage)
	assert.True(t, result.Passed)
}

func TestBuildResult_PercentageIsExactForSmallTests(t *testing.T) {
	for max := 1; max <= 50; max++ {
		for score := 0; score <= max; score++ {
			tl := tally{score: score, maxScore: max}
			assert.Equal(t, 100*float64(score)/float64(max), tl.percentage(), "%d/%d", score, max)
		}
	}
}

func TestBuildResult_MissingTemplateKeepsStoredVerdict(t *testing.T) {
	f := newAggregatorFixture()
	responses := []model.AssessmentResponse{graded("q3", true, 3)}

	result := BuildResult(ResultInput{Assessment: f.a, Questions: f.questions, Responses: responses})
	assert.False(t, result.Passed)

	f.a.Passed = boolPtr(true)
	result = BuildResult(ResultInput{Assessment: f.a, Questions: f.questions, Responses: responses})
	assert.True(t, result.Passed)
}

func TestBuildResult_PendingCountsTowardMaxOnly(t *testing.T) {
	f := newAggregatorFixture()
	result := BuildResult(ResultInput{
		Assessment: f.a,
		Template:   f.tpl,
		Questions:  f.questions,
		Responses: []model.AssessmentResponse{
			graded("q1", true, 1),
			{QuestionID: "q3"},
		},
	})

	assert.Equal(t, 1, result.TotalScore)
	assert.Equal(t, 6, result.MaxScore)
	assert.Equal(t, 1, result.PendingReviewQuestions)
	assert.Equal(t, 1, result.UnansweredQuestions)
	assert.Nil(t, result.QuestionResults[2].IsCorrect)
}

func TestBuildResult_ZeroMaxScore(t *testing.T) {
	f := newAggregatorFixture()
	for _, q := range f.questions {
		q.Points = 0
	}
	f.tpl.PassingScore = 0

	result := BuildResult(ResultInput{Assessment: f.a, Template: f.tpl, Questions: f.questions})

	assert.Equal(t, 0.0, result.Percentage)
	assert.True(t, result.Passed)
}

func TestBuildResult_SkillBreakdown(t *testing.T) {
	f := newAggregatorFixture()
	other := model.Skill{Code: "SQL", Name: "SQL"}
	other.ID = "skill-sql"
	f.questions["q3"].SkillID = &other.ID
	f.questions["q3"].Skill = &other

	result := BuildResult(ResultInput{
		Assessment: f.a,
		Template:   f.tpl,
		Questions:  f.questions,
		Responses: []model.AssessmentResponse{
			graded("q1", true, 1),
			graded("q2", true, 2),
			graded("q3", false, 0),
		},
	})

	require.Len(t, result.SkillResults, 2)
	goResult, sqlResult := result.SkillResults[0], result.SkillResults[1]
	assert.Equal(t, "skill-go", goResult.SkillID)
	assert.Equal(t, "Go", goResult.SkillName)
	assert.Equal(t, 3, goResult.Score)
	assert.Equal(t, 3, goResult.MaxScore)
	assert.Equal(t, 100.0, goResult.Percentage)
	assert.Equal(t, "skill-sql", sqlResult.SkillID)
	assert.Equal(t, 1, sqlResult.WrongAnswers)
	assert.Equal(t, 0.0, sqlResult.Percentage)

	rows := result.SkillResultModels()
	require.Len(t, rows, 2)
	assert.Equal(t, "a-1", rows[0].AssessmentID)
}

func TestBuildResult_QuestionWithoutSkillIsOnlyInTotals(t *testing.T) {
	f := newAggregatorFixture()
	f.questions["q2"].SkillID = nil
	f.questions["q2"].Skill = nil

	result := BuildResult(ResultInput{Assessment: f.a, Template: f.tpl, Questions: f.questions})

	require.Len(t, result.SkillResults, 1)
	assert.Equal(t, 2, result.SkillResults[0].TotalQuestions)
	assert.Equal(t, 6, result.MaxScore)
}

func TestBuildResult_LateSubmission(t *testing.T) {
	f := newAggregatorFixture()
	deadline := f.a.StartedAt.Add(20 * time.Minute)
	f.a.MustCompleteBy = &deadline

	result := BuildResult(ResultInput{Assessment: f.a, Template: f.tpl, Questions: f.questions})

	assert.True(t, result.SubmittedLate)
}

func TestBuildResult_OptionFeedback(t *testing.T) {
	f := newAggregatorFixture()
	q := f.questions["q1"]
	q.Options = []model.QuestionOption{
		{Content: "go", IsCorrect: true, Explanation: "starts a goroutine"},
		{Content: "async"},
	}
	q.Options[0].ID, q.Options[1].ID = "o1", "o2"

	resp := graded("q1", false, 0)
	resp.SelectedOptionIDs = []string{"o2"}
	result := BuildResult(ResultInput{
		Assessment: f.a,
		Template:   f.tpl,
		Questions:  f.questions,
		Responses:  []model.AssessmentResponse{resp},
	})

	qr := result.QuestionResults[0]
	assert.Equal(t, []string{"o1"}, qr.CorrectOptionIDs)
	assert.Equal(t, "go", qr.CorrectAnswer)
	assert.Equal(t, "starts a goroutine", qr.Explanation)
	assert.False(t, qr.Options[0].WasSelected)
	assert.True(t, qr.Options[1].WasSelected)
}

func TestBuildResult_DoesNotMutateInput(t *testing.T) {
	f := newAggregatorFixture()
	in := ResultInput{
		Assessment: f.a,
		Template:   f.tpl,
		Questions:  f.questions,
		Responses:  []model.AssessmentResponse{graded("q2", true, 2)},
	}

	first := BuildResult(in)
	second := BuildResult(in)

	assert.Equal(t, first, second)
	assert.Nil(t, f.a.Score)
}
