package service

import (
	"math"
	"strings"

	"skill_matrix_backend/internal/model"
)

// ResultInput is everything the aggregator reads. Questions must include rows that
// were soft-deleted after the assessment started.
type ResultInput struct {
	Assessment *model.Assessment
	Template   *model.TestTemplate
	Questions  map[string]*model.Question
	Responses  []model.AssessmentResponse
}

type tally struct {
	correct, wrong, pending, answered, total int
	score, maxScore                          int
}

func (t *tally) add(q *model.Question, resp *model.AssessmentResponse) {
	t.total++
	if q != nil {
		t.maxScore += q.Points
	}
	if resp == nil {
		return
	}
	t.answered++
	switch {
	case resp.IsCorrect == nil:
		t.pending++
	case *resp.IsCorrect:
		t.correct++
	default:
		t.wrong++
	}
	if resp.PointsAwarded != nil {
		t.score += *resp.PointsAwarded
	}
}

func (t *tally) percentage() float64 {
	if t.maxScore == 0 {
		return 0
	}
	return float64(t.score) * 100 / float64(t.maxScore)
}

// BuildResult recomputes the whole result from scratch. It never mutates its input
// and can be called any number of times.
func BuildResult(in ResultInput) *AssessmentResult {
	a := in.Assessment

	byQuestion := make(map[string]*model.AssessmentResponse, len(in.Responses))
	for i := range in.Responses {
		byQuestion[in.Responses[i].QuestionID] = &in.Responses[i]
	}

	var overall tally
	skillOrder := make([]string, 0)
	skills := make(map[string]*tally)
	skillInfo := make(map[string]*model.Skill)
	questionResults := make([]QuestionResult, 0, len(a.QuestionIDs))

	for i, qid := range a.QuestionIDs {
		q := in.Questions[qid]
		resp := byQuestion[qid]
		overall.add(q, resp)

		if q == nil {
			continue
		}
		if q.SkillID != nil && *q.SkillID != "" {
			sid := *q.SkillID
			t, ok := skills[sid]
			if !ok {
				t = &tally{}
				skills[sid] = t
				skillOrder = append(skillOrder, sid)
				skillInfo[sid] = q.Skill
			}
			t.add(q, resp)
		}
		questionResults = append(questionResults, questionResult(i+1, q, resp))
	}

	percentage := overall.percentage()
	result := &AssessmentResult{
		AssessmentID:           a.ID,
		EmployeeID:             a.EmployeeID,
		TestTemplateID:         a.TestTemplateID,
		Title:                  a.Title,
		Status:                 a.Status,
		TotalScore:             overall.score,
		MaxScore:               overall.maxScore,
		Percentage:             percentage,
		DisplayPercentage:      roundTo(percentage, 1),
		StartedAt:              a.StartedAt,
		CompletedAt:            a.CompletedAt,
		MustCompleteBy:         a.MustCompleteBy,
		TotalQuestions:         overall.total,
		CorrectAnswers:         overall.correct,
		WrongAnswers:           overall.wrong,
		UnansweredQuestions:    overall.total - overall.answered,
		PendingReviewQuestions: overall.pending,
		SkillResults:           make([]SkillResult, 0, len(skillOrder)),
		QuestionResults:        questionResults,
	}

	if in.Template != nil {
		result.PassingScore = in.Template.PassingScore
		if result.Title == "" {
			result.Title = in.Template.Title
		}
		result.Passed = percentage >= result.PassingScore
	} else if a.Passed != nil {
		// template row is gone; keep the verdict stored at submit
		result.Passed = *a.Passed
	}

	if a.StartedAt != nil && a.CompletedAt != nil {
		result.TotalTimeMinutes = roundTo(a.CompletedAt.Sub(*a.StartedAt).Minutes(), 2)
		result.SubmittedLate = a.MustCompleteBy != nil && a.CompletedAt.After(*a.MustCompleteBy)
	}

	for _, sid := range skillOrder {
		t := skills[sid]
		sr := SkillResult{
			SkillID:        sid,
			CorrectAnswers: t.correct,
			WrongAnswers:   t.wrong,
			PendingReview:  t.pending,
			Unanswered:     t.total - t.answered,
			TotalQuestions: t.total,
			Score:          t.score,
			MaxScore:       t.maxScore,
			Percentage:     t.percentage(),
		}
		if info := skillInfo[sid]; info != nil {
			sr.SkillName = info.Name
			sr.SkillCode = info.Code
		}
		result.SkillResults = append(result.SkillResults, sr)
	}

	return result
}

func questionResult(number int, q *model.Question, resp *model.AssessmentResponse) QuestionResult {
	qr := QuestionResult{
		QuestionID:       q.ID,
		QuestionNumber:   number,
		Content:          q.Content,
		CodeSnippet:      q.CodeSnippet,
		Type:             q.Type,
		SkillID:          q.SkillID,
		Points:           q.Points,
		Options:          make([]OptionResult, 0, len(q.Options)),
		CorrectOptionIDs: q.CorrectOptionIDs(),
	}
	if q.Skill != nil {
		qr.SkillName = q.Skill.Name
	}

	selected := map[string]bool{}
	if resp != nil {
		qr.Answered = true
		qr.SelectedOptionIDs = []string(resp.SelectedOptionIDs)
		qr.UserAnswer = resp.TextResponse
		qr.CodeResponse = resp.CodeResponse
		qr.IsCorrect = resp.IsCorrect
		qr.PointsAwarded = resp.PointsAwarded
		qr.TimeSpentSeconds = resp.TimeSpentSeconds
		qr.Feedback = resp.Feedback
		for _, id := range resp.SelectedOptionIDs {
			selected[id] = true
		}
	}
	if qr.SelectedOptionIDs == nil {
		qr.SelectedOptionIDs = []string{}
	}

	var correctText []string
	for _, o := range q.Options {
		qr.Options = append(qr.Options, OptionResult{
			ID:          o.ID,
			Content:     o.Content,
			IsCorrect:   o.IsCorrect,
			WasSelected: selected[o.ID],
			Explanation: o.Explanation,
		})
		if o.IsCorrect {
			correctText = append(correctText, o.Content)
			if qr.Explanation == "" {
				qr.Explanation = o.Explanation
			}
		}
	}
	qr.CorrectAnswer = strings.Join(correctText, ", ")
	return qr
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
