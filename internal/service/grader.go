package service

import (
	"fmt"

	"skill_matrix_backend/internal/model"
)

const (
	FeedbackCorrect   = "Correct!"
	FeedbackIncorrect = "Incorrect"
	FeedbackPending   = "Answer saved. Will be graded later."
)

// Answer is the payload of one submitted response.
type Answer struct {
	SelectedOptionIDs []string
	TextResponse      *string
	CodeResponse      *string
}

// Verdict is the outcome of grading one answer. Both fields are nil while the
// answer waits for an external grader.
type Verdict struct {
	IsCorrect     *bool
	PointsAwarded *int
}

func (v Verdict) Pending() bool {
	return v.IsCorrect == nil
}

func (v Verdict) Feedback() string {
	switch {
	case v.IsCorrect == nil:
		return FeedbackPending
	case *v.IsCorrect:
		return FeedbackCorrect
	default:
		return FeedbackIncorrect
	}
}

func (v Verdict) Label() string {
	switch {
	case v.IsCorrect == nil:
		return "pending"
	case *v.IsCorrect:
		return "correct"
	default:
		return "incorrect"
	}
}

func objective(correct bool, points int) Verdict {
	awarded := 0
	if correct {
		awarded = points
	}
	return Verdict{IsCorrect: &correct, PointsAwarded: &awarded}
}

// Grade is pure: the verdict depends only on the question and the answer.
// Objective types score all or nothing; every other type is left pending.
func Grade(q *model.Question, answer Answer) (Verdict, error) {
	selected := uniqueIDs(answer.SelectedOptionIDs)
	correct := q.CorrectOptionIDs()

	switch q.Type {
	case model.QuestionTypeMultipleChoice, model.QuestionTypeTrueFalse:
		return objective(len(selected) == 1 && sameSet(selected, correct), q.Points), nil
	case model.QuestionTypeMultipleAnswer:
		return objective(sameSet(selected, correct), q.Points), nil
	case model.QuestionTypeShortAnswer,
		model.QuestionTypeLongAnswer,
		model.QuestionTypeCodingChallenge,
		model.QuestionTypeScenario,
		model.QuestionTypeSituationalJudgment,
		model.QuestionTypeRating:
		return Verdict{}, nil
	default:
		return Verdict{}, fmt.Errorf("grade question %s: unknown question type %q", q.ID, q.Type)
	}
}

// uniqueIDs drops empty and repeated ids, keeping first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// sameSet expects both slices to be free of duplicates.
func sameSet(a, b []string) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(b))
	for _, id := range b {
		set[id] = struct{}{}
	}
	for _, id := range a {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
