package model

import "fmt"

type QuestionType string

const (
	QuestionTypeMultipleChoice      QuestionType = "MultipleChoice"
	QuestionTypeMultipleAnswer      QuestionType = "MultipleAnswer"
	QuestionTypeTrueFalse           QuestionType = "TrueFalse"
	QuestionTypeShortAnswer         QuestionType = "ShortAnswer"
	QuestionTypeLongAnswer          QuestionType = "LongAnswer"
	QuestionTypeCodingChallenge     QuestionType = "CodingChallenge"
	QuestionTypeScenario            QuestionType = "Scenario"
	QuestionTypeSituationalJudgment QuestionType = "SituationalJudgment"
	QuestionTypeRating              QuestionType = "Rating"
)

// QuestionTypes lists every supported type in declaration order.
var QuestionTypes = []QuestionType{
	QuestionTypeMultipleChoice,
	QuestionTypeMultipleAnswer,
	QuestionTypeTrueFalse,
	QuestionTypeShortAnswer,
	QuestionTypeLongAnswer,
	QuestionTypeCodingChallenge,
	QuestionTypeScenario,
	QuestionTypeSituationalJudgment,
	QuestionTypeRating,
}

func ParseQuestionType(s string) (QuestionType, error) {
	for _, t := range QuestionTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

func (t QuestionType) Valid() bool {
	_, err := ParseQuestionType(string(t))
	return err == nil
}

// IsChoice reports whether answers to this type are option selections.
func (t QuestionType) IsChoice() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeMultipleAnswer, QuestionTypeTrueFalse:
		return true
	}
	return false
}
