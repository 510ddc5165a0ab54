package util

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindInvalidState
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// EngineError is a classified failure returned by the assessment engine.
type EngineError struct {
	Kind    ErrorKind
	Message string
}

func (e *EngineError) Error() string {
	return e.Message
}

func NotFoundError(format string, args ...interface{}) error {
	return &EngineError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidStateError(format string, args ...interface{}) error {
	return &EngineError{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...interface{}) error {
	return &EngineError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns KindInternal for errors the engine did not classify.
func KindOf(err error) ErrorKind {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return KindInternal
}

var (
	ErrAssessmentNotFound      = &EngineError{Kind: KindNotFound, Message: "assessment not found"}
	ErrInProgressNotFound      = &EngineError{Kind: KindNotFound, Message: "no assessment in progress"}
	ErrTemplateNotFound        = &EngineError{Kind: KindNotFound, Message: "test template not found or inactive"}
	ErrQuestionNotInAssessment = &EngineError{Kind: KindNotFound, Message: "question not found in this assessment"}
	ErrResultNotAvailable      = &EngineError{Kind: KindNotFound, Message: "result not found or assessment not completed"}

	ErrAssessmentNotInProgress = &EngineError{Kind: KindInvalidState, Message: "cannot answer a completed test"}
	ErrAssessmentNotStarted    = &EngineError{Kind: KindInvalidState, Message: "assessment has not been started"}
	ErrAssessmentFinished      = &EngineError{Kind: KindInvalidState, Message: "assessment already completed"}

	ErrEmployeeRequired    = &EngineError{Kind: KindValidation, Message: "employeeId is required"}
	ErrTemplateRequired    = &EngineError{Kind: KindValidation, Message: "testTemplateId is required"}
	ErrNegativeTimeSpent   = &EngineError{Kind: KindValidation, Message: "timeSpentSeconds must not be negative"}
	ErrInvalidOption       = &EngineError{Kind: KindValidation, Message: "selected option does not belong to the question"}
	ErrPointsOutOfRange    = &EngineError{Kind: KindValidation, Message: "pointsAwarded is outside the question's range"}
	ErrQuestionNotGradable = &EngineError{Kind: KindValidation, Message: "question is auto-graded and cannot be patched"}
)
