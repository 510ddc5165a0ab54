package model

import (
	"time"

	"gorm.io/datatypes"
)

// swagger:model Assessment
type Assessment struct {
	UUIDBase
	EmployeeID     string           `gorm:"index:idx_assessment_employee_template;type:varchar(36);not null" json:"employeeId"`
	TestTemplateID string           `gorm:"index:idx_assessment_employee_template;type:varchar(36);not null" json:"testTemplateId"`
	Title          string           `gorm:"size:255" json:"title"`
	Status         AssessmentStatus `gorm:"size:20;index;not null" json:"status"`
	StartedAt      *time.Time       `json:"startedAt"`
	// fixed at start and never recomputed
	MustCompleteBy *time.Time `gorm:"index" json:"mustCompleteBy"`
	CompletedAt    *time.Time `json:"completedAt"`
	// ordered question set materialized at start
	QuestionIDs  datatypes.JSONSlice[string] `json:"questionIds"`
	Score        *int                        `json:"score"`
	MaxScore     *int                        `json:"maxScore"`
	Percentage   *float64                    `json:"percentage"`
	Passed       *bool                       `json:"passed"`
	Responses    []AssessmentResponse        `gorm:"foreignKey:AssessmentID" json:"responses,omitempty"`
	SkillResults []AssessmentSkillResult     `gorm:"foreignKey:AssessmentID" json:"skillResults,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

func (a *Assessment) HasQuestion(questionID string) bool {
	for _, id := range a.QuestionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}

// swagger:model AssessmentResponse
type AssessmentResponse struct {
	UUIDBase
	AssessmentID      string                      `gorm:"uniqueIndex:idx_response_assessment_question;type:varchar(36);not null" json:"assessmentId"`
	QuestionID        string                      `gorm:"uniqueIndex:idx_response_assessment_question;type:varchar(36);not null" json:"questionId"`
	SelectedOptionIDs datatypes.JSONSlice[string] `json:"selectedOptionIds"`
	TextResponse      *string                     `gorm:"type:text" json:"textResponse"`
	CodeResponse      *string                     `gorm:"type:text" json:"codeResponse"`
	// nil while awaiting an external grader
	IsCorrect        *bool      `json:"isCorrect"`
	PointsAwarded    *int       `json:"pointsAwarded"`
	TimeSpentSeconds int        `gorm:"default:0;not null" json:"timeSpentSeconds"`
	AnsweredAt       time.Time  `json:"answeredAt"`
	GradedAt         *time.Time `json:"gradedAt"`
	GradedBy         string     `gorm:"size:64" json:"gradedBy"`
	Feedback         string     `gorm:"type:text" json:"feedback"`
}

func (AssessmentResponse) TableName() string {
	return "assessment_responses"
}

// IsPending reports whether the response still waits for a verdict.
func (r *AssessmentResponse) IsPending() bool {
	return r.IsCorrect == nil
}

// AssessmentSkillResult rows are replaced wholesale each time an assessment is aggregated.
//
// swagger:model AssessmentSkillResult
type AssessmentSkillResult struct {
	UUIDBase
	AssessmentID   string  `gorm:"index;type:varchar(36);not null" json:"assessmentId"`
	SkillID        string  `gorm:"index;type:varchar(36);not null" json:"skillId"`
	CorrectAnswers int     `json:"correctAnswers"`
	TotalQuestions int     `json:"totalQuestions"`
	Score          int     `json:"score"`
	MaxScore       int     `json:"maxScore"`
	Percentage     float64 `json:"percentage"`
}

func (AssessmentSkillResult) TableName() string {
	return "assessment_skill_results"
}
