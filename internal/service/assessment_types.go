package service

import (
	"time"

	"skill_matrix_backend/internal/model"
)

// OptionView never carries the correctness flag.
type OptionView struct {
	ID           string `json:"id"`
	Content      string `json:"content"`
	DisplayOrder int    `json:"displayOrder"`
}

type QuestionView struct {
	ID                string             `json:"id"`
	QuestionNumber    int                `json:"questionNumber"`
	Type              model.QuestionType `json:"type"`
	Content           string             `json:"content"`
	CodeSnippet       string             `json:"codeSnippet,omitempty"`
	Points            int                `json:"points"`
	SkillID           *string            `json:"skillId"`
	SkillName         string             `json:"skillName,omitempty"`
	Options           []OptionView       `json:"options"`
	SelectedOptionIDs []string           `json:"selectedOptionIds,omitempty"`
	TextResponse      *string            `json:"textResponse,omitempty"`
	CodeResponse      *string            `json:"codeResponse,omitempty"`
	TimeSpentSeconds  int                `json:"timeSpentSeconds"`
	Answered          bool               `json:"answered"`
}

type SectionView struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	DisplayOrder     int            `json:"displayOrder"`
	TimeLimitMinutes *int           `json:"timeLimitMinutes"`
	Questions        []QuestionView `json:"questions"`
}

// SessionView is what Start and Continue return to the test taker.
type SessionView struct {
	AssessmentID     string                 `json:"assessmentId"`
	EmployeeID       string                 `json:"employeeId"`
	TestTemplateID   string                 `json:"testTemplateId"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Status           model.AssessmentStatus `json:"status"`
	TimeLimitMinutes *int                   `json:"timeLimitMinutes"`
	TotalQuestions   int                    `json:"totalQuestions"`
	AnsweredCount    int                    `json:"answeredCount"`
	TotalPoints      int                    `json:"totalPoints"`
	StartedAt        *time.Time             `json:"startedAt"`
	MustCompleteBy   *time.Time             `json:"mustCompleteBy"`
	RemainingSeconds *int64                 `json:"remainingSeconds"`
	Sections         []SectionView          `json:"sections"`
}

// PublicTestState is returned for a shared link that has not been started yet.
type PublicTestState struct {
	AssessmentID string                 `json:"assessmentId"`
	Title        string                 `json:"title"`
	Status       model.AssessmentStatus `json:"status"`
	NeedsStart   bool                   `json:"needsStart"`
}

type OptionResult struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	IsCorrect   bool   `json:"isCorrect"`
	WasSelected bool   `json:"wasSelected"`
	Explanation string `json:"explanation,omitempty"`
}

type QuestionResult struct {
	QuestionID        string             `json:"questionId"`
	QuestionNumber    int                `json:"questionNumber"`
	Content           string             `json:"content"`
	CodeSnippet       string             `json:"codeSnippet,omitempty"`
	Type              model.QuestionType `json:"type"`
	SkillID           *string            `json:"skillId"`
	SkillName         string             `json:"skillName,omitempty"`
	Points            int                `json:"points"`
	Options           []OptionResult     `json:"options"`
	Answered          bool               `json:"answered"`
	SelectedOptionIDs []string           `json:"selectedOptionIds"`
	UserAnswer        *string            `json:"userAnswer"`
	CodeResponse      *string            `json:"codeResponse,omitempty"`
	IsCorrect         *bool              `json:"isCorrect"`
	PointsAwarded     *int               `json:"pointsAwarded"`
	CorrectOptionIDs  []string           `json:"correctOptionIds"`
	CorrectAnswer     string             `json:"correctAnswer,omitempty"`
	Explanation       string             `json:"explanation,omitempty"`
	Feedback          string             `json:"feedback,omitempty"`
	TimeSpentSeconds  int                `json:"timeSpentSeconds"`
}

type SkillResult struct {
	SkillID        string  `json:"skillId"`
	SkillName      string  `json:"skillName"`
	SkillCode      string  `json:"skillCode"`
	CorrectAnswers int     `json:"correctAnswers"`
	WrongAnswers   int     `json:"wrongAnswers"`
	PendingReview  int     `json:"pendingReview"`
	Unanswered     int     `json:"unanswered"`
	TotalQuestions int     `json:"totalQuestions"`
	Score          int     `json:"score"`
	MaxScore       int     `json:"maxScore"`
	Percentage     float64 `json:"percentage"`
}

type AssessmentResult struct {
	AssessmentID           string                 `json:"assessmentId"`
	EmployeeID             string                 `json:"employeeId"`
	TestTemplateID         string                 `json:"testTemplateId"`
	Title                  string                 `json:"title"`
	Status                 model.AssessmentStatus `json:"status"`
	TotalScore             int                    `json:"totalScore"`
	MaxScore               int                    `json:"maxScore"`
	Percentage             float64                `json:"percentage"`
	DisplayPercentage      float64                `json:"displayPercentage"`
	Passed                 bool                   `json:"passed"`
	PassingScore           float64                `json:"passingScore"`
	StartedAt              *time.Time             `json:"startedAt"`
	CompletedAt            *time.Time             `json:"completedAt"`
	MustCompleteBy         *time.Time             `json:"mustCompleteBy"`
	SubmittedLate          bool                   `json:"submittedLate"`
	TotalTimeMinutes       float64                `json:"totalTimeMinutes"`
	TotalQuestions         int                    `json:"totalQuestions"`
	CorrectAnswers         int                    `json:"correctAnswers"`
	WrongAnswers           int                    `json:"wrongAnswers"`
	UnansweredQuestions    int                    `json:"unansweredQuestions"`
	PendingReviewQuestions int                    `json:"pendingReviewQuestions"`
	SkillResults           []SkillResult          `json:"skillResults"`
	QuestionResults        []QuestionResult       `json:"questionResults"`
}

// SkillResultModels converts the breakdown into rows for persistence.
func (r *AssessmentResult) SkillResultModels() []model.AssessmentSkillResult {
	rows := make([]model.AssessmentSkillResult, 0, len(r.SkillResults))
	for _, s := range r.SkillResults {
		rows = append(rows, model.AssessmentSkillResult{
			AssessmentID:   r.AssessmentID,
			SkillID:        s.SkillID,
			CorrectAnswers: s.CorrectAnswers,
			TotalQuestions: s.TotalQuestions,
			Score:          s.Score,
			MaxScore:       s.MaxScore,
			Percentage:     s.Percentage,
		})
	}
	return rows
}

type SubmitAnswerInput struct {
	AssessmentID      string   `json:"assessmentId" binding:"required"`
	QuestionID        string   `json:"questionId" binding:"required"`
	SelectedOptionIDs []string `json:"selectedOptionIds"`
	TextResponse      *string  `json:"textResponse"`
	CodeResponse      *string  `json:"codeResponse"`
	TimeSpentSeconds  *int     `json:"timeSpentSeconds"`
}

type SubmitAnswerResult struct {
	ResponseID       string `json:"responseId"`
	QuestionID       string `json:"questionId"`
	IsCorrect        *bool  `json:"isCorrect"`
	PointsAwarded    *int   `json:"pointsAwarded"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
	Feedback         string `json:"feedback"`
}

type GradePatchInput struct {
	PointsAwarded int    `json:"pointsAwarded"`
	IsCorrect     *bool  `json:"isCorrect"`
	Feedback      string `json:"feedback"`
	GradedBy      string `json:"-"`
}

type AssessmentSummary struct {
	ID             string                 `json:"id"`
	TestTemplateID string                 `json:"testTemplateId"`
	Title          string                 `json:"title"`
	Status         model.AssessmentStatus `json:"status"`
	StartedAt      *time.Time             `json:"startedAt"`
	CompletedAt    *time.Time             `json:"completedAt"`
	Score          *int                   `json:"score"`
	MaxScore       *int                   `json:"maxScore"`
	Percentage     *float64               `json:"percentage"`
	Passed         *bool                  `json:"passed"`
}

type AvailableTest struct {
	TestTemplateID   string   `json:"testTemplateId"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	TimeLimitMinutes *int     `json:"timeLimitMinutes"`
	PassingScore     float64  `json:"passingScore"`
	QuestionCount    int      `json:"questionCount"`
	Attempts         int      `json:"attempts"`
	BestPercentage   *float64 `json:"bestPercentage"`
}

type GradePatchResult struct {
	Response *model.AssessmentResponse `json:"response"`
	// set when the assessment was already finished and had to be re-aggregated
	Result *AssessmentResult `json:"result,omitempty"`
}
