package model

type AssessmentStatus string

const (
	AssessmentStatusDraft      AssessmentStatus = "Draft"
	AssessmentStatusPending    AssessmentStatus = "Pending"
	AssessmentStatusInProgress AssessmentStatus = "InProgress"
	AssessmentStatusCompleted  AssessmentStatus = "Completed"
	// Reviewed, Disputed and Resolved belong to the review workflow and are never written here.
	AssessmentStatusReviewed AssessmentStatus = "Reviewed"
	AssessmentStatusDisputed AssessmentStatus = "Disputed"
	AssessmentStatusResolved AssessmentStatus = "Resolved"
)

// NotStarted reports whether the assessment is waiting for its first start.
func (s AssessmentStatus) NotStarted() bool {
	return s == AssessmentStatusDraft || s == AssessmentStatusPending
}

// Finished reports whether answers have been submitted for grading.
func (s AssessmentStatus) Finished() bool {
	switch s {
	case AssessmentStatusCompleted, AssessmentStatusReviewed, AssessmentStatusDisputed, AssessmentStatusResolved:
		return true
	}
	return false
}
