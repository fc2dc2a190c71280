package model

import (
	"time"
)

// Application statuses. Transitions are enforced by
// service.ApplicationService; hired and rejected are terminal.
const (
	ApplicationStatusSubmitted          = "submitted"
	ApplicationStatusUnderReview        = "under_review"
	ApplicationStatusQualified          = "qualified"
	ApplicationStatusInterviewScheduled = "interview_scheduled"
	ApplicationStatusPendingReview      = "pending_review"
	ApplicationStatusHired              = "hired"
	ApplicationStatusRejected           = "rejected"
)

// ApplicationEntity is one candidate's submission against one job.
type ApplicationEntity struct {
	ID              int64      `gorm:"primaryKey;autoIncrement;column:id"`
	JobID           int64      `gorm:"column:job_id;index"`
	UserID          int64      `gorm:"column:user_id;index"`
	Status          string     `gorm:"column:status;type:varchar(30)"`
	RejectionReason string     `gorm:"column:rejection_reason"`
	AutoDeleteDate  *time.Time `gorm:"column:auto_delete_date"` // set on rejection, consumed by the purge sweep
	AverageRating   float64    `gorm:"column:average_rating"`   // denormalized, recomputed on every rating write
	RatingCount     int        `gorm:"column:rating_count"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (ApplicationEntity) TableName() string {
	return "applications"
}

// IsTerminal reports whether the application reached a final state.
// Terminal applications reject every further status mutation.
func (a *ApplicationEntity) IsTerminal() bool {
	return a.Status == ApplicationStatusHired || a.Status == ApplicationStatusRejected
}
