package model

import (
	"time"
)

// Interview statuses. Status changes feed back into the owning
// application: completed moves it to pending_review, cancelled returns
// it to under_review, no_show rejects it.
const (
	InterviewStatusScheduled = "scheduled"
	InterviewStatusCompleted = "completed"
	InterviewStatusCancelled = "cancelled"
	InterviewStatusNoShow    = "no_show"
)

// Interview modes
const (
	InterviewModeOnline   = "online"
	InterviewModeInPerson = "in_person"
	InterviewModePhone    = "phone"
)

// InterviewEntity is created exactly once per application, by the
// accept transition. It references the application by id only.
type InterviewEntity struct {
	ID              int64         `gorm:"primaryKey;autoIncrement;column:id"`
	ApplicationID   int64         `gorm:"column:application_id;uniqueIndex"`
	ScheduledByType PrincipalType `gorm:"column:scheduled_by_type;type:varchar(20)"`
	ScheduledByID   int64         `gorm:"column:scheduled_by_id"`
	InterviewDate   time.Time     `gorm:"column:interview_date"`
	Mode            string        `gorm:"column:mode;type:varchar(20)"`
	Location        string        `gorm:"column:location"`
	MeetingLink     string        `gorm:"column:meeting_link"`
	Status          string        `gorm:"column:status;type:varchar(20)"`
	CreatedAt       time.Time     `gorm:"column:created_at"`
	UpdatedAt       time.Time     `gorm:"column:updated_at"`
}

func (InterviewEntity) TableName() string {
	return "interviews"
}

func (i *InterviewEntity) Scheduler() Principal {
	return Principal{Type: i.ScheduledByType, ID: i.ScheduledByID}
}
