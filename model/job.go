package model

import (
	"time"
)

// Job statuses
const (
	JobStatusDraft           = "draft"
	JobStatusActive          = "active"
	JobStatusPaused          = "paused"
	JobStatusClosed          = "closed"
	JobStatusPendingApproval = "pending_coordinator_approval"
)

// JobEntity is a posted position owned by a coordinator or a company.
// Deleting a job cascades to its applications; the rating archive is
// written first (see service.JobService).
type JobEntity struct {
	ID                  int64         `gorm:"primaryKey;autoIncrement;column:id"`
	OwnerType           PrincipalType `gorm:"column:owner_type;type:varchar(20);index:idx_job_owner"`
	OwnerID             int64         `gorm:"column:owner_id;index:idx_job_owner"`
	Title               string        `gorm:"column:title"`
	Description         string        `gorm:"column:description;type:text"`
	Status              string        `gorm:"column:status;type:varchar(40)"`
	ApplicationDeadline *time.Time    `gorm:"column:application_deadline"`
	PositionsAvailable  int           `gorm:"column:positions_available"`
	ApplicationLimit    int           `gorm:"column:application_limit"` // 0 = unlimited
	FilterPreScreening  bool          `gorm:"column:filter_pre_screening"`
	CreatedAt           time.Time     `gorm:"column:created_at"`
	UpdatedAt           time.Time     `gorm:"column:updated_at"`
}

func (JobEntity) TableName() string {
	return "jobs"
}

// Owner returns the owning principal. Every mutating lifecycle
// operation checks the caller against this.
func (j *JobEntity) Owner() Principal {
	return Principal{Type: j.OwnerType, ID: j.OwnerID}
}
