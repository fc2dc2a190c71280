package model

import (
	"time"
)

// Employment statuses
const (
	EmploymentStatusActive        = "active"
	EmploymentStatusContractEnded = "contract_ended"
)

// Coordinator-company affiliation statuses
const (
	AffiliationStatusActive   = "active"
	AffiliationStatusInactive = "inactive"
)

// UserEmploymentStatusEntity records one hire event. Created only by
// the hire transition; the only later mutation is the candidate
// ending the contract.
type UserEmploymentStatusEntity struct {
	ID              int64         `gorm:"primaryKey;autoIncrement;column:id"`
	UserID          int64         `gorm:"column:user_id;index"`
	ApplicationID   int64         `gorm:"column:application_id"`
	JobID           int64         `gorm:"column:job_id"`
	EmployerType    PrincipalType `gorm:"column:employer_type;type:varchar(20);index:idx_employment_employer"`
	EmployerID      int64         `gorm:"column:employer_id;index:idx_employment_employer"`
	EmployerName    string        `gorm:"column:employer_name"`
	JobTitle        string        `gorm:"column:job_title"`
	HiredDate       time.Time     `gorm:"column:hired_date"`
	ContractEndDate *time.Time    `gorm:"column:contract_end_date"`
	Status          string        `gorm:"column:status;type:varchar(20)"`
	CreatedAt       time.Time     `gorm:"column:created_at"`
	UpdatedAt       time.Time     `gorm:"column:updated_at"`
}

func (UserEmploymentStatusEntity) TableName() string {
	return "user_employment_statuses"
}

// CoordinatorCompanyEntity links a coordinator to a company it places
// candidates through. Only active affiliations participate in the
// indirect employment-history lookup.
type CoordinatorCompanyEntity struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;column:id"`
	CoordinatorID int64     `gorm:"column:coordinator_id;index"`
	CompanyID     int64     `gorm:"column:company_id;index"`
	Status        string    `gorm:"column:status;type:varchar(20)"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (CoordinatorCompanyEntity) TableName() string {
	return "coordinator_companies"
}
