package model

import (
	"time"

	"gorm.io/datatypes"
)

// Company review action types. The ledger is an advisory workflow
// trail for the company-side review view; the canonical lifecycle
// state is always ApplicationEntity.Status.
const (
	ActionTypeAccepted     = "accepted"
	ActionTypeRejected     = "rejected"
	ActionTypeOnHold       = "on_hold"
	ActionTypeComment      = "comment"
	ActionTypeEmailSent    = "email_sent"
	ActionTypeReconsidered = "reconsidered"
)

// CompanyApplicationActionEntity is one append-only ledger row. The
// single exception to append-only is reconsideration, which removes
// the company's prior on_hold rows so that "currently on hold" can be
// derived from the rows alone.
type CompanyApplicationActionEntity struct {
	ID            int64             `gorm:"primaryKey;autoIncrement;column:id"`
	ApplicationID int64             `gorm:"column:application_id;index:idx_action_app_company"`
	CompanyID     int64             `gorm:"column:company_id;index:idx_action_app_company"`
	ActionType    string            `gorm:"column:action_type;type:varchar(20);index"`
	ActionData    datatypes.JSONMap `gorm:"column:action_data"`
	Reason        string            `gorm:"column:reason"`
	CreatedAt     time.Time         `gorm:"column:created_at"`
}

func (CompanyApplicationActionEntity) TableName() string {
	return "company_application_actions"
}
