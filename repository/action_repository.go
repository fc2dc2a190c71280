package repository

import (
	"placement_engine_go/model"

	"gorm.io/gorm"
)

// ActionRepository stores the company review ledger. Rows are
// appended, never updated; the only deletion path is the removal of
// on_hold rows on reconsideration.
type ActionRepository interface {
	Append(action *model.CompanyApplicationActionEntity) error
	FindByApplicationAndCompany(applicationID, companyID int64) ([]*model.CompanyApplicationActionEntity, error)
	FindApplicationIDsWithAction(companyID int64, actionType string) ([]int64, error)
	CountOnHold(applicationID, companyID int64) (int64, error)
}

type actionRepository struct {
	db *gorm.DB
}

func NewActionRepository(db *gorm.DB) ActionRepository {
	return &actionRepository{db: db}
}

func (r *actionRepository) Append(action *model.CompanyApplicationActionEntity) error {
	result := r.db.Create(action)
	return result.Error
}

func (r *actionRepository) FindByApplicationAndCompany(applicationID, companyID int64) ([]*model.CompanyApplicationActionEntity, error) {
	var actions []*model.CompanyApplicationActionEntity
	result := r.db.Where("application_id = ? AND company_id = ?", applicationID, companyID).
		Order("id ASC").Find(&actions)
	if result.Error != nil {
		return nil, result.Error
	}
	return actions, nil
}

// FindApplicationIDsWithAction returns the ids of applications whose
// ledger carries at least one row of the given type for the company.
// Membership is existence, not recency: on_hold rows are deleted on
// reconsideration, so a surviving row means the state still applies.
// This is the read-projection behind the accepted / rejected /
// on_hold listing views.
func (r *actionRepository) FindApplicationIDsWithAction(companyID int64, actionType string) ([]int64, error) {
	var ids []int64
	result := r.db.Model(&model.CompanyApplicationActionEntity{}).
		Where("company_id = ? AND action_type = ?", companyID, actionType).
		Distinct().Order("application_id ASC").
		Pluck("application_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

func (r *actionRepository) CountOnHold(applicationID, companyID int64) (int64, error) {
	var count int64
	result := r.db.Model(&model.CompanyApplicationActionEntity{}).
		Where("application_id = ? AND company_id = ? AND action_type = ?",
			applicationID, companyID, model.ActionTypeOnHold).
		Count(&count)
	return count, result.Error
}
