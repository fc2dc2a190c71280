package repository

import (
	"placement_engine_go/model"

	"gorm.io/gorm"
)

// EmploymentRepository stores hire records and coordinator-company
// affiliations.
type EmploymentRepository interface {
	FindByID(id int64) (*model.UserEmploymentStatusEntity, error)
	FindByUser(userID int64) ([]*model.UserEmploymentStatusEntity, error)
	FindDirect(userID int64, employerType model.PrincipalType, employerID int64) ([]*model.UserEmploymentStatusEntity, error)
	FindViaCoordinatorAffiliates(userID, coordinatorID int64) ([]*model.UserEmploymentStatusEntity, error)
	Save(employment *model.UserEmploymentStatusEntity) error
	Update(employment *model.UserEmploymentStatusEntity) error
	SaveAffiliation(affiliation *model.CoordinatorCompanyEntity) error
}

type employmentRepository struct {
	db *gorm.DB
}

func NewEmploymentRepository(db *gorm.DB) EmploymentRepository {
	return &employmentRepository{db: db}
}

func (r *employmentRepository) FindByID(id int64) (*model.UserEmploymentStatusEntity, error) {
	var employment model.UserEmploymentStatusEntity
	result := r.db.First(&employment, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &employment, nil
}

func (r *employmentRepository) FindByUser(userID int64) ([]*model.UserEmploymentStatusEntity, error) {
	var employments []*model.UserEmploymentStatusEntity
	result := r.db.Where("user_id = ?", userID).Order("hired_date DESC").Find(&employments)
	if result.Error != nil {
		return nil, result.Error
	}
	return employments, nil
}

func (r *employmentRepository) FindDirect(userID int64, employerType model.PrincipalType, employerID int64) ([]*model.UserEmploymentStatusEntity, error) {
	var employments []*model.UserEmploymentStatusEntity
	result := r.db.Where("user_id = ? AND employer_type = ? AND employer_id = ?",
		userID, employerType, employerID).
		Order("hired_date DESC").Find(&employments)
	if result.Error != nil {
		return nil, result.Error
	}
	return employments, nil
}

// FindViaCoordinatorAffiliates returns the user's hire records whose
// employer is a company under a currently active affiliation with the
// coordinator.
func (r *employmentRepository) FindViaCoordinatorAffiliates(userID, coordinatorID int64) ([]*model.UserEmploymentStatusEntity, error) {
	var employments []*model.UserEmploymentStatusEntity
	result := r.db.
		Joins("JOIN coordinator_companies ON coordinator_companies.company_id = user_employment_statuses.employer_id").
		Where("user_employment_statuses.user_id = ?", userID).
		Where("user_employment_statuses.employer_type = ?", model.PrincipalCompany).
		Where("coordinator_companies.coordinator_id = ? AND coordinator_companies.status = ?",
			coordinatorID, model.AffiliationStatusActive).
		Order("user_employment_statuses.hired_date DESC").
		Find(&employments)
	if result.Error != nil {
		return nil, result.Error
	}
	return employments, nil
}

func (r *employmentRepository) Save(employment *model.UserEmploymentStatusEntity) error {
	result := r.db.Create(employment)
	return result.Error
}

func (r *employmentRepository) Update(employment *model.UserEmploymentStatusEntity) error {
	result := r.db.Save(employment)
	return result.Error
}

func (r *employmentRepository) SaveAffiliation(affiliation *model.CoordinatorCompanyEntity) error {
	result := r.db.Create(affiliation)
	return result.Error
}
