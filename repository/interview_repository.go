package repository

import (
	"placement_engine_go/model"

	"gorm.io/gorm"
)

// InterviewRepository reads the 1:1 interview row per application.
// Creation and status changes run inside the application service's
// transactions.
type InterviewRepository interface {
	FindByApplication(applicationID int64) (*model.InterviewEntity, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) FindByApplication(applicationID int64) (*model.InterviewEntity, error) {
	var interview model.InterviewEntity
	result := r.db.Where("application_id = ?", applicationID).First(&interview)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &interview, nil
}
