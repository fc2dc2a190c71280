package repository

import (
	"placement_engine_go/model"

	"gorm.io/gorm"
)

// ApplicationRepository reads applications for services and
// projections. Status transitions and inserts do not go through this
// interface; they run as guarded updates inside service-level
// transactions.
type ApplicationRepository interface {
	FindByID(id int64) (*model.ApplicationEntity, error)
	FindByJob(jobID int64) ([]*model.ApplicationEntity, error)
	FindByUser(userID int64) ([]*model.ApplicationEntity, error)
	FindByJobAndUser(jobID, userID int64) (*model.ApplicationEntity, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) FindByID(id int64) (*model.ApplicationEntity, error) {
	var app model.ApplicationEntity
	result := r.db.First(&app, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &app, nil
}

func (r *applicationRepository) FindByJob(jobID int64) ([]*model.ApplicationEntity, error) {
	var apps []*model.ApplicationEntity
	result := r.db.Where("job_id = ?", jobID).Order("id ASC").Find(&apps)
	if result.Error != nil {
		return nil, result.Error
	}
	return apps, nil
}

func (r *applicationRepository) FindByUser(userID int64) ([]*model.ApplicationEntity, error) {
	var apps []*model.ApplicationEntity
	result := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&apps)
	if result.Error != nil {
		return nil, result.Error
	}
	return apps, nil
}

func (r *applicationRepository) FindByJobAndUser(jobID, userID int64) (*model.ApplicationEntity, error) {
	var app model.ApplicationEntity
	result := r.db.Where("job_id = ? AND user_id = ?", jobID, userID).First(&app)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &app, nil
}

