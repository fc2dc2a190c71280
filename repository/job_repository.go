package repository

import (
	"placement_engine_go/model"

	"gorm.io/gorm"
)

// JobRepository is the job aggregate store.
type JobRepository interface {
	FindByID(id int64) (*model.JobEntity, error)
	FindByOwner(ownerType model.PrincipalType, ownerID int64) ([]*model.JobEntity, error)
	Save(job *model.JobEntity) error
	Update(job *model.JobEntity) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) FindByID(id int64) (*model.JobEntity, error) {
	var job model.JobEntity
	result := r.db.First(&job, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &job, nil
}

func (r *jobRepository) FindByOwner(ownerType model.PrincipalType, ownerID int64) ([]*model.JobEntity, error) {
	var jobs []*model.JobEntity
	result := r.db.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).Order("id ASC").Find(&jobs)
	if result.Error != nil {
		return nil, result.Error
	}
	return jobs, nil
}

func (r *jobRepository) Save(job *model.JobEntity) error {
	result := r.db.Create(job)
	return result.Error
}

func (r *jobRepository) Update(job *model.JobEntity) error {
	result := r.db.Save(job)
	return result.Error
}
