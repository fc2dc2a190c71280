package repository

import (
	"placement_engine_go/model"

	"gorm.io/gorm"
)

// ScreeningRepository stores per-job questions and reads
// per-application answers. Answers are write-once and are inserted by
// the submission transaction.
type ScreeningRepository interface {
	FindQuestionsByJob(jobID int64) ([]*model.ScreeningQuestionEntity, error)
	FindFilterCriteriaByJob(jobID int64) ([]*model.ScreeningQuestionEntity, error)
	FindAnswersByApplication(applicationID int64) ([]*model.ScreeningAnswerEntity, error)
	SaveQuestion(q *model.ScreeningQuestionEntity) error
}

type screeningRepository struct {
	db *gorm.DB
}

func NewScreeningRepository(db *gorm.DB) ScreeningRepository {
	return &screeningRepository{db: db}
}

func (r *screeningRepository) FindQuestionsByJob(jobID int64) ([]*model.ScreeningQuestionEntity, error) {
	var questions []*model.ScreeningQuestionEntity
	result := r.db.Where("job_id = ?", jobID).Order("id ASC").Find(&questions)
	if result.Error != nil {
		return nil, result.Error
	}
	return questions, nil
}

func (r *screeningRepository) FindFilterCriteriaByJob(jobID int64) ([]*model.ScreeningQuestionEntity, error) {
	var questions []*model.ScreeningQuestionEntity
	result := r.db.Where("job_id = ? AND is_filter_criteria = ?", jobID, true).Order("id ASC").Find(&questions)
	if result.Error != nil {
		return nil, result.Error
	}
	return questions, nil
}

func (r *screeningRepository) FindAnswersByApplication(applicationID int64) ([]*model.ScreeningAnswerEntity, error) {
	var answers []*model.ScreeningAnswerEntity
	result := r.db.Where("application_id = ?", applicationID).Order("id ASC").Find(&answers)
	if result.Error != nil {
		return nil, result.Error
	}
	return answers, nil
}

func (r *screeningRepository) SaveQuestion(q *model.ScreeningQuestionEntity) error {
	result := r.db.Create(q)
	return result.Error
}
