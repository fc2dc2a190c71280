package repository

import (
	"placement_engine_go/model"

	"gorm.io/gorm"
)

// RatingRepository reads live ratings and the deletion-surviving
// archive. Live reads for a user join through the applications table;
// archive reads go by user id directly. Writes happen inside service
// transactions, not through this interface.
type RatingRepository interface {
	FindByApplication(applicationID int64) ([]*model.ApplicantRatingEntity, error)
	FindLiveByUser(userID int64) ([]*model.ApplicantRatingEntity, error)
	FindArchivedByUser(userID int64) ([]*model.UserRatingArchiveEntity, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) FindByApplication(applicationID int64) ([]*model.ApplicantRatingEntity, error) {
	var ratings []*model.ApplicantRatingEntity
	result := r.db.Where("application_id = ?", applicationID).Order("id ASC").Find(&ratings)
	if result.Error != nil {
		return nil, result.Error
	}
	return ratings, nil
}

func (r *ratingRepository) FindLiveByUser(userID int64) ([]*model.ApplicantRatingEntity, error) {
	var ratings []*model.ApplicantRatingEntity
	result := r.db.
		Joins("JOIN applications ON applications.id = applicant_ratings.application_id").
		Where("applications.user_id = ?", userID).
		Order("applicant_ratings.id ASC").
		Find(&ratings)
	if result.Error != nil {
		return nil, result.Error
	}
	return ratings, nil
}

func (r *ratingRepository) FindArchivedByUser(userID int64) ([]*model.UserRatingArchiveEntity, error) {
	var archives []*model.UserRatingArchiveEntity
	result := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&archives)
	if result.Error != nil {
		return nil, result.Error
	}
	return archives, nil
}

