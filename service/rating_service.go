package service

import (
	"fmt"

	"placement_engine_go/model"
	"placement_engine_go/repository"

	"gorm.io/gorm"
)

// RatingService owns applicant ratings and the aggregate profile. A
// rating is an upsert keyed by (application, rater); every write
// recomputes the denormalized average and count on the application
// row from the full rating set instead of incrementing, which keeps
// the cache correct under concurrent raters.
type RatingService struct {
	db         *gorm.DB
	ratingRepo repository.RatingRepository
}

func NewRatingService(db *gorm.DB, ratingRepo repository.RatingRepository) *RatingService {
	return &RatingService{db: db, ratingRepo: ratingRepo}
}

// ListForApplication returns the application's ratings in insertion
// order.
func (s *RatingService) ListForApplication(applicationID int64) ([]*model.ApplicantRatingEntity, error) {
	return s.ratingRepo.FindByApplication(applicationID)
}

// Rate inserts or updates the caller's rating for the application and
// refreshes the application's rating cache in the same transaction.
// Only the owner of the application's job may rate.
func (s *RatingService) Rate(rater model.Principal, applicationID int64, rating int, comment string) (*model.ApplicantRatingEntity, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating %d out of range 1..5: %w", rating, ErrValidation)
	}

	var saved model.ApplicantRatingEntity
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var app model.ApplicationEntity
		if err := tx.First(&app, applicationID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
			}
			return err
		}
		var job model.JobEntity
		if err := tx.First(&job, app.JobID).Error; err != nil {
			return err
		}
		if !job.Owner().Is(rater) {
			return fmt.Errorf("caller %s:%d does not own job %d: %w", rater.Type, rater.ID, job.ID, ErrAccessDenied)
		}

		var existing model.ApplicantRatingEntity
		err := tx.Where("application_id = ? AND rated_by_type = ? AND rated_by_id = ?",
			applicationID, rater.Type, rater.ID).First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			saved = model.ApplicantRatingEntity{
				ApplicationID: applicationID,
				RatedByType:   rater.Type,
				RatedByID:     rater.ID,
				Rating:        rating,
				Comment:       comment,
			}
			if err := tx.Create(&saved).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			existing.Rating = rating
			existing.Comment = comment
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			saved = existing
		}

		return refreshRatingCache(tx, applicationID)
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// refreshRatingCache recomputes average and count from the full
// rating set of the application. Full recompute, never an increment.
func refreshRatingCache(tx *gorm.DB, applicationID int64) error {
	type aggregate struct {
		Avg   float64
		Count int64
	}
	var agg aggregate
	if err := tx.Model(&model.ApplicantRatingEntity{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("application_id = ?", applicationID).
		Scan(&agg).Error; err != nil {
		return err
	}
	return tx.Model(&model.ApplicationEntity{}).
		Where("id = ?", applicationID).
		Updates(map[string]interface{}{
			"average_rating": agg.Avg,
			"rating_count":   agg.Count,
		}).Error
}

// RatingProfile aggregates a candidate's ratings across every
// application, live and archived.
type RatingProfile struct {
	UserID           int64                       `json:"userId"`
	OverallAverage   float64                     `json:"overallAverage"`
	TotalCount       int                         `json:"totalCount"`
	Max              int                         `json:"max"`
	Min              int                         `json:"min"`
	CountByRaterType map[model.PrincipalType]int `json:"countByRaterType"`
}

// GetRatingProfile computes the profile over the union of live
// ratings (reachable through the user's current applications) and
// archived ratings. Because job deletion archives before it deletes,
// the profile is stable across deletion of any rated job.
func (s *RatingService) GetRatingProfile(userID int64) (*RatingProfile, error) {
	live, err := s.ratingRepo.FindLiveByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load live ratings: %w", err)
	}
	archived, err := s.ratingRepo.FindArchivedByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load archived ratings: %w", err)
	}

	profile := &RatingProfile{
		UserID:           userID,
		CountByRaterType: make(map[model.PrincipalType]int),
	}
	sum := 0
	add := func(rating int, raterType model.PrincipalType) {
		if profile.TotalCount == 0 || rating > profile.Max {
			profile.Max = rating
		}
		if profile.TotalCount == 0 || rating < profile.Min {
			profile.Min = rating
		}
		sum += rating
		profile.TotalCount++
		profile.CountByRaterType[raterType]++
	}
	for _, r := range live {
		add(r.Rating, r.RatedByType)
	}
	for _, r := range archived {
		add(r.Rating, r.RatedByType)
	}
	if profile.TotalCount > 0 {
		profile.OverallAverage = float64(sum) / float64(profile.TotalCount)
	}
	return profile, nil
}
