package model

import (
	"time"
)

// ApplicantRatingEntity is one rater's score for one application,
// unique per (application, rater). Writes go through
// service.RatingService, which refreshes the denormalized cache on
// the application row.
type ApplicantRatingEntity struct {
	ID            int64         `gorm:"primaryKey;autoIncrement;column:id"`
	ApplicationID int64         `gorm:"column:application_id;uniqueIndex:idx_rating_app_rater"`
	RatedByType   PrincipalType `gorm:"column:rated_by_type;type:varchar(20);uniqueIndex:idx_rating_app_rater"`
	RatedByID     int64         `gorm:"column:rated_by_id;uniqueIndex:idx_rating_app_rater"`
	Rating        int           `gorm:"column:rating"` // 1..5
	Comment       string        `gorm:"column:comment;type:text"`
	CreatedAt     time.Time     `gorm:"column:created_at"`
	UpdatedAt     time.Time     `gorm:"column:updated_at"`
}

func (ApplicantRatingEntity) TableName() string {
	return "applicant_ratings"
}

// UserRatingArchiveEntity is a point-in-time copy of a live rating,
// written immediately before the job deletion cascade destroys the
// originating row. Append-only, never updated, so a candidate's
// rating history survives job deletion.
type UserRatingArchiveEntity struct {
	ID                    int64         `gorm:"primaryKey;autoIncrement;column:id"`
	UserID                int64         `gorm:"column:user_id;index"`
	OriginalApplicationID int64         `gorm:"column:original_application_id"`
	RatedByType           PrincipalType `gorm:"column:rated_by_type;type:varchar(20)"`
	RatedByID             int64         `gorm:"column:rated_by_id"`
	Rating                int           `gorm:"column:rating"`
	Comment               string        `gorm:"column:comment;type:text"`
	JobTitle              string        `gorm:"column:job_title"`
	ArchivedAt            time.Time     `gorm:"column:archived_at"`
}

func (UserRatingArchiveEntity) TableName() string {
	return "user_rating_archives"
}
