package service

import (
	"fmt"
	"time"

	"placement_engine_go/model"
	"placement_engine_go/repository"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// JobService orchestrates job deletion and the rejected-application
// purge. Both follow the same ordering rule: ratings reachable
// through the rows about to be destroyed are archived first, inside
// the same transaction, so the rating profile of every affected
// candidate is identical before and after the cascade.
type JobService struct {
	db      *gorm.DB
	jobRepo repository.JobRepository
}

func NewJobService(db *gorm.DB, jobRepo repository.JobRepository) *JobService {
	return &JobService{db: db, jobRepo: jobRepo}
}

// CreateJob persists a new posting for the owner. Postings created by
// companies under coordinator supervision start in the approval queue
// elsewhere; this core only records what it is given.
func (s *JobService) CreateJob(owner model.Principal, job *model.JobEntity) error {
	job.OwnerType = owner.Type
	job.OwnerID = owner.ID
	if job.Status == "" {
		job.Status = model.JobStatusDraft
	}
	return s.jobRepo.Save(job)
}

// GetJob returns one job by id.
func (s *JobService) GetJob(id int64) (*model.JobEntity, error) {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("job %d: %w", id, ErrNotFound)
	}
	return job, nil
}

// ListByOwner returns the principal's postings.
func (s *JobService) ListByOwner(owner model.Principal) ([]*model.JobEntity, error) {
	return s.jobRepo.FindByOwner(owner.Type, owner.ID)
}

// UpdateJobStatus moves a posting between its lifecycle states.
// Owner only.
func (s *JobService) UpdateJobStatus(caller model.Principal, jobID int64, status string) (*model.JobEntity, error) {
	switch status {
	case model.JobStatusDraft, model.JobStatusActive, model.JobStatusPaused,
		model.JobStatusClosed, model.JobStatusPendingApproval:
	default:
		return nil, fmt.Errorf("unknown job status %q: %w", status, ErrValidation)
	}
	job, err := s.GetJob(jobID)
	if err != nil {
		return nil, err
	}
	if !job.Owner().Is(caller) {
		return nil, fmt.Errorf("caller %s:%d does not own job %d: %w", caller.Type, caller.ID, jobID, ErrAccessDenied)
	}
	job.Status = status
	if err := s.jobRepo.Update(job); err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob removes a job and everything hanging off it. Owner only.
// Within one transaction it (1) copies every live rating of the job's
// applications into the archive, then (2) deletes answers, ratings,
// ledger rows, interviews, applications, screening questions and the
// job itself. The archive write precedes the deletes as a correctness
// requirement, not an optimization: rating aggregation reads the
// archive as the surviving copy once the live rows are gone.
func (s *JobService) DeleteJob(caller model.Principal, jobID int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var job model.JobEntity
		if err := tx.First(&job, jobID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("job %d: %w", jobID, ErrNotFound)
			}
			return err
		}
		if !job.Owner().Is(caller) {
			return fmt.Errorf("caller %s:%d does not own job %d: %w", caller.Type, caller.ID, jobID, ErrAccessDenied)
		}

		var apps []*model.ApplicationEntity
		if err := tx.Where("job_id = ?", jobID).Find(&apps).Error; err != nil {
			return err
		}
		appIDs := make([]int64, 0, len(apps))
		userByApp := make(map[int64]int64, len(apps))
		for _, app := range apps {
			appIDs = append(appIDs, app.ID)
			userByApp[app.ID] = app.UserID
		}

		if len(appIDs) > 0 {
			if err := archiveRatings(tx, appIDs, userByApp, job.Title); err != nil {
				return err
			}
			if err := deleteApplicationRows(tx, appIDs); err != nil {
				return err
			}
		}
		if err := tx.Where("job_id = ?", jobID).Delete(&model.ScreeningQuestionEntity{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.JobEntity{}, jobID).Error; err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"job_id":       jobID,
			"applications": len(appIDs),
		}).Info("job deleted, ratings archived")
		return nil
	})
}

// PurgeExpiredRejections deletes rejected applications whose
// auto-delete date has passed. Invoked on demand, there is no
// background sweeper. Ratings are archived first under the same
// ordering rule as DeleteJob. Returns the number of purged
// applications.
func (s *JobService) PurgeExpiredRejections(now time.Time) (int, error) {
	purged := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var apps []*model.ApplicationEntity
		if err := tx.Where("status = ? AND auto_delete_date IS NOT NULL AND auto_delete_date <= ?",
			model.ApplicationStatusRejected, now).Find(&apps).Error; err != nil {
			return err
		}
		if len(apps) == 0 {
			return nil
		}
		appIDs := make([]int64, 0, len(apps))
		userByApp := make(map[int64]int64, len(apps))
		titleByJob := make(map[int64]string)
		for _, app := range apps {
			appIDs = append(appIDs, app.ID)
			userByApp[app.ID] = app.UserID
			if _, ok := titleByJob[app.JobID]; !ok {
				var job model.JobEntity
				switch err := tx.First(&job, app.JobID).Error; err {
				case nil:
					titleByJob[app.JobID] = job.Title
				case gorm.ErrRecordNotFound:
					// The owning job is already gone; archive with an
					// empty title rather than dropping the snapshot.
					log.WithFields(log.Fields{
						"job_id":         app.JobID,
						"application_id": app.ID,
					}).Warn("purge: job missing, archiving without title")
					titleByJob[app.JobID] = ""
				default:
					return err
				}
			}
		}
		// Archive per application so the snapshot carries the right
		// job title even across different jobs in one sweep.
		for _, app := range apps {
			single := map[int64]int64{app.ID: app.UserID}
			if err := archiveRatings(tx, []int64{app.ID}, single, titleByJob[app.JobID]); err != nil {
				return err
			}
		}
		if err := deleteApplicationRows(tx, appIDs); err != nil {
			return err
		}
		purged = len(appIDs)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		log.WithField("count", purged).Info("purged expired rejected applications")
	}
	return purged, nil
}

// archiveRatings snapshots every live rating of the given
// applications into the archive.
func archiveRatings(tx *gorm.DB, appIDs []int64, userByApp map[int64]int64, jobTitle string) error {
	var ratings []*model.ApplicantRatingEntity
	if err := tx.Where("application_id IN ?", appIDs).Find(&ratings).Error; err != nil {
		return err
	}
	now := time.Now()
	for _, rating := range ratings {
		archive := &model.UserRatingArchiveEntity{
			UserID:                userByApp[rating.ApplicationID],
			OriginalApplicationID: rating.ApplicationID,
			RatedByType:           rating.RatedByType,
			RatedByID:             rating.RatedByID,
			Rating:                rating.Rating,
			Comment:               rating.Comment,
			JobTitle:              jobTitle,
			ArchivedAt:            now,
		}
		if err := tx.Create(archive).Error; err != nil {
			return err
		}
	}
	return nil
}

// deleteApplicationRows cascades over everything owned by the given
// applications, then the applications themselves.
func deleteApplicationRows(tx *gorm.DB, appIDs []int64) error {
	if err := tx.Where("application_id IN ?", appIDs).Delete(&model.ScreeningAnswerEntity{}).Error; err != nil {
		return err
	}
	if err := tx.Where("application_id IN ?", appIDs).Delete(&model.ApplicantRatingEntity{}).Error; err != nil {
		return err
	}
	if err := tx.Where("application_id IN ?", appIDs).Delete(&model.CompanyApplicationActionEntity{}).Error; err != nil {
		return err
	}
	if err := tx.Where("application_id IN ?", appIDs).Delete(&model.InterviewEntity{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", appIDs).Delete(&model.ApplicationEntity{}).Error
}
