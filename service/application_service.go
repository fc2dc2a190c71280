package service

import (
	"fmt"
	"strings"
	"time"

	"placement_engine_go/model"
	"placement_engine_go/notification"
	"placement_engine_go/repository"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ApplicationService owns the canonical application lifecycle:
//
//	submitted → under_review → qualified → interview_scheduled →
//	pending_review → hired | rejected
//
// rejected is also reachable from any pre-interview state and from a
// no-show interview. hired and rejected are terminal.
//
// Every transition runs as one transaction that re-verifies ownership
// and re-checks the current status with a guarded update immediately
// before writing, so two racing transitions serialize: the loser sees
// zero affected rows and fails with ErrConflict instead of silently
// double-applying. Notifications go out only after commit.
type ApplicationService struct {
	db            *gorm.DB
	appRepo       repository.ApplicationRepository
	jobRepo       repository.JobRepository
	interviewRepo repository.InterviewRepository
	notifier      notification.Notifier
	retention     time.Duration // rejected applications keep an auto-delete date this far out
}

func NewApplicationService(
	db *gorm.DB,
	appRepo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	interviewRepo repository.InterviewRepository,
	notifier notification.Notifier,
	rejectionRetentionDays int,
) *ApplicationService {
	if rejectionRetentionDays <= 0 {
		rejectionRetentionDays = 10
	}
	return &ApplicationService{
		db:            db,
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		interviewRepo: interviewRepo,
		notifier:      notifier,
		retention:     time.Duration(rejectionRetentionDays) * 24 * time.Hour,
	}
}

// InterviewDetails carries the schedule parameters for Accept.
type InterviewDetails struct {
	InterviewDate time.Time
	Mode          string
	Location      string
	MeetingLink   string
}

// TransitionResult reports a committed transition plus whether the
// follow-up notification was actually delivered. Callers can tell
// "transition applied, email failed" apart from a failed transition.
type TransitionResult struct {
	Application      *model.ApplicationEntity
	Interview        *model.InterviewEntity
	NotificationSent bool
	DeliveryID       string
}

// GetApplication returns one application by id.
func (s *ApplicationService) GetApplication(id int64) (*model.ApplicationEntity, error) {
	app, err := s.appRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	return app, nil
}

// ListByUser returns the candidate's applications.
func (s *ApplicationService) ListByUser(userID int64) ([]*model.ApplicationEntity, error) {
	return s.appRepo.FindByUser(userID)
}

// GetInterview returns the application's interview row, nil when none
// was ever scheduled.
func (s *ApplicationService) GetInterview(applicationID int64) (*model.InterviewEntity, error) {
	return s.interviewRepo.FindByApplication(applicationID)
}

// HasApplied reports whether the user already holds a live
// application against the job. Submit re-checks this inside its
// transaction; this is the cheap pre-check for the apply form.
func (s *ApplicationService) HasApplied(jobID, userID int64) (bool, error) {
	app, err := s.appRepo.FindByJobAndUser(jobID, userID)
	if err != nil {
		return false, err
	}
	return app != nil, nil
}

// Submit creates a new application in the submitted state together
// with the candidate's screening answers. The job must be active,
// within its deadline and under its application limit, and a
// candidate applies to a job at most once while a prior application
// is live. Answers are checked against the job's questions: every
// required question needs a non-empty answer, an answer to a question
// the job never asked is refused, and the stored question_type
// snapshot comes from the question row, not the caller.
func (s *ApplicationService) Submit(userID, jobID int64, answers []*model.ScreeningAnswerEntity) (*model.ApplicationEntity, error) {
	app := &model.ApplicationEntity{
		JobID:  jobID,
		UserID: userID,
		Status: model.ApplicationStatusSubmitted,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job model.JobEntity
		if err := tx.First(&job, jobID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("job %d: %w", jobID, ErrNotFound)
			}
			return err
		}
		if job.Status != model.JobStatusActive {
			return fmt.Errorf("job %d is not accepting applications: %w", jobID, ErrValidation)
		}
		if job.ApplicationDeadline != nil && time.Now().After(*job.ApplicationDeadline) {
			return fmt.Errorf("job %d deadline passed: %w", jobID, ErrValidation)
		}
		var existing int64
		if err := tx.Model(&model.ApplicationEntity{}).
			Where("job_id = ? AND user_id = ?", jobID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("already applied to job %d: %w", jobID, ErrValidation)
		}
		if job.ApplicationLimit > 0 {
			var total int64
			if err := tx.Model(&model.ApplicationEntity{}).
				Where("job_id = ?", jobID).Count(&total).Error; err != nil {
				return err
			}
			if total >= int64(job.ApplicationLimit) {
				return fmt.Errorf("job %d reached its application limit: %w", jobID, ErrValidation)
			}
		}
		var questions []*model.ScreeningQuestionEntity
		if err := tx.Where("job_id = ?", jobID).Find(&questions).Error; err != nil {
			return err
		}
		questionByID := make(map[int64]*model.ScreeningQuestionEntity, len(questions))
		for _, question := range questions {
			questionByID[question.ID] = question
		}
		answered := make(map[int64]bool, len(answers))
		for _, answer := range answers {
			question, ok := questionByID[answer.QuestionID]
			if !ok {
				return fmt.Errorf("question %d does not belong to job %d: %w", answer.QuestionID, jobID, ErrValidation)
			}
			answer.QuestionType = question.QuestionType
			if strings.TrimSpace(answer.Answer) != "" {
				answered[question.ID] = true
			}
		}
		for _, question := range questions {
			if question.IsRequired && !answered[question.ID] {
				return fmt.Errorf("question %d requires an answer: %w", question.ID, ErrValidation)
			}
		}
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		for _, answer := range answers {
			answer.ApplicationID = app.ID
			if err := tx.Create(answer).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Accept moves a non-terminal application to interview_scheduled,
// creating the interview row, in one atomic unit. Only the job owner
// may accept. The acceptance email goes out after commit.
func (s *ApplicationService) Accept(caller model.Principal, applicationID int64, details InterviewDetails) (*TransitionResult, error) {
	var app model.ApplicationEntity
	var job model.JobEntity
	interview := &model.InterviewEntity{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadForUpdate(tx, applicationID, &app, &job); err != nil {
			return err
		}
		if !job.Owner().Is(caller) {
			return fmt.Errorf("caller %s:%d does not own job %d: %w", caller.Type, caller.ID, job.ID, ErrAccessDenied)
		}
		if app.IsTerminal() || app.Status == model.ApplicationStatusInterviewScheduled {
			return fmt.Errorf("application %d is %s: %w", app.ID, app.Status, ErrInvalidTransition)
		}
		// The interview row is 1:1 with the application. A re-accept
		// after a cancelled interview reuses the existing row instead
		// of violating that uniqueness.
		var existing model.InterviewEntity
		err := tx.Where("application_id = ?", app.ID).First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			*interview = model.InterviewEntity{
				ApplicationID:   app.ID,
				ScheduledByType: caller.Type,
				ScheduledByID:   caller.ID,
				InterviewDate:   details.InterviewDate,
				Mode:            details.Mode,
				Location:        details.Location,
				MeetingLink:     details.MeetingLink,
				Status:          model.InterviewStatusScheduled,
			}
			if err := tx.Create(interview).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			existing.ScheduledByType = caller.Type
			existing.ScheduledByID = caller.ID
			existing.InterviewDate = details.InterviewDate
			existing.Mode = details.Mode
			existing.Location = details.Location
			existing.MeetingLink = details.MeetingLink
			existing.Status = model.InterviewStatusScheduled
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			*interview = existing
		}
		if err := s.swapStatus(tx, &app, model.ApplicationStatusInterviewScheduled, nil); err != nil {
			return err
		}
		return s.appendLedger(tx, caller, app.ID, model.ActionTypeAccepted, "")
	})
	if err != nil {
		return nil, err
	}

	result := &TransitionResult{Application: &app, Interview: interview}
	result.DeliveryID, result.NotificationSent = s.notify(func() (string, error) {
		return s.notifier.SendAcceptanceEmail(app.UserID, job.Title, details.InterviewDate)
	})
	return result, nil
}

// Reject moves any non-terminal application to rejected, records the
// reason and stamps the auto-delete date. Only the job owner may
// reject. The rejection email goes out after commit.
func (s *ApplicationService) Reject(caller model.Principal, applicationID int64, reason string) (*TransitionResult, error) {
	var app model.ApplicationEntity
	var job model.JobEntity

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadForUpdate(tx, applicationID, &app, &job); err != nil {
			return err
		}
		if !job.Owner().Is(caller) {
			return fmt.Errorf("caller %s:%d does not own job %d: %w", caller.Type, caller.ID, job.ID, ErrAccessDenied)
		}
		if app.IsTerminal() {
			return fmt.Errorf("application %d is %s: %w", app.ID, app.Status, ErrInvalidTransition)
		}
		if err := s.rejectInTx(tx, &app, reason); err != nil {
			return err
		}
		return s.appendLedger(tx, caller, app.ID, model.ActionTypeRejected, reason)
	})
	if err != nil {
		return nil, err
	}

	result := &TransitionResult{Application: &app}
	result.DeliveryID, result.NotificationSent = s.notify(func() (string, error) {
		return s.notifier.SendRejectionEmail(app.UserID, job.Title, reason)
	})
	return result, nil
}

// PostInterviewReject rejects an application after a completed
// interview. Unlike Reject it requires the application to be in
// pending_review and uses the post-interview rejection template.
func (s *ApplicationService) PostInterviewReject(caller model.Principal, applicationID int64, reason string) (*TransitionResult, error) {
	var app model.ApplicationEntity
	var job model.JobEntity

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadForUpdate(tx, applicationID, &app, &job); err != nil {
			return err
		}
		if !job.Owner().Is(caller) {
			return fmt.Errorf("caller %s:%d does not own job %d: %w", caller.Type, caller.ID, job.ID, ErrAccessDenied)
		}
		if app.Status != model.ApplicationStatusPendingReview {
			return fmt.Errorf("application %d is %s, post-interview rejection requires %s: %w",
				app.ID, app.Status, model.ApplicationStatusPendingReview, ErrInvalidTransition)
		}
		if err := s.rejectInTx(tx, &app, reason); err != nil {
			return err
		}
		return s.appendLedger(tx, caller, app.ID, model.ActionTypeRejected, reason)
	})
	if err != nil {
		return nil, err
	}

	result := &TransitionResult{Application: &app}
	result.DeliveryID, result.NotificationSent = s.notify(func() (string, error) {
		return s.notifier.SendPostInterviewRejectionEmail(app.UserID, job.Title, reason)
	})
	return result, nil
}

// Hire moves a non-terminal application to hired and records the
// employment row in the same unit. Only the job owner may hire.
func (s *ApplicationService) Hire(caller model.Principal, applicationID int64, employerName string) (*TransitionResult, error) {
	var app model.ApplicationEntity
	var job model.JobEntity

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadForUpdate(tx, applicationID, &app, &job); err != nil {
			return err
		}
		if !job.Owner().Is(caller) {
			return fmt.Errorf("caller %s:%d does not own job %d: %w", caller.Type, caller.ID, job.ID, ErrAccessDenied)
		}
		if app.IsTerminal() {
			return fmt.Errorf("application %d is %s: %w", app.ID, app.Status, ErrInvalidTransition)
		}
		if err := s.swapStatus(tx, &app, model.ApplicationStatusHired, nil); err != nil {
			return err
		}
		employment := &model.UserEmploymentStatusEntity{
			UserID:        app.UserID,
			ApplicationID: app.ID,
			JobID:         job.ID,
			EmployerType:  job.OwnerType,
			EmployerID:    job.OwnerID,
			EmployerName:  employerName,
			JobTitle:      job.Title,
			HiredDate:     time.Now(),
			Status:        model.EmploymentStatusActive,
		}
		if err := tx.Create(employment).Error; err != nil {
			return err
		}
		return s.appendLedger(tx, caller, app.ID, model.ActionTypeAccepted, "hired")
	})
	if err != nil {
		return nil, err
	}

	result := &TransitionResult{Application: &app}
	result.DeliveryID, result.NotificationSent = s.notify(func() (string, error) {
		if _, err := s.notifier.AddProfileNotification(app.UserID, fmt.Sprintf("You were hired for %s", job.Title)); err != nil {
			log.WithError(err).WithField("user_id", app.UserID).Warn("profile notification failed")
		}
		return s.notifier.SendHiredEmail(app.UserID, job.Title, employerName)
	})
	return result, nil
}

// UpdateInterviewStatus is driven by the interview's scheduler and
// couples the interview outcome back onto the application:
//
//	completed → pending_review
//	cancelled → under_review (back to the queue)
//	no_show   → rejected, with auto-delete date and rejection email
func (s *ApplicationService) UpdateInterviewStatus(caller model.Principal, interviewID int64, newStatus string) (*TransitionResult, error) {
	switch newStatus {
	case model.InterviewStatusCompleted, model.InterviewStatusCancelled, model.InterviewStatusNoShow:
	default:
		return nil, fmt.Errorf("unknown interview status %q: %w", newStatus, ErrValidation)
	}

	var app model.ApplicationEntity
	var job model.JobEntity
	var interview model.InterviewEntity
	noShow := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&interview, interviewID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("interview %d: %w", interviewID, ErrNotFound)
			}
			return err
		}
		if !interview.Scheduler().Is(caller) {
			return fmt.Errorf("caller %s:%d did not schedule interview %d: %w", caller.Type, caller.ID, interview.ID, ErrAccessDenied)
		}
		if interview.Status != model.InterviewStatusScheduled {
			return fmt.Errorf("interview %d is %s: %w", interview.ID, interview.Status, ErrInvalidTransition)
		}
		if err := s.loadForUpdate(tx, interview.ApplicationID, &app, &job); err != nil {
			return err
		}
		if app.IsTerminal() {
			return fmt.Errorf("application %d is %s: %w", app.ID, app.Status, ErrInvalidTransition)
		}

		guarded := tx.Model(&model.InterviewEntity{}).
			Where("id = ? AND status = ?", interview.ID, model.InterviewStatusScheduled).
			Updates(map[string]interface{}{"status": newStatus, "updated_at": time.Now()})
		if guarded.Error != nil {
			return guarded.Error
		}
		if guarded.RowsAffected == 0 {
			return fmt.Errorf("interview %d: %w", interview.ID, ErrConflict)
		}
		interview.Status = newStatus

		switch newStatus {
		case model.InterviewStatusCompleted:
			return s.swapStatus(tx, &app, model.ApplicationStatusPendingReview, nil)
		case model.InterviewStatusCancelled:
			return s.swapStatus(tx, &app, model.ApplicationStatusUnderReview, nil)
		case model.InterviewStatusNoShow:
			noShow = true
			return s.rejectInTx(tx, &app, "No show at the scheduled interview")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &TransitionResult{Application: &app, Interview: &interview}
	switch {
	case noShow:
		result.DeliveryID, result.NotificationSent = s.notify(func() (string, error) {
			return s.notifier.SendRejectionEmail(app.UserID, job.Title, app.RejectionReason)
		})
	case newStatus == model.InterviewStatusCompleted:
		result.DeliveryID, result.NotificationSent = s.notify(func() (string, error) {
			return s.notifier.AddProfileNotification(app.UserID,
				fmt.Sprintf("Your interview for %s is complete, the result is under review", job.Title))
		})
	default:
		result.NotificationSent = true
	}
	return result, nil
}

// UpdateApplicationStatus is the coordinator-only manual nudge between
// the pre-interview queue states. It is limited to coordinator-created
// jobs and refuses to touch applications that were already accepted,
// rejected or hired.
func (s *ApplicationService) UpdateApplicationStatus(caller model.Principal, applicationID int64, newStatus string) (*model.ApplicationEntity, error) {
	switch newStatus {
	case model.ApplicationStatusSubmitted, model.ApplicationStatusUnderReview, model.ApplicationStatusQualified:
	default:
		return nil, fmt.Errorf("status %q is not a manual queue status: %w", newStatus, ErrValidation)
	}

	var app model.ApplicationEntity
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job model.JobEntity
		if err := s.loadForUpdate(tx, applicationID, &app, &job); err != nil {
			return err
		}
		if job.OwnerType != model.PrincipalCoordinator || !job.Owner().Is(caller) {
			return fmt.Errorf("manual status updates require the owning coordinator: %w", ErrAccessDenied)
		}
		switch app.Status {
		case model.ApplicationStatusInterviewScheduled, model.ApplicationStatusHired, model.ApplicationStatusRejected:
			return fmt.Errorf("application %d is %s: %w", app.ID, app.Status, ErrInvalidTransition)
		}
		return s.swapStatus(tx, &app, newStatus, nil)
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// loadForUpdate reads the application and its job inside the
// transaction. The read is repeated by swapStatus's guard, so a stale
// read here surfaces as ErrConflict rather than a lost update.
func (s *ApplicationService) loadForUpdate(tx *gorm.DB, applicationID int64, app *model.ApplicationEntity, job *model.JobEntity) error {
	if err := tx.First(app, applicationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
		}
		return err
	}
	if err := tx.First(job, app.JobID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("job %d: %w", app.JobID, ErrNotFound)
		}
		return err
	}
	return nil
}

// swapStatus applies a guarded compare-and-swap on the application
// status. extra columns are written in the same statement.
func (s *ApplicationService) swapStatus(tx *gorm.DB, app *model.ApplicationEntity, newStatus string, extra map[string]interface{}) error {
	updates := map[string]interface{}{
		"status":     newStatus,
		"updated_at": time.Now(),
	}
	for column, value := range extra {
		updates[column] = value
	}
	guarded := tx.Model(&model.ApplicationEntity{}).
		Where("id = ? AND status = ?", app.ID, app.Status).
		Updates(updates)
	if guarded.Error != nil {
		return guarded.Error
	}
	if guarded.RowsAffected == 0 {
		return fmt.Errorf("application %d: %w", app.ID, ErrConflict)
	}
	app.Status = newStatus
	return nil
}

func (s *ApplicationService) rejectInTx(tx *gorm.DB, app *model.ApplicationEntity, reason string) error {
	autoDelete := time.Now().Add(s.retention)
	if err := s.swapStatus(tx, app, model.ApplicationStatusRejected, map[string]interface{}{
		"rejection_reason": reason,
		"auto_delete_date": autoDelete,
	}); err != nil {
		return err
	}
	app.RejectionReason = reason
	app.AutoDeleteDate = &autoDelete
	return nil
}

// appendLedger writes the advisory review ledger row for company
// callers. Coordinator actions are reflected only in the canonical
// status; the ledger is scoped to company review workflows.
func (s *ApplicationService) appendLedger(tx *gorm.DB, caller model.Principal, applicationID int64, actionType, reason string) error {
	if caller.Type != model.PrincipalCompany {
		return nil
	}
	return tx.Create(&model.CompanyApplicationActionEntity{
		ApplicationID: applicationID,
		CompanyID:     caller.ID,
		ActionType:    actionType,
		Reason:        reason,
	}).Error
}

// notify runs one best-effort delivery. Failures are logged and
// reported through the result, never propagated.
func (s *ApplicationService) notify(send func() (string, error)) (string, bool) {
	deliveryID, err := send()
	if err != nil {
		log.WithError(err).Warn("notification dispatch failed")
		return "", false
	}
	return deliveryID, true
}
