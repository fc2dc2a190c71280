package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"placement_engine_go/model"
	"placement_engine_go/notification"
	"placement_engine_go/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a fresh in-memory database with the full schema.
// The pool is pinned to one connection so every session sees the same
// memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.JobEntity{},
		&model.ApplicationEntity{},
		&model.ScreeningQuestionEntity{},
		&model.ScreeningAnswerEntity{},
		&model.InterviewEntity{},
		&model.CompanyApplicationActionEntity{},
		&model.ApplicantRatingEntity{},
		&model.UserRatingArchiveEntity{},
		&model.UserEmploymentStatusEntity{},
		&model.CoordinatorCompanyEntity{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// stubNotifier records every call and can be told to fail.
type stubNotifier struct {
	calls []string
	fail  bool
}

func (n *stubNotifier) record(kind string) (string, error) {
	if n.fail {
		return "", errors.New("delivery refused")
	}
	n.calls = append(n.calls, kind)
	return fmt.Sprintf("delivery-%d", len(n.calls)), nil
}

func (n *stubNotifier) SendAcceptanceEmail(userID int64, jobTitle string, interviewDate time.Time) (string, error) {
	return n.record("acceptance")
}

func (n *stubNotifier) SendRejectionEmail(userID int64, jobTitle, reason string) (string, error) {
	return n.record("rejection")
}

func (n *stubNotifier) SendPostInterviewRejectionEmail(userID int64, jobTitle, reason string) (string, error) {
	return n.record("post_interview_rejection")
}

func (n *stubNotifier) SendHiredEmail(userID int64, jobTitle, employerName string) (string, error) {
	return n.record("hired")
}

func (n *stubNotifier) AddProfileNotification(userID int64, message string) (string, error) {
	return n.record("profile")
}

var _ notification.Notifier = (*stubNotifier)(nil)

// engine bundles the full service graph over one test database.
type engine struct {
	db       *gorm.DB
	notifier *stubNotifier

	screening  *ScreeningService
	apps       *ApplicationService
	actions    *ActionService
	ratings    *RatingService
	employment *EmploymentService
	jobs       *JobService
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	db := openTestDB(t)
	notifier := &stubNotifier{}

	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	screeningRepo := repository.NewScreeningRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	actionRepo := repository.NewActionRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	employmentRepo := repository.NewEmploymentRepository(db)

	return &engine{
		db:         db,
		notifier:   notifier,
		screening:  NewScreeningService(jobRepo, screeningRepo, appRepo),
		apps:       NewApplicationService(db, appRepo, jobRepo, interviewRepo, notifier, 10),
		actions:    NewActionService(db, actionRepo, appRepo, "http://assets.test"),
		ratings:    NewRatingService(db, ratingRepo),
		employment: NewEmploymentService(db, employmentRepo),
		jobs:       NewJobService(db, jobRepo),
	}
}

func (e *engine) createJob(t *testing.T, owner model.Principal, title string) *model.JobEntity {
	t.Helper()
	job := &model.JobEntity{
		OwnerType:          owner.Type,
		OwnerID:            owner.ID,
		Title:              title,
		Status:             model.JobStatusActive,
		PositionsAvailable: 1,
	}
	if err := e.db.Create(job).Error; err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func (e *engine) createApplication(t *testing.T, jobID, userID int64) *model.ApplicationEntity {
	t.Helper()
	app := &model.ApplicationEntity{
		JobID:  jobID,
		UserID: userID,
		Status: model.ApplicationStatusSubmitted,
	}
	if err := e.db.Create(app).Error; err != nil {
		t.Fatalf("create application: %v", err)
	}
	return app
}

func (e *engine) applicationStatus(t *testing.T, id int64) string {
	t.Helper()
	var app model.ApplicationEntity
	if err := e.db.First(&app, id).Error; err != nil {
		t.Fatalf("reload application %d: %v", id, err)
	}
	return app.Status
}
