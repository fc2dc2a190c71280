package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"placement_engine_go/config"
	"placement_engine_go/model"
	"placement_engine_go/notification"
	"placement_engine_go/repository"
	"placement_engine_go/service"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Application wires configuration, database, repositories and
// services together.
type Application struct {
	config *config.GlobalConfig
	db     *gorm.DB

	ScreeningService   *service.ScreeningService
	ApplicationService *service.ApplicationService
	ActionService      *service.ActionService
	RatingService      *service.RatingService
	EmploymentService  *service.EmploymentService
	JobService         *service.JobService
}

func NewApplication() *Application {
	return &Application{}
}

// InitConfig loads the viper configuration.
func (app *Application) InitConfig() error {
	cfg, err := config.InitConfig()
	if err != nil {
		return err
	}
	app.config = cfg
	return nil
}

// InitDatabase opens the MySQL connection, configures the pool and
// migrates the schema.
func (app *Application) InitDatabase() error {
	log.Info("connecting to database")

	db, err := gorm.Open(mysql.Open(app.config.Database.DSN), &gorm.Config{})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(app.config.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(app.config.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(app.config.Database.ConnMaxLifetimeMinutes) * time.Minute)

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
		return err
	}

	app.db = db
	log.Info("database ready")
	return nil
}

// InitServices builds the repository and service graph.
func (app *Application) InitServices() error {
	templates := notification.DefaultTemplates()
	if path := app.config.Notification.TemplatesPath; path != "" {
		loaded, err := notification.LoadTemplates(path)
		if err != nil {
			log.WithError(err).Warn("template file unreadable, using defaults")
		} else {
			templates = loaded
		}
	}
	notifier := notification.NewEmailNotifier(templates, nil)

	jobRepo := repository.NewJobRepository(app.db)
	appRepo := repository.NewApplicationRepository(app.db)
	screeningRepo := repository.NewScreeningRepository(app.db)
	interviewRepo := repository.NewInterviewRepository(app.db)
	actionRepo := repository.NewActionRepository(app.db)
	ratingRepo := repository.NewRatingRepository(app.db)
	employmentRepo := repository.NewEmploymentRepository(app.db)

	app.ScreeningService = service.NewScreeningService(jobRepo, screeningRepo, appRepo)
	app.ApplicationService = service.NewApplicationService(
		app.db, appRepo, jobRepo, interviewRepo, notifier,
		app.config.Retention.RejectionTTLDays,
	)
	app.ActionService = service.NewActionService(app.db, actionRepo, appRepo, app.config.Notification.AssetBaseURL)
	app.RatingService = service.NewRatingService(app.db, ratingRepo)
	app.EmploymentService = service.NewEmploymentService(app.db, employmentRepo)
	app.JobService = service.NewJobService(app.db, jobRepo)

	log.Info("services initialized")
	return nil
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	app := NewApplication()
	if err := app.InitConfig(); err != nil {
		log.WithError(err).Fatal("config init failed")
	}
	if err := app.InitDatabase(); err != nil {
		log.WithError(err).Fatal("database init failed")
	}
	if err := app.InitServices(); err != nil {
		log.WithError(err).Fatal("service init failed")
	}

	log.Info("placement engine ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
}
