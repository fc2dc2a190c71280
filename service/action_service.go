package service

import (
	"fmt"

	"placement_engine_go/model"
	"placement_engine_go/repository"
	"placement_engine_go/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActionService manages the company-side review ledger. The ledger is
// advisory: listing views are derived from it, but the canonical
// lifecycle truth is always the application status. Parking an
// application on_hold does not touch that status, so the coordinator
// side keeps seeing it in review.
type ActionService struct {
	db           *gorm.DB
	actionRepo   repository.ActionRepository
	appRepo      repository.ApplicationRepository
	assetBaseURL string
}

func NewActionService(db *gorm.DB, actionRepo repository.ActionRepository, appRepo repository.ApplicationRepository, assetBaseURL string) *ActionService {
	return &ActionService{db: db, actionRepo: actionRepo, appRepo: appRepo, assetBaseURL: assetBaseURL}
}

var validActionTypes = map[string]bool{
	model.ActionTypeAccepted:     true,
	model.ActionTypeRejected:     true,
	model.ActionTypeOnHold:       true,
	model.ActionTypeComment:      true,
	model.ActionTypeEmailSent:    true,
	model.ActionTypeReconsidered: true,
}

// RecordAction appends one ledger row. Prior rows for the same action
// are never overwritten.
func (s *ActionService) RecordAction(applicationID, companyID int64, actionType string, payload map[string]interface{}, reason string) (*model.CompanyApplicationActionEntity, error) {
	if !validActionTypes[actionType] {
		return nil, fmt.Errorf("unknown action type %q: %w", actionType, ErrValidation)
	}
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
	}
	action := &model.CompanyApplicationActionEntity{
		ApplicationID: applicationID,
		CompanyID:     companyID,
		ActionType:    actionType,
		ActionData:    datatypes.JSONMap(payload),
		Reason:        reason,
	}
	if err := s.actionRepo.Append(action); err != nil {
		return nil, err
	}
	return action, nil
}

// Reconsider takes an application off hold: the company's prior
// on_hold rows are removed and a reconsidered row is appended, both
// in one transaction. This is the one place the ledger is mutated by
// deletion, so that "currently on hold" can be answered from the
// remaining rows alone.
func (s *ActionService) Reconsider(applicationID, companyID int64) (*model.CompanyApplicationActionEntity, error) {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
	}
	action := &model.CompanyApplicationActionEntity{
		ApplicationID: applicationID,
		CompanyID:     companyID,
		ActionType:    model.ActionTypeReconsidered,
	}
	// The delete doubles as the precondition: when a racing Reconsider
	// already removed the on_hold rows, zero rows are affected and no
	// second reconsidered row is appended.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		removed := tx.Where("application_id = ? AND company_id = ? AND action_type = ?",
			applicationID, companyID, model.ActionTypeOnHold).
			Delete(&model.CompanyApplicationActionEntity{})
		if removed.Error != nil {
			return removed.Error
		}
		if removed.RowsAffected == 0 {
			return fmt.Errorf("application %d is not on hold for company %d: %w", applicationID, companyID, ErrInvalidTransition)
		}
		return tx.Create(action).Error
	})
	if err != nil {
		return nil, err
	}
	return action, nil
}

// IsOnHold reports whether the company currently has the application
// parked. Because reconsideration deletes on_hold rows, any remaining
// row means "still parked".
func (s *ActionService) IsOnHold(applicationID, companyID int64) (bool, error) {
	count, err := s.actionRepo.CountOnHold(applicationID, companyID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReviewEntry is one row of a company listing projection.
type ReviewEntry struct {
	Application *model.ApplicationEntity
	PhotoURL    string
}

// ListByAction returns the applications whose ledger carries an
// action of the given type by the company. This is an eventually
// consistent projection; callers must not treat it as the canonical
// lifecycle state.
func (s *ActionService) ListByAction(companyID int64, actionType string) ([]*ReviewEntry, error) {
	if !validActionTypes[actionType] {
		return nil, fmt.Errorf("unknown action type %q: %w", actionType, ErrValidation)
	}
	ids, err := s.actionRepo.FindApplicationIDsWithAction(companyID, actionType)
	if err != nil {
		return nil, err
	}
	return s.loadEntries(ids)
}

// ListActiveReview returns the job's applications the company has not
// parked: everything except the ones currently on hold. A reconsidered
// application reappears here.
func (s *ActionService) ListActiveReview(companyID, jobID int64) ([]*ReviewEntry, error) {
	apps, err := s.appRepo.FindByJob(jobID)
	if err != nil {
		return nil, err
	}
	var entries []*ReviewEntry
	for _, app := range apps {
		onHold, err := s.IsOnHold(app.ID, companyID)
		if err != nil {
			return nil, err
		}
		if onHold {
			continue
		}
		entries = append(entries, &ReviewEntry{
			Application: app,
			PhotoURL:    utils.ResolvePhotoURL(s.assetBaseURL, fmt.Sprintf("users/%d/photo", app.UserID)),
		})
	}
	return entries, nil
}

// History returns the full ledger for one application and company in
// insertion order.
func (s *ActionService) History(applicationID, companyID int64) ([]*model.CompanyApplicationActionEntity, error) {
	return s.actionRepo.FindByApplicationAndCompany(applicationID, companyID)
}

func (s *ActionService) loadEntries(ids []int64) ([]*ReviewEntry, error) {
	var entries []*ReviewEntry
	for _, id := range ids {
		app, err := s.appRepo.FindByID(id)
		if err != nil {
			return nil, err
		}
		if app == nil {
			continue
		}
		entries = append(entries, &ReviewEntry{
			Application: app,
			PhotoURL:    utils.ResolvePhotoURL(s.assetBaseURL, fmt.Sprintf("users/%d/photo", app.UserID)),
		})
	}
	return entries, nil
}
