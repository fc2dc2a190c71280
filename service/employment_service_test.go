package service

import (
	"errors"
	"testing"
	"time"

	"placement_engine_go/model"
)

func seedHire(t *testing.T, e *engine, userID int64, employer model.Principal) *model.UserEmploymentStatusEntity {
	t.Helper()
	employment := &model.UserEmploymentStatusEntity{
		UserID:       userID,
		EmployerType: employer.Type,
		EmployerID:   employer.ID,
		EmployerName: "Acme",
		JobTitle:     "Data Analyst",
		HiredDate:    time.Now().Add(-30 * 24 * time.Hour),
		Status:       model.EmploymentStatusActive,
	}
	if err := e.db.Create(employment).Error; err != nil {
		t.Fatalf("seed employment: %v", err)
	}
	return employment
}

func TestDirectEmploymentHistory(t *testing.T) {
	e := newEngine(t)
	seedHire(t, e, 42, company)

	history, err := e.employment.GetEmploymentHistory(42, model.PrincipalCompany, company.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history.Records) != 1 || history.Indirect {
		t.Errorf("history = %+v, want one direct record", history)
	}
}

func TestIndirectHistoryViaAffiliatedCompany(t *testing.T) {
	e := newEngine(t)
	seedHire(t, e, 42, company)
	if err := e.employment.Affiliate(coordinator.ID, company.ID); err != nil {
		t.Fatalf("affiliate: %v", err)
	}

	history, err := e.employment.GetEmploymentHistory(42, model.PrincipalCoordinator, coordinator.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history.Records) != 1 || !history.Indirect {
		t.Errorf("history = %+v, want one indirect record", history)
	}

	// A different, unaffiliated coordinator sees nothing.
	other, err := e.employment.GetEmploymentHistory(42, model.PrincipalCoordinator, 555)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(other.Records) != 0 {
		t.Errorf("unaffiliated coordinator got records: %+v", other.Records)
	}
}

func TestDirectHistoryWinsOverIndirect(t *testing.T) {
	e := newEngine(t)
	seedHire(t, e, 42, company)
	direct := seedHire(t, e, 42, coordinator)
	if err := e.employment.Affiliate(coordinator.ID, company.ID); err != nil {
		t.Fatalf("affiliate: %v", err)
	}

	history, err := e.employment.GetEmploymentHistory(42, model.PrincipalCoordinator, coordinator.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if history.Indirect {
		t.Error("direct records exist, lookup must not fall back to indirect")
	}
	if len(history.Records) != 1 || history.Records[0].ID != direct.ID {
		t.Errorf("history = %+v, want only the direct record", history.Records)
	}
}

func TestInactiveAffiliationExcluded(t *testing.T) {
	e := newEngine(t)
	seedHire(t, e, 42, company)
	affiliation := &model.CoordinatorCompanyEntity{
		CoordinatorID: coordinator.ID,
		CompanyID:     company.ID,
		Status:        model.AffiliationStatusInactive,
	}
	if err := e.db.Create(affiliation).Error; err != nil {
		t.Fatalf("seed affiliation: %v", err)
	}

	history, err := e.employment.GetEmploymentHistory(42, model.PrincipalCoordinator, coordinator.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history.Records) != 0 {
		t.Errorf("inactive affiliation leaked records: %+v", history.Records)
	}
}

func TestEndContract(t *testing.T) {
	e := newEngine(t)
	employment := seedHire(t, e, 42, company)

	ended, err := e.employment.EndContract(employment.ID, 42)
	if err != nil {
		t.Fatalf("end contract: %v", err)
	}
	if ended.Status != model.EmploymentStatusContractEnded || ended.ContractEndDate == nil {
		t.Errorf("ended = %+v", ended)
	}

	// Only once, and only by the employed user.
	if _, err := e.employment.EndContract(employment.ID, 42); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second end: got %v, want ErrInvalidTransition", err)
	}
	second := seedHire(t, e, 43, company)
	if _, err := e.employment.EndContract(second.ID, 42); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("foreign end: got %v, want ErrAccessDenied", err)
	}
	if _, err := e.employment.EndContract(9999, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing employment: got %v, want ErrNotFound", err)
	}
}
