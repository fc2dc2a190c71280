package service

import (
	"fmt"
	"time"

	"placement_engine_go/model"
	"placement_engine_go/repository"

	"gorm.io/gorm"
)

// EmploymentService resolves hire history and handles the candidate's
// contract-end action. Employment rows are created only by the hire
// transition in ApplicationService.
type EmploymentService struct {
	db             *gorm.DB
	employmentRepo repository.EmploymentRepository
}

func NewEmploymentService(db *gorm.DB, employmentRepo repository.EmploymentRepository) *EmploymentService {
	return &EmploymentService{db: db, employmentRepo: employmentRepo}
}

// EmploymentHistory is the resolved history for one employer.
// Indirect is set when the records were found through the
// coordinator's affiliated companies rather than the coordinator
// itself.
type EmploymentHistory struct {
	Records  []*model.UserEmploymentStatusEntity
	Indirect bool
}

// GetEmploymentHistory looks up the user's hire records for the exact
// employer first. When the employer is a coordinator with no direct
// records, placements fulfilled by its actively affiliated companies
// are reported instead; direct history always wins when both exist.
func (s *EmploymentService) GetEmploymentHistory(userID int64, employerType model.PrincipalType, employerID int64) (*EmploymentHistory, error) {
	direct, err := s.employmentRepo.FindDirect(userID, employerType, employerID)
	if err != nil {
		return nil, fmt.Errorf("load direct employment history: %w", err)
	}
	if len(direct) > 0 {
		return &EmploymentHistory{Records: direct}, nil
	}
	if employerType != model.PrincipalCoordinator {
		return &EmploymentHistory{}, nil
	}
	indirect, err := s.employmentRepo.FindViaCoordinatorAffiliates(userID, employerID)
	if err != nil {
		return nil, fmt.Errorf("load affiliated employment history: %w", err)
	}
	return &EmploymentHistory{Records: indirect, Indirect: len(indirect) > 0}, nil
}

// EndContract is candidate-initiated: only the employed user may end
// their own active contract. There is no employer-initiated
// termination path.
func (s *EmploymentService) EndContract(employmentID, userID int64) (*model.UserEmploymentStatusEntity, error) {
	var employment model.UserEmploymentStatusEntity
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&employment, employmentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("employment %d: %w", employmentID, ErrNotFound)
			}
			return err
		}
		if employment.UserID != userID {
			return fmt.Errorf("employment %d belongs to another user: %w", employmentID, ErrAccessDenied)
		}
		if employment.Status != model.EmploymentStatusActive {
			return fmt.Errorf("employment %d is %s: %w", employmentID, employment.Status, ErrInvalidTransition)
		}
		now := time.Now()
		guarded := tx.Model(&model.UserEmploymentStatusEntity{}).
			Where("id = ? AND status = ?", employmentID, model.EmploymentStatusActive).
			Updates(map[string]interface{}{
				"status":            model.EmploymentStatusContractEnded,
				"contract_end_date": now,
				"updated_at":        now,
			})
		if guarded.Error != nil {
			return guarded.Error
		}
		if guarded.RowsAffected == 0 {
			return fmt.Errorf("employment %d: %w", employmentID, ErrConflict)
		}
		employment.Status = model.EmploymentStatusContractEnded
		employment.ContractEndDate = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &employment, nil
}

// Affiliate records an active coordinator-company affiliation used by
// the indirect history lookup.
func (s *EmploymentService) Affiliate(coordinatorID, companyID int64) error {
	return s.employmentRepo.SaveAffiliation(&model.CoordinatorCompanyEntity{
		CoordinatorID: coordinatorID,
		CompanyID:     companyID,
		Status:        model.AffiliationStatusActive,
	})
}
