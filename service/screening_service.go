package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"placement_engine_go/model"
	"placement_engine_go/repository"
)

// ScreeningService evaluates candidate answers against a job's
// filter-criteria questions. It is a read-only query layer: invoking
// the filter never mutates an application.
type ScreeningService struct {
	jobRepo       repository.JobRepository
	screeningRepo repository.ScreeningRepository
	appRepo       repository.ApplicationRepository
}

func NewScreeningService(
	jobRepo repository.JobRepository,
	screeningRepo repository.ScreeningRepository,
	appRepo repository.ApplicationRepository,
) *ScreeningService {
	return &ScreeningService{
		jobRepo:       jobRepo,
		screeningRepo: screeningRepo,
		appRepo:       appRepo,
	}
}

// AddQuestion attaches a screening question to the caller's job. A
// non-salary question marked as filter criteria must carry a
// non-empty acceptable answer set, otherwise the filter it opts into
// would be meaningless.
func (s *ScreeningService) AddQuestion(caller model.Principal, question *model.ScreeningQuestionEntity) error {
	job, err := s.jobRepo.FindByID(question.JobID)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("job %d: %w", question.JobID, ErrNotFound)
	}
	if !job.Owner().Is(caller) {
		return fmt.Errorf("caller %s:%d does not own job %d: %w", caller.Type, caller.ID, job.ID, ErrAccessDenied)
	}
	if question.IsFilterCriteria && question.QuestionType != model.QuestionTypeSalaryRange {
		acceptable, err := decodeStringSet(question.AcceptableAnswers)
		if err != nil || len(acceptable) == 0 {
			return fmt.Errorf("filter criterion of type %s needs acceptable answers: %w", question.QuestionType, ErrValidation)
		}
	}
	return s.screeningRepo.SaveQuestion(question)
}

// ListQuestions returns every screening question of the job.
func (s *ScreeningService) ListQuestions(jobID int64) ([]*model.ScreeningQuestionEntity, error) {
	return s.screeningRepo.FindQuestionsByJob(jobID)
}

// MeetsStandards evaluates one application's answers against the
// filter-criteria questions. Answers are looked up by question type,
// so when a job carries two filter questions of the same type the
// later-submitted answer is the one considered. Existing answer rows
// depend on that; match by type, not by question id.
//
// Verdict rules, first failure short-circuits:
//   - no answer for a criterion's type: fail
//   - salary_range: answer must parse as a number and sit inside the
//     inclusive [min, max] range; an absent bound is unbounded
//   - any other type: answer must be in acceptable_answers; an empty
//     or null acceptable set leaves the criterion unconstrained
//
// Malformed stored JSON and unparsable numerics fail closed.
func (s *ScreeningService) MeetsStandards(questions []*model.ScreeningQuestionEntity, answers []*model.ScreeningAnswerEntity) bool {
	answerByType := make(map[string]string, len(answers))
	for _, answer := range answers {
		answerByType[answer.QuestionType] = answer.Answer
	}

	for _, question := range questions {
		if !question.IsFilterCriteria {
			continue
		}
		answer, ok := answerByType[question.QuestionType]
		if !ok {
			return false
		}
		if question.QuestionType == model.QuestionTypeSalaryRange {
			if !salaryInRange(answer, question.MinSalaryRange, question.MaxSalaryRange) {
				return false
			}
			continue
		}
		acceptable, err := decodeStringSet(question.AcceptableAnswers)
		if err != nil {
			return false
		}
		if len(acceptable) == 0 {
			continue
		}
		if !containsAnswer(acceptable, answer) {
			return false
		}
	}
	return true
}

// EvaluateApplication loads the application's answers and the job's
// filter criteria and returns the verdict.
func (s *ScreeningService) EvaluateApplication(jobID, applicationID int64) (bool, error) {
	questions, err := s.screeningRepo.FindFilterCriteriaByJob(jobID)
	if err != nil {
		return false, fmt.Errorf("load filter criteria: %w", err)
	}
	answers, err := s.screeningRepo.FindAnswersByApplication(applicationID)
	if err != nil {
		return false, fmt.Errorf("load answers: %w", err)
	}
	return s.MeetsStandards(questions, answers), nil
}

// PartitionResult splits a job's applications into those meeting the
// filter criteria and those that do not.
type PartitionResult struct {
	MeetsStandards []*model.ApplicationEntity
	BelowStandards []*model.ApplicationEntity
}

// PartitionApplications partitions every application of the job by
// screening verdict. The job must have pre-screening filtering
// enabled. Read-only; used by the interactive review views.
func (s *ScreeningService) PartitionApplications(jobID int64) (*PartitionResult, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("job %d: %w", jobID, ErrNotFound)
	}
	if !job.FilterPreScreening {
		return nil, fmt.Errorf("job %d has pre-screening filtering disabled: %w", jobID, ErrValidation)
	}

	questions, err := s.screeningRepo.FindFilterCriteriaByJob(jobID)
	if err != nil {
		return nil, fmt.Errorf("load filter criteria: %w", err)
	}
	apps, err := s.appRepo.FindByJob(jobID)
	if err != nil {
		return nil, fmt.Errorf("load applications: %w", err)
	}

	result := &PartitionResult{}
	for _, app := range apps {
		answers, err := s.screeningRepo.FindAnswersByApplication(app.ID)
		if err != nil {
			return nil, fmt.Errorf("load answers for application %d: %w", app.ID, err)
		}
		if s.MeetsStandards(questions, answers) {
			result.MeetsStandards = append(result.MeetsStandards, app)
		} else {
			result.BelowStandards = append(result.BelowStandards, app)
		}
	}
	return result, nil
}

func salaryInRange(answer string, min, max *float64) bool {
	value, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	if err != nil {
		return false
	}
	if min != nil && value < *min {
		return false
	}
	if max != nil && value > *max {
		return false
	}
	return true
}

func decodeStringSet(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func containsAnswer(acceptable []string, answer string) bool {
	for _, candidate := range acceptable {
		if strings.EqualFold(strings.TrimSpace(candidate), strings.TrimSpace(answer)) {
			return true
		}
	}
	return false
}
