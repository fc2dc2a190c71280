package service

import (
	"testing"

	"placement_engine_go/model"

	"gorm.io/datatypes"
)

func floatPtr(v float64) *float64 { return &v }

func salaryQuestion(min, max *float64) *model.ScreeningQuestionEntity {
	return &model.ScreeningQuestionEntity{
		QuestionType:     model.QuestionTypeSalaryRange,
		MinSalaryRange:   min,
		MaxSalaryRange:   max,
		IsFilterCriteria: true,
	}
}

func choiceQuestion(acceptable string) *model.ScreeningQuestionEntity {
	q := &model.ScreeningQuestionEntity{
		QuestionType:     model.QuestionTypeMultipleChoice,
		IsFilterCriteria: true,
	}
	if acceptable != "" {
		q.AcceptableAnswers = datatypes.JSON([]byte(acceptable))
	}
	return q
}

func answer(questionType, value string) *model.ScreeningAnswerEntity {
	return &model.ScreeningAnswerEntity{QuestionType: questionType, Answer: value}
}

func TestSalaryBoundsInclusive(t *testing.T) {
	e := newEngine(t)
	questions := []*model.ScreeningQuestionEntity{salaryQuestion(floatPtr(50000), floatPtr(80000))}

	cases := []struct {
		answer string
		want   bool
	}{
		{"50000", true},  // exactly min
		{"80000", true},  // exactly max
		{"65000", true},
		{"49999", false}, // one below min
		{"80001", false}, // one above max
	}
	for _, c := range cases {
		got := e.screening.MeetsStandards(questions, []*model.ScreeningAnswerEntity{
			answer(model.QuestionTypeSalaryRange, c.answer),
		})
		if got != c.want {
			t.Errorf("answer %s: got %v, want %v", c.answer, got, c.want)
		}
	}
}

func TestSalaryUnboundedSides(t *testing.T) {
	e := newEngine(t)

	noMin := []*model.ScreeningQuestionEntity{salaryQuestion(nil, floatPtr(80000))}
	if !e.screening.MeetsStandards(noMin, []*model.ScreeningAnswerEntity{answer(model.QuestionTypeSalaryRange, "1")}) {
		t.Error("absent min bound should be unbounded below")
	}
	noMax := []*model.ScreeningQuestionEntity{salaryQuestion(floatPtr(50000), nil)}
	if !e.screening.MeetsStandards(noMax, []*model.ScreeningAnswerEntity{answer(model.QuestionTypeSalaryRange, "900000")}) {
		t.Error("absent max bound should be unbounded above")
	}
}

func TestSalaryFailsClosedOnNonNumeric(t *testing.T) {
	e := newEngine(t)
	questions := []*model.ScreeningQuestionEntity{salaryQuestion(floatPtr(50000), floatPtr(80000))}
	if e.screening.MeetsStandards(questions, []*model.ScreeningAnswerEntity{
		answer(model.QuestionTypeSalaryRange, "negotiable"),
	}) {
		t.Error("non-numeric salary answer must fail closed")
	}
}

func TestMissingAnswerFails(t *testing.T) {
	e := newEngine(t)
	questions := []*model.ScreeningQuestionEntity{choiceQuestion(`["yes"]`)}
	if e.screening.MeetsStandards(questions, nil) {
		t.Error("missing answer for a filter criterion must fail")
	}
}

func TestAcceptableAnswerMatching(t *testing.T) {
	e := newEngine(t)
	questions := []*model.ScreeningQuestionEntity{choiceQuestion(`["Yes","Maybe"]`)}

	if !e.screening.MeetsStandards(questions, []*model.ScreeningAnswerEntity{
		answer(model.QuestionTypeMultipleChoice, "yes"),
	}) {
		t.Error("answer in acceptable set should pass")
	}
	if e.screening.MeetsStandards(questions, []*model.ScreeningAnswerEntity{
		answer(model.QuestionTypeMultipleChoice, "No"),
	}) {
		t.Error("answer outside acceptable set should fail")
	}
}

func TestEmptyAcceptableSetIsUnconstrained(t *testing.T) {
	e := newEngine(t)
	questions := []*model.ScreeningQuestionEntity{choiceQuestion("")}
	if !e.screening.MeetsStandards(questions, []*model.ScreeningAnswerEntity{
		answer(model.QuestionTypeMultipleChoice, "anything"),
	}) {
		t.Error("criterion without acceptable answers should auto-pass")
	}
}

func TestMalformedAcceptableSetFailsClosed(t *testing.T) {
	e := newEngine(t)
	questions := []*model.ScreeningQuestionEntity{choiceQuestion(`{not json`)}
	if e.screening.MeetsStandards(questions, []*model.ScreeningAnswerEntity{
		answer(model.QuestionTypeMultipleChoice, "anything"),
	}) {
		t.Error("malformed acceptable set must fail closed")
	}
}

func TestAnswerLookupByTypeLastWins(t *testing.T) {
	// Two filter questions of the same type collapse to the
	// later-submitted answer. Compatibility behavior; see DESIGN.md.
	e := newEngine(t)
	questions := []*model.ScreeningQuestionEntity{choiceQuestion(`["blue"]`)}
	answers := []*model.ScreeningAnswerEntity{
		answer(model.QuestionTypeMultipleChoice, "red"),
		answer(model.QuestionTypeMultipleChoice, "blue"),
	}
	if !e.screening.MeetsStandards(questions, answers) {
		t.Error("later answer of the same type should be the one considered")
	}
}

func TestPartitionApplications(t *testing.T) {
	e := newEngine(t)
	owner := model.Principal{Type: model.PrincipalCompany, ID: 7}
	job := e.createJob(t, owner, "Backend Engineer")
	job.FilterPreScreening = true
	if err := e.db.Save(job).Error; err != nil {
		t.Fatalf("enable filtering: %v", err)
	}

	question := salaryQuestion(floatPtr(40000), floatPtr(60000))
	question.JobID = job.ID
	if err := e.db.Create(question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}

	passing := e.createApplication(t, job.ID, 100)
	failing := e.createApplication(t, job.ID, 101)
	for appID, salary := range map[int64]string{passing.ID: "55000", failing.ID: "90000"} {
		a := &model.ScreeningAnswerEntity{
			ApplicationID: appID,
			QuestionID:    question.ID,
			QuestionType:  model.QuestionTypeSalaryRange,
			Answer:        salary,
		}
		if err := e.db.Create(a).Error; err != nil {
			t.Fatalf("create answer: %v", err)
		}
	}

	result, err := e.screening.PartitionApplications(job.ID)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	if len(result.MeetsStandards) != 1 || result.MeetsStandards[0].ID != passing.ID {
		t.Errorf("expected application %d to meet standards, got %+v", passing.ID, result.MeetsStandards)
	}
	if len(result.BelowStandards) != 1 || result.BelowStandards[0].ID != failing.ID {
		t.Errorf("expected application %d below standards, got %+v", failing.ID, result.BelowStandards)
	}

	// The filter is a read-only query: canonical statuses untouched.
	if got := e.applicationStatus(t, failing.ID); got != model.ApplicationStatusSubmitted {
		t.Errorf("partition mutated application status to %s", got)
	}
}
