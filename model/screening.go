package model

import (
	"time"

	"gorm.io/datatypes"
)

// Screening question types. salary_range questions are range-checked;
// every other type is matched against the stored acceptable answers.
const (
	QuestionTypeSalaryRange    = "salary_range"
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeYesNo          = "yes_no"
	QuestionTypeText           = "text"
)

// ScreeningQuestionEntity belongs to exactly one job. Questions with
// IsFilterCriteria set participate in the automatic pre-screening
// verdict; the rest are informational.
type ScreeningQuestionEntity struct {
	ID                int64          `gorm:"primaryKey;autoIncrement;column:id"`
	JobID             int64          `gorm:"column:job_id;index"`
	QuestionText      string         `gorm:"column:question_text;type:text"`
	QuestionType      string         `gorm:"column:question_type;type:varchar(30)"`
	AcceptableAnswers datatypes.JSON `gorm:"column:acceptable_answers"` // JSON string array, nullable
	Options           datatypes.JSON `gorm:"column:options"`            // presented choices, opaque to the engine
	MinSalaryRange    *float64       `gorm:"column:min_salary_range"`
	MaxSalaryRange    *float64       `gorm:"column:max_salary_range"`
	IsRequired        bool           `gorm:"column:is_required"`
	IsFilterCriteria  bool           `gorm:"column:is_filter_criteria"`
	CreatedAt         time.Time      `gorm:"column:created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at"`
}

func (ScreeningQuestionEntity) TableName() string {
	return "screening_questions"
}

// ScreeningAnswerEntity is the candidate's raw answer to one question,
// captured at submission time. Immutable after that.
type ScreeningAnswerEntity struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;column:id"`
	ApplicationID int64     `gorm:"column:application_id;index"`
	QuestionID    int64     `gorm:"column:question_id;index"`
	QuestionType  string    `gorm:"column:question_type;type:varchar(30)"`
	Answer        string    `gorm:"column:answer;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (ScreeningAnswerEntity) TableName() string {
	return "screening_answers"
}
