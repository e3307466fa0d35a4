package models

// AcademicLevel calibrates which suggestions surface and how hard they push.
type AcademicLevel string

const (
	LevelMiddleSchool AcademicLevel = "middle-school"
	LevelHighSchool   AcademicLevel = "high-school"
	LevelUndergrad    AcademicLevel = "undergrad"
	LevelGraduate     AcademicLevel = "graduate"
)

// RubricCriterion is one graded dimension of an assignment rubric.
type RubricCriterion struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

// RubricModel is a structured rubric extracted from free text by the model.
type RubricModel struct {
	Base
	DocumentID            string            `json:"document_id"            gorm:"index"`
	UserID                string            `json:"user_id"                gorm:"index;not null"`
	Title                 string            `json:"title"`
	AssignmentType        string            `json:"assignment_type"`
	AcademicLevel         AcademicLevel     `json:"academic_level"`
	ExtractedRequirements StringArray       `json:"extracted_requirements" gorm:"type:json"`
	Criteria              []RubricCriterion `json:"criteria"               gorm:"type:json;serializer:json"`
	RawText               string            `json:"raw_text"               gorm:"type:text"`
}

func (RubricModel) TableName() string { return "rubrics" }

// CriterionResult is the model's judgement of one rubric criterion.
type CriterionResult struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"` // [0,1]
	Feedback string  `json:"feedback"`
}

// RubricFeedbackModel persists the outcome of a rubric analysis run.
type RubricFeedbackModel struct {
	Base
	RubricID        string            `json:"rubric_id"        gorm:"index;not null"`
	DocumentID      string            `json:"document_id"      gorm:"index;not null"`
	UserID          string            `json:"user_id"          gorm:"index;not null"`
	OverallScore    float64           `json:"overall_score"` // [0,1]
	OverallFeedback string            `json:"overall_feedback" gorm:"type:text"`
	CriteriaResults []CriterionResult `json:"criteria_results" gorm:"type:json;serializer:json"`
}

func (RubricFeedbackModel) TableName() string { return "rubric_feedbacks" }
