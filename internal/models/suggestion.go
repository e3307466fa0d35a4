package models

// SuggestionType categorizes what aspect of writing a suggestion targets.
type SuggestionType string

const (
	SuggestionSpelling   SuggestionType = "spelling"
	SuggestionGrammar    SuggestionType = "grammar"
	SuggestionClarity    SuggestionType = "clarity"
	SuggestionEngagement SuggestionType = "engagement"
	SuggestionTone       SuggestionType = "tone"
	SuggestionStructure  SuggestionType = "structure"
	SuggestionDepth      SuggestionType = "depth"
	SuggestionVocabulary SuggestionType = "vocabulary"
)

// SuggestionCategory groups suggestion types by how strongly they should be pushed.
type SuggestionCategory string

const (
	CategoryError       SuggestionCategory = "error"
	CategoryImprovement SuggestionCategory = "improvement"
	CategoryEnhancement SuggestionCategory = "enhancement"
)

// Severity is the priority of a suggestion.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SuggestionStatus is the user-facing lifecycle state of a suggestion.
type SuggestionStatus string

const (
	StatusPending  SuggestionStatus = "pending"
	StatusAccepted SuggestionStatus = "accepted"
	StatusRejected SuggestionStatus = "rejected"
)

// SuggestionModel is a single writing suggestion produced by model analysis.
// StartIndex/EndIndex reference the document content at creation time and may
// go stale after further edits; application relocates by original text.
type SuggestionModel struct {
	Base
	DocumentID    string             `json:"document_id"    gorm:"index;not null"`
	UserID        string             `json:"user_id"        gorm:"index;not null"`
	Type          SuggestionType     `json:"type"           gorm:"not null"`
	Category      SuggestionCategory `json:"category"       gorm:"not null"`
	Severity      Severity           `json:"severity"       gorm:"not null"`
	OriginalText  string             `json:"original_text"  gorm:"type:text"`
	SuggestedText string             `json:"suggested_text" gorm:"type:text"`
	Explanation   string             `json:"explanation"    gorm:"type:text"`
	Confidence    float64            `json:"confidence"`
	StartIndex    int                `json:"start_index"`
	EndIndex      int                `json:"end_index"`
	Status        SuggestionStatus   `json:"status"         gorm:"index;default:'pending'"`
	GrammarRule   string             `json:"grammar_rule,omitempty"`
}

func (SuggestionModel) TableName() string { return "suggestions" }

// IsCorrectness reports whether the suggestion points at an objective error.
// Correctness suggestions are never suppressed by modification tracking.
func (s SuggestionType) IsCorrectness() bool {
	return s == SuggestionGrammar || s == SuggestionSpelling
}
