package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/quillmind/core/internal/models"
)

// AnalysisType selects how much of the document is sent to the model.
type AnalysisType string

const (
	AnalysisFull         AnalysisType = "full"
	AnalysisDifferential AnalysisType = "differential"
)

// WritingGoals is the immutable per-request analysis configuration.
type WritingGoals struct {
	AcademicLevel      models.AcademicLevel `json:"academicLevel"`
	AssignmentType     string               `json:"assignmentType"`
	GrammarStrictness  string               `json:"grammarStrictness,omitempty"`
	CustomInstructions string               `json:"customInstructions,omitempty"`
}

// AcceptedSuggestion is the part of an accepted suggestion that matters for
// cache keying and do-not-re-suggest prompting.
type AcceptedSuggestion struct {
	OriginalText  string                `json:"originalText"`
	SuggestedText string                `json:"suggestedText"`
	Type          models.SuggestionType `json:"type"`
}

// ModifiedArea is a text span whose suggestion-driven edits are being tracked.
type ModifiedArea struct {
	StartIndex        int               `json:"startIndex"`
	EndIndex          int               `json:"endIndex"`
	Type              models.ChangeType `json:"type"`
	ModificationCount int               `json:"modificationCount"`
}

// Window is one run of paragraphs included in a differential context window.
type Window struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	IsChanged bool   `json:"isChanged"`
}

// AnalyzeRequest is the input of one orchestrated suggestion request.
type AnalyzeRequest struct {
	Content             string               `json:"content"`
	DocumentID          string               `json:"documentId"`
	UserID              string               `json:"userId"`
	Goals               *WritingGoals        `json:"writingGoals,omitempty"`
	AnalysisType        AnalysisType         `json:"analysisType,omitempty"`
	PreviousContent     string               `json:"previousContent,omitempty"`
	AcceptedSuggestions []AcceptedSuggestion `json:"acceptedSuggestions,omitempty"`
	BypassCache         bool                 `json:"bypassCache,omitempty"`
	ContextRadius       int                  `json:"contextRadius,omitempty"`
}

// AnalyzeMetadata is telemetry returned with every analysis response.
type AnalyzeMetadata struct {
	Cached         bool         `json:"cached"`
	TokenCount     int          `json:"tokenCount"`
	ProcessingTime int64        `json:"processingTime"` // milliseconds
	CacheKey       string       `json:"cacheKey"`
	AnalysisType   AnalysisType `json:"analysisType"`
}

// AnalyzeResult is the output of one orchestrated suggestion request.
type AnalyzeResult struct {
	Suggestions []models.SuggestionModel `json:"suggestions"`
	Metadata    AnalyzeMetadata          `json:"metadata"`
	Message     string                   `json:"message"`
}

// CacheMetadata is the bookkeeping stored next to a cached analysis.
type CacheMetadata struct {
	TokenCount     int    `json:"tokenCount"`
	ContextType    string `json:"contextType"`
	ParagraphCount int    `json:"paragraphCount"`
	DocumentID     string `json:"documentId,omitempty"`
}

// CacheEntry is one cached analysis, stored as JSON in Redis.
type CacheEntry struct {
	ID             string          `json:"id"` // userId_contentHash
	ContentHash    string          `json:"contentHash"`
	Analysis       json.RawMessage `json:"analysis"`
	Metadata       CacheMetadata   `json:"metadata"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastAccessedAt time.Time       `json:"lastAccessedAt"`
	AccessCount    int             `json:"accessCount"`
	ExpiresAt      time.Time       `json:"expiresAt"`
}

// CacheHit is what Get returns on a hit: payload plus enriched metadata.
type CacheHit struct {
	Analysis json.RawMessage `json:"analysis"`
	Metadata CacheMetadata   `json:"metadata"`
	CacheHit bool            `json:"cacheHit"`
	CacheAge time.Duration   `json:"cacheAge"`
}

// CompletionRequest is a single structured request to an LLM provider.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// ModelCaller abstracts the LLM completion provider so the orchestrator can be
// tested without a network.
type ModelCaller interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
