package analysis

import (
	"strings"

	"github.com/quillmind/core/internal/models"
)

const defaultConfidence = 0.85

// rawSuggestion mirrors whatever shape the model managed to produce.
// Everything is optional; normalization fills the gaps.
type rawSuggestion struct {
	Type          string   `json:"type"`
	Category      string   `json:"category"`
	Severity      string   `json:"severity"`
	OriginalText  string   `json:"originalText"`
	SuggestedText string   `json:"suggestedText"`
	Explanation   string   `json:"explanation"`
	Confidence    *float64 `json:"confidence"`
	StartIndex    *int     `json:"startIndex"`
	EndIndex      *int     `json:"endIndex"`
	GrammarRule   string   `json:"grammarRule"`
}

// suggestionsEnvelope is the JSON object the model is asked to return.
type suggestionsEnvelope struct {
	Suggestions []rawSuggestion `json:"suggestions"`
}

var validTypes = map[models.SuggestionType]bool{
	models.SuggestionSpelling:   true,
	models.SuggestionGrammar:    true,
	models.SuggestionClarity:    true,
	models.SuggestionEngagement: true,
	models.SuggestionTone:       true,
	models.SuggestionStructure:  true,
	models.SuggestionDepth:      true,
	models.SuggestionVocabulary: true,
}

// normalizeSuggestion converts one raw model item into a fully populated
// record. Missing fields get safe defaults instead of rejecting the batch;
// the model's output varies too much for strict validation to survive
// production. Malformed indices are clamped into [0, len(content)] and
// relocated from the original text where possible.
func normalizeSuggestion(raw rawSuggestion, content, documentID, userID string) models.SuggestionModel {
	s := models.SuggestionModel{
		DocumentID:    documentID,
		UserID:        userID,
		Type:          models.SuggestionType(strings.ToLower(strings.TrimSpace(raw.Type))),
		Category:      models.SuggestionCategory(strings.ToLower(strings.TrimSpace(raw.Category))),
		Severity:      models.Severity(strings.ToLower(strings.TrimSpace(raw.Severity))),
		OriginalText:  raw.OriginalText,
		SuggestedText: raw.SuggestedText,
		Explanation:   strings.TrimSpace(raw.Explanation),
		Confidence:    defaultConfidence,
		Status:        models.StatusPending,
		GrammarRule:   strings.TrimSpace(raw.GrammarRule),
	}

	if !validTypes[s.Type] {
		s.Type = models.SuggestionClarity
	}
	switch s.Category {
	case models.CategoryError, models.CategoryImprovement, models.CategoryEnhancement:
	default:
		if s.Type.IsCorrectness() {
			s.Category = models.CategoryError
		} else {
			s.Category = models.CategoryImprovement
		}
	}
	switch s.Severity {
	case models.SeverityLow, models.SeverityMedium, models.SeverityHigh:
	default:
		s.Severity = models.SeverityMedium
	}
	if s.Explanation == "" {
		s.Explanation = "Suggested improvement."
	}
	if raw.Confidence != nil && *raw.Confidence > 0 && *raw.Confidence <= 1 {
		s.Confidence = *raw.Confidence
	}

	start, end := 0, len(content)
	if raw.StartIndex != nil {
		start = *raw.StartIndex
	}
	if raw.EndIndex != nil {
		end = *raw.EndIndex
	}
	// Prefer offsets derived from the original text over what the model claims.
	if s.OriginalText != "" {
		if idx := strings.Index(content, s.OriginalText); idx >= 0 {
			start = idx
			end = idx + len(s.OriginalText)
		}
	}
	s.StartIndex, s.EndIndex = clampSpan(start, end, len(content))
	return s
}

func clampSpan(start, end, max int) (int, int) {
	if start < 0 {
		start = 0
	}
	if start > max {
		start = max
	}
	if end < start {
		end = start
	}
	if end > max {
		end = max
	}
	return start, end
}

// normalizeBatch converts the envelope into persisted-ready records.
func normalizeBatch(env suggestionsEnvelope, content, documentID, userID string) []models.SuggestionModel {
	out := make([]models.SuggestionModel, 0, len(env.Suggestions))
	for _, raw := range env.Suggestions {
		out = append(out, normalizeSuggestion(raw, content, documentID, userID))
	}
	return out
}
