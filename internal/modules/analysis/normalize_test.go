package analysis

import (
	"testing"

	"github.com/quillmind/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSuggestionDefaults(t *testing.T) {
	s := normalizeSuggestion(rawSuggestion{}, "Some content here.", "doc-1", "user-1")

	assert.Equal(t, models.SuggestionClarity, s.Type)
	assert.Equal(t, models.CategoryImprovement, s.Category)
	assert.Equal(t, models.SeverityMedium, s.Severity)
	assert.Equal(t, "Suggested improvement.", s.Explanation)
	assert.Equal(t, defaultConfidence, s.Confidence)
	assert.Equal(t, models.StatusPending, s.Status)
	assert.Equal(t, "doc-1", s.DocumentID)
	assert.Equal(t, "user-1", s.UserID)
}

func TestNormalizeSuggestionCorrectnessCategory(t *testing.T) {
	s := normalizeSuggestion(rawSuggestion{Type: "Spelling"}, "content", "", "")
	assert.Equal(t, models.SuggestionSpelling, s.Type)
	assert.Equal(t, models.CategoryError, s.Category)
}

func TestNormalizeSuggestionRelocatesIndices(t *testing.T) {
	content := "Hello wrold. It is a nice day."
	bogusStart, bogusEnd := 2, 4
	s := normalizeSuggestion(rawSuggestion{
		Type:          "spelling",
		OriginalText:  "wrold",
		SuggestedText: "world",
		StartIndex:    &bogusStart,
		EndIndex:      &bogusEnd,
	}, content, "", "")

	assert.Equal(t, 6, s.StartIndex)
	assert.Equal(t, 11, s.EndIndex)
	assert.Equal(t, "wrold", content[s.StartIndex:s.EndIndex])
}

func TestNormalizeSuggestionClampsIndices(t *testing.T) {
	start, end := -5, 999
	s := normalizeSuggestion(rawSuggestion{
		Type:       "grammar",
		StartIndex: &start,
		EndIndex:   &end,
	}, "short", "", "")

	assert.Equal(t, 0, s.StartIndex)
	assert.Equal(t, 5, s.EndIndex)
}

func TestNormalizeSuggestionConfidenceBounds(t *testing.T) {
	good := 0.42
	s := normalizeSuggestion(rawSuggestion{Confidence: &good}, "x", "", "")
	assert.Equal(t, 0.42, s.Confidence)

	bad := 1.7
	s = normalizeSuggestion(rawSuggestion{Confidence: &bad}, "x", "", "")
	assert.Equal(t, defaultConfidence, s.Confidence)

	zero := 0.0
	s = normalizeSuggestion(rawSuggestion{Confidence: &zero}, "x", "", "")
	assert.Equal(t, defaultConfidence, s.Confidence)
}

func TestNormalizeBatch(t *testing.T) {
	env := suggestionsEnvelope{Suggestions: []rawSuggestion{
		{Type: "grammar", OriginalText: "is"},
		{Type: "nonsense"},
	}}

	out := normalizeBatch(env, "This is text.", "doc-1", "user-1")
	assert.Len(t, out, 2)
	assert.Equal(t, models.SuggestionGrammar, out[0].Type)
	assert.Equal(t, models.SuggestionClarity, out[1].Type)
}

func TestUnmarshalModelJSONTolerant(t *testing.T) {
	var env suggestionsEnvelope

	plain := `{"suggestions":[{"type":"grammar"}]}`
	assert.NoError(t, DecodeModelJSON(plain, &env))
	assert.Len(t, env.Suggestions, 1)

	fenced := "```json\n" + plain + "\n```"
	env = suggestionsEnvelope{}
	assert.NoError(t, DecodeModelJSON(fenced, &env))
	assert.Len(t, env.Suggestions, 1)

	chatty := "Sure! Here are the suggestions:\n" + plain + "\nLet me know if you need more."
	env = suggestionsEnvelope{}
	assert.NoError(t, DecodeModelJSON(chatty, &env))
	assert.Len(t, env.Suggestions, 1)

	assert.Error(t, DecodeModelJSON("not json at all", &env))
}
