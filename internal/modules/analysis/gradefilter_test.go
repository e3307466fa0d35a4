package analysis

import (
	"testing"

	"github.com/quillmind/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sug(t models.SuggestionType, sev models.Severity, explanation string) models.SuggestionModel {
	return models.SuggestionModel{
		Type:        t,
		Severity:    sev,
		Explanation: explanation,
		Confidence:  0.9,
	}
}

func TestFilterByGradeLevelMiddleSchoolOrdering(t *testing.T) {
	input := []models.SuggestionModel{
		sug(models.SuggestionTone, models.SeverityHigh, "Too casual for the assignment."),
		sug(models.SuggestionClarity, models.SeverityMedium, "This sentence is hard to follow."),
		sug(models.SuggestionSpelling, models.SeverityLow, "Misspelled word."),
		sug(models.SuggestionGrammar, models.SeverityMedium, "Subject-verb agreement."),
	}

	out := FilterByGradeLevel(input, models.LevelMiddleSchool)
	require.Len(t, out, 4)

	// Mechanics surface first, then clarity, then everything else.
	assert.Equal(t, models.SuggestionGrammar, out[0].Type)
	assert.Equal(t, models.SuggestionSpelling, out[1].Type)
	assert.Equal(t, models.SuggestionClarity, out[2].Type)
	assert.Equal(t, models.SuggestionTone, out[3].Type)

	// Mechanics are promoted to high severity at this level.
	assert.Equal(t, models.SeverityHigh, out[0].Severity)
	assert.Equal(t, models.SeverityHigh, out[1].Severity)
}

func TestFilterByGradeLevelGatesAdvancedTypes(t *testing.T) {
	input := []models.SuggestionModel{
		sug(models.SuggestionDepth, models.SeverityMedium, "Consider elaborating here."),
		sug(models.SuggestionDepth, models.SeverityMedium, "Add evidence to support this argument."),
		sug(models.SuggestionVocabulary, models.SeverityLow, "Try a different word."),
	}

	out := FilterByGradeLevel(input, models.LevelMiddleSchool)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Explanation, "evidence")
}

func TestFilterByGradeLevelNeverDropsHighSeverity(t *testing.T) {
	input := []models.SuggestionModel{
		sug(models.SuggestionDepth, models.SeverityHigh, "No keyword match at all."),
		sug(models.SuggestionTone, models.SeverityHigh, "Also no keyword match."),
	}

	out := FilterByGradeLevel(input, models.LevelMiddleSchool)
	assert.Len(t, out, 2)
}

func TestFilterByGradeLevelUndergradDemotesMechanics(t *testing.T) {
	input := []models.SuggestionModel{
		sug(models.SuggestionGrammar, models.SeverityLow, "Minor agreement issue."),
		sug(models.SuggestionGrammar, models.SeverityHigh, "Sentence fragment."),
	}

	out := FilterByGradeLevel(input, models.LevelUndergrad)
	require.Len(t, out, 2)

	// High severity is never downgraded; the rest is remapped.
	assert.Equal(t, models.SeverityHigh, out[0].Severity)
	assert.Equal(t, models.SeverityMedium, out[1].Severity)
}

func TestFilterByGradeLevelUnknownLevelPassthrough(t *testing.T) {
	input := []models.SuggestionModel{
		sug(models.SuggestionDepth, models.SeverityLow, "whatever"),
	}

	out := FilterByGradeLevel(input, models.AcademicLevel("kindergarten"))
	assert.Equal(t, input, out)
}
