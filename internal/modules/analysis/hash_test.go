package analysis

import (
	"testing"

	"github.com/quillmind/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestHashContentDeterministic(t *testing.T) {
	goals := &WritingGoals{AcademicLevel: models.LevelHighSchool, AssignmentType: "essay"}

	a := HashContent("The quick brown fox.", goals, nil, "full")
	b := HashContent("The quick brown fox.", goals, nil, "full")
	assert.Equal(t, a, b)
	assert.Len(t, a, 8)
}

func TestHashContentChangesWithInputs(t *testing.T) {
	goals := &WritingGoals{AcademicLevel: models.LevelHighSchool}
	base := HashContent("The quick brown fox.", goals, nil, "full")

	assert.NotEqual(t, base, HashContent("The quick brown fox!", goals, nil, "full"))
	assert.NotEqual(t, base, HashContent("The quick brown fox.", &WritingGoals{AcademicLevel: models.LevelGraduate}, nil, "full"))
	assert.NotEqual(t, base, HashContent("The quick brown fox.", goals, nil, "differential"))
}

func TestHashContentAcceptedSuggestionsChangeKey(t *testing.T) {
	goals := &WritingGoals{AcademicLevel: models.LevelHighSchool}
	before := HashContent("Hello wrold.", goals, nil, "full")
	after := HashContent("Hello wrold.", goals, []AcceptedSuggestion{
		{OriginalText: "wrold", SuggestedText: "world", Type: models.SuggestionSpelling},
	}, "full")

	assert.NotEqual(t, before, after)
}

func TestHashContentEmpty(t *testing.T) {
	assert.Equal(t, emptyContentHash, HashContent("", nil, nil, "full"))
}

func TestAcceptedDigestKeepsLastFive(t *testing.T) {
	accepted := make([]AcceptedSuggestion, 7)
	for i := range accepted {
		accepted[i] = AcceptedSuggestion{OriginalText: string(rune('a' + i))}
	}
	assert.Equal(t, acceptedDigest(accepted[2:]), acceptedDigest(accepted))
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, 25, EstimateTokens(string(make([]byte, 100))))
}
