package analysis

import (
	"testing"

	"github.com/quillmind/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangedParagraphIndices(t *testing.T) {
	oldContent := "Intro paragraph.\n\nBody paragraph.\n\nConclusion."
	newContent := "Intro paragraph.\n\nBody paragraph, revised.\n\nConclusion."

	assert.Equal(t, []int{1}, changedParagraphIndices(oldContent, newContent))
	assert.Empty(t, changedParagraphIndices(oldContent, oldContent))
}

func TestChangedParagraphIndicesNewParagraphs(t *testing.T) {
	oldContent := "Intro."
	newContent := "Intro.\n\nNew body.\n\nNew conclusion."

	assert.Equal(t, []int{1, 2}, changedParagraphIndices(oldContent, newContent))
}

func TestSplitParagraphSpansOffsets(t *testing.T) {
	content := "First.\n\nSecond one."
	spans := splitParagraphSpans(content)
	require.Len(t, spans, 2)

	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, 6, spans[0].End)
	assert.Equal(t, "First.", content[spans[0].Start:spans[0].End])

	assert.Equal(t, 8, spans[1].Start)
	assert.Equal(t, "Second one.", content[spans[1].Start:spans[1].End])
	assert.Equal(t, 1, spans[1].Index)
}

func TestParagraphIndexAt(t *testing.T) {
	content := "First.\n\nSecond one.\n\nThird."

	assert.Equal(t, 0, paragraphIndexAt(content, 3))
	assert.Equal(t, 1, paragraphIndexAt(content, 10))
	assert.Equal(t, 2, paragraphIndexAt(content, len(content)-1))
	assert.Equal(t, 2, paragraphIndexAt(content, len(content)+40))
	assert.Equal(t, 0, paragraphIndexAt("", 5))
}

func TestRewrittenParagraphAccumulatesCount(t *testing.T) {
	first := "Intro stays.\n\nThe body paragraph gets reworked a little."
	second := "Intro stays the same.\n\nThe body paragraph gets reworked quite a bit more."

	firstSpans := splitParagraphSpans(first)
	secondSpans := splitParagraphSpans(second)
	require.Len(t, firstSpans, 2)
	require.Len(t, secondSpans, 2)
	// The rewritten paragraph occupies a different byte span in each draft.
	assert.NotEqual(t, firstSpans[1], secondSpans[1])

	records := []models.ChangeRecordModel{{
		ParagraphIndex:    firstSpans[1].Index,
		StartIndex:        firstSpans[1].Start,
		EndIndex:          firstSpans[1].End,
		ChangeType:        models.ChangeClarity,
		ModificationCount: 1,
	}}

	// The second rewrite must land on the same record despite the shifted span.
	rec := matchChangeRecord(records, secondSpans[1].Index, models.ChangeClarity)
	require.NotNil(t, rec)
	rec.ModificationCount++
	rec.StartIndex = secondSpans[1].Start
	rec.EndIndex = secondSpans[1].End

	areas := []ModifiedArea{{
		StartIndex:        rec.StartIndex,
		EndIndex:          rec.EndIndex,
		Type:              rec.ChangeType,
		ModificationCount: rec.ModificationCount,
	}}
	assert.True(t, ShouldExcludeArea(secondSpans[1].Start+2, secondSpans[1].End-2, models.SuggestionClarity, areas))
}

func TestMatchChangeRecordKeyedByParagraphAndType(t *testing.T) {
	records := []models.ChangeRecordModel{
		{ParagraphIndex: 1, ChangeType: models.ChangeClarity, ModificationCount: 1},
	}

	assert.Nil(t, matchChangeRecord(records, 0, models.ChangeClarity))
	assert.Nil(t, matchChangeRecord(records, 1, models.ChangeEngagement))
	assert.NotNil(t, matchChangeRecord(records, 1, models.ChangeClarity))
}

func TestShouldExcludeAreaThresholds(t *testing.T) {
	areas := []ModifiedArea{
		{StartIndex: 10, EndIndex: 50, Type: models.ChangeClarity, ModificationCount: 2},
	}

	// Clarity gives up after two rewrites of the same span.
	assert.True(t, ShouldExcludeArea(20, 30, models.SuggestionClarity, areas))

	once := []ModifiedArea{
		{StartIndex: 10, EndIndex: 50, Type: models.ChangeClarity, ModificationCount: 1},
	}
	assert.False(t, ShouldExcludeArea(20, 30, models.SuggestionClarity, once))

	// Engagement gives up after one.
	assert.True(t, ShouldExcludeArea(20, 30, models.SuggestionEngagement, once))
}

func TestShouldExcludeAreaNeverDropsCorrectness(t *testing.T) {
	areas := []ModifiedArea{
		{StartIndex: 0, EndIndex: 100, Type: models.ChangeClarity, ModificationCount: 99},
	}

	assert.False(t, ShouldExcludeArea(10, 20, models.SuggestionGrammar, areas))
	assert.False(t, ShouldExcludeArea(10, 20, models.SuggestionSpelling, areas))
}

func TestShouldExcludeAreaOverlap(t *testing.T) {
	areas := []ModifiedArea{
		{StartIndex: 10, EndIndex: 20, Type: models.ChangeClarity, ModificationCount: 5},
	}

	// Touching but not overlapping spans are kept.
	assert.False(t, ShouldExcludeArea(20, 30, models.SuggestionClarity, areas))
	assert.False(t, ShouldExcludeArea(0, 10, models.SuggestionClarity, areas))
	assert.True(t, ShouldExcludeArea(19, 21, models.SuggestionClarity, areas))
}

func TestShouldExcludeAreaOverrideThreshold(t *testing.T) {
	areas := []ModifiedArea{
		{StartIndex: 10, EndIndex: 50, Type: models.ChangeClarity, ModificationCount: 3},
	}

	assert.True(t, ShouldExcludeArea(20, 30, models.SuggestionTone, areas, 3))
	assert.False(t, ShouldExcludeArea(20, 30, models.SuggestionTone, areas, 4))
}
