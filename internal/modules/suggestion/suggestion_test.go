package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelocateSpanExactMatch(t *testing.T) {
	content := "The cat sat."
	start, end, relocated, found := relocateSpan(content, "cat", 4, 7)
	require.True(t, found)
	assert.False(t, relocated)
	assert.Equal(t, 4, start)
	assert.Equal(t, 7, end)
}

func TestRelocateSpanShiftedContent(t *testing.T) {
	// The document grew a prefix after the suggestion was produced.
	content := "Well, the cat sat."
	start, end, relocated, found := relocateSpan(content, "cat", 4, 7)
	require.True(t, found)
	assert.True(t, relocated)
	assert.Equal(t, 10, start)
	assert.Equal(t, 13, end)
	assert.Equal(t, "cat", content[start:end])
}

func TestRelocateSpanTextGone(t *testing.T) {
	content := "The dog sat."
	_, _, _, found := relocateSpan(content, "cat", 4, 7)
	assert.False(t, found)
}

func TestRelocateSpanOutOfRangeIndices(t *testing.T) {
	content := "cat"
	start, end, relocated, found := relocateSpan(content, "cat", 40, 43)
	require.True(t, found)
	assert.True(t, relocated)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}

func TestRelocateSpanEmptyOriginal(t *testing.T) {
	_, _, _, found := relocateSpan("anything", "", 0, 0)
	assert.False(t, found)
}

func TestApplySpan(t *testing.T) {
	content := "Well, the cat sat."
	out := applySpan(content, "kitten", 10, 13)
	assert.Equal(t, "Well, the kitten sat.", out)

	assert.Equal(t, "xy", applySpan("xaby", "", 1, 3))
	assert.Equal(t, "prefix-body", applySpan("body", "prefix-", 0, 0))
}
