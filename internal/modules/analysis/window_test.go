package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitParagraphs(t *testing.T) {
	paras := SplitParagraphs("First paragraph.\n\nSecond paragraph.\r\n\r\nThird.")
	require.Len(t, paras, 3)
	assert.Equal(t, "First paragraph.", paras[0])
	assert.Equal(t, "Third.", paras[2])

	assert.Empty(t, SplitParagraphs(""))
	assert.Empty(t, SplitParagraphs("\n\n  \n\n"))
}

func TestBuildContextWindowRadius(t *testing.T) {
	paragraphs := []string{"p0", "p1", "p2", "p3", "p4"}

	windows := BuildContextWindow(paragraphs, []int{2}, 1)
	require.Len(t, windows, 3)
	assert.Equal(t, []Window{
		{Index: 1, Text: "p1", IsChanged: false},
		{Index: 2, Text: "p2", IsChanged: true},
		{Index: 3, Text: "p3", IsChanged: false},
	}, windows)
}

func TestBuildContextWindowMergesOverlaps(t *testing.T) {
	paragraphs := []string{"p0", "p1", "p2", "p3", "p4"}

	// Changes at 1 and 3 with radius 1 cover 0..4 with no duplicates.
	windows := BuildContextWindow(paragraphs, []int{1, 3}, 1)
	require.Len(t, windows, 5)
	for i, w := range windows {
		assert.Equal(t, i, w.Index)
	}
	assert.True(t, windows[1].IsChanged)
	assert.True(t, windows[3].IsChanged)
	assert.False(t, windows[2].IsChanged)
}

func TestBuildContextWindowEdges(t *testing.T) {
	paragraphs := []string{"p0", "p1"}

	windows := BuildContextWindow(paragraphs, []int{0}, 2)
	require.Len(t, windows, 2)

	assert.Nil(t, BuildContextWindow(nil, []int{0}, 1))
	assert.Nil(t, BuildContextWindow(paragraphs, nil, 1))
	// Out-of-range indices are ignored.
	assert.Empty(t, BuildContextWindow(paragraphs, []int{7}, 1))
}

func TestExceedsChangeThreshold(t *testing.T) {
	// 3 of 5 is exactly 60%: still differential.
	assert.False(t, ExceedsChangeThreshold(3, 5))
	assert.True(t, ExceedsChangeThreshold(4, 5))
	assert.True(t, ExceedsChangeThreshold(2, 3))
	assert.False(t, ExceedsChangeThreshold(0, 10))
	assert.True(t, ExceedsChangeThreshold(0, 0))
}
