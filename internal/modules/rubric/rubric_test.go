package rubric

import (
	"testing"

	"github.com/quillmind/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCriteriaRebalancesWeights(t *testing.T) {
	out := normalizeCriteria([]models.RubricCriterion{
		{Name: "Thesis", Weight: 2},
		{Name: "Evidence", Weight: 2},
	})
	require.Len(t, out, 2)
	assert.InDelta(t, 0.5, out[0].Weight, 1e-9)
	assert.InDelta(t, 0.5, out[1].Weight, 1e-9)
}

func TestNormalizeCriteriaEqualWeightsWhenMissing(t *testing.T) {
	out := normalizeCriteria([]models.RubricCriterion{
		{Name: "Thesis"},
		{Name: "Evidence"},
		{Name: "Style"},
		{Name: ""},
	})
	require.Len(t, out, 3)
	for _, c := range out {
		assert.InDelta(t, 1.0/3.0, c.Weight, 1e-9)
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, clampScore(-0.5))
	assert.Equal(t, 1.0, clampScore(1.5))
	assert.Equal(t, 0.7, clampScore(0.7))
}
