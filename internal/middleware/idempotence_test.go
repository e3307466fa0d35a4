package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldSkipIdempotenceExemptsAnalysisSubmissions(t *testing.T) {
	assert.True(t, shouldSkipIdempotence(http.MethodPost, "/api/v2/analysis/suggestions"))
	assert.True(t, shouldSkipIdempotence(http.MethodPost, "/api/v2/analysis/suggestions/"))
	assert.True(t, shouldSkipIdempotence(http.MethodPost, "/API/v2/Analysis/Suggestions"))
}

func TestShouldSkipIdempotenceGuardsEverythingElse(t *testing.T) {
	assert.False(t, shouldSkipIdempotence(http.MethodPost, "/api/v2/rubrics/analyze"))
	assert.False(t, shouldSkipIdempotence(http.MethodPost, "/api/v2/documents"))
	assert.False(t, shouldSkipIdempotence(http.MethodDelete, "/api/v2/analysis/suggestions"))
}
