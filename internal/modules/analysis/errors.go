package analysis

import "errors"

var (
	// ErrInvalidRequest means a required field (content, userId, documentId) is missing.
	ErrInvalidRequest = errors.New("invalid analysis request")
	// ErrRateLimited means the per-user sliding-window quota is exhausted.
	ErrRateLimited = errors.New("analysis rate limit exceeded")
	// ErrModelCallFailed means the upstream provider call itself failed.
	ErrModelCallFailed = errors.New("model call failed")
	// ErrAnalysisFailed means the model response could not be parsed, even
	// after the single constrained retry.
	ErrAnalysisFailed = errors.New("analysis failed: unparseable model response")
)
