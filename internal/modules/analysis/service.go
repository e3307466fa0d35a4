package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quillmind/core/internal/models"
	"github.com/quillmind/core/internal/pkg/ratelimit"
	"go.uber.org/zap"
)

// Service orchestrates one suggestion request end to end: rate limiting,
// cache lookup, context selection, model call, normalization, exclusion
// filtering, grade-level filtering, persistence and cache write-back.
type Service struct {
	cache   *Cache
	tracker *Tracker
	limiter *ratelimit.Limiter
	caller  ModelCaller
	store   SuggestionStore
	log     *zap.Logger

	analysisTemperature float64
	now                 func() time.Time
}

// NewService wires the orchestrator. store may be nil when persistence is
// not wanted (tests, stateless deployments).
func NewService(cache *Cache, tracker *Tracker, limiter *ratelimit.Limiter, caller ModelCaller, store SuggestionStore, analysisTemperature float64, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if analysisTemperature <= 0 {
		analysisTemperature = 0.1
	}
	return &Service{
		cache:               cache,
		tracker:             tracker,
		limiter:             limiter,
		caller:              caller,
		store:               store,
		log:                 log,
		analysisTemperature: analysisTemperature,
		now:                 time.Now,
	}
}

// Analyze runs the full suggestion pipeline for one request.
func (s *Service) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResult, error) {
	started := s.now()

	if req == nil || req.Content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidRequest)
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}

	if s.limiter != nil {
		allowed, remaining, err := s.limiter.Allow(ctx, req.UserID)
		if err != nil {
			s.log.Warn("rate limit check failed", zap.String("userId", req.UserID), zap.Error(err))
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %d requests remaining", ErrRateLimited, remaining)
		}
	}

	analysisType, windows := s.resolveContext(ctx, req)
	hash := HashContent(req.Content, req.Goals, req.AcceptedSuggestions, string(analysisType))

	if !req.BypassCache && s.cache != nil {
		hit, err := s.cache.Get(ctx, hash, req.UserID)
		if err != nil {
			s.log.Warn("cache lookup failed", zap.String("hash", hash), zap.Error(err))
		}
		if hit != nil {
			var suggestions []models.SuggestionModel
			if err := json.Unmarshal(hit.Analysis, &suggestions); err == nil {
				return &AnalyzeResult{
					Suggestions: suggestions,
					Metadata: AnalyzeMetadata{
						Cached:         true,
						TokenCount:     hit.Metadata.TokenCount,
						ProcessingTime: s.now().Sub(started).Milliseconds(),
						CacheKey:       hash,
						AnalysisType:   analysisType,
					},
				}, nil
			}
			s.log.Warn("cached analysis unreadable, falling through", zap.String("hash", hash))
		}
	}

	if s.tracker != nil && req.PreviousContent != "" && req.DocumentID != "" {
		if _, err := s.tracker.TrackChanges(ctx, req.DocumentID, req.UserID, req.PreviousContent, req.Content); err != nil {
			s.log.Warn("change tracking failed", zap.String("documentId", req.DocumentID), zap.Error(err))
		}
	}

	systemPrompt, prompt := buildAnalysisPrompt(req, windows)
	env, err := s.callAndParse(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	suggestions := normalizeBatch(*env, req.Content, req.DocumentID, req.UserID)
	suggestions = s.filterModifiedAreas(ctx, req, suggestions)
	suggestions = applyGradeLevel(suggestions, req.Goals)

	if s.store != nil && req.DocumentID != "" {
		suggestions = s.persist(ctx, req, suggestions)
	}

	tokenCount := EstimateTokens(prompt)
	if s.cache != nil && len(suggestions) > 0 {
		payload, err := json.Marshal(suggestions)
		if err == nil {
			s.cache.Set(ctx, hash, req.UserID, payload, CacheMetadata{
				TokenCount:     tokenCount,
				ContextType:    string(analysisType),
				ParagraphCount: len(SplitParagraphs(req.Content)),
				DocumentID:     req.DocumentID,
			})
		}
	}

	result := &AnalyzeResult{
		Suggestions: suggestions,
		Metadata: AnalyzeMetadata{
			Cached:         false,
			TokenCount:     tokenCount,
			ProcessingTime: s.now().Sub(started).Milliseconds(),
			CacheKey:       hash,
			AnalysisType:   analysisType,
		},
	}
	if len(suggestions) == 0 {
		result.Message = "No suggestions for this content."
	}
	return result, nil
}

// resolveContext decides between full and differential analysis and, for
// differential, builds the paragraph context windows. Falls back to full
// whenever the change set is too large or too thin to reason about.
func (s *Service) resolveContext(ctx context.Context, req *AnalyzeRequest) (AnalysisType, []Window) {
	if req.AnalysisType == AnalysisFull {
		return AnalysisFull, nil
	}
	if req.PreviousContent == "" || req.DocumentID == "" {
		return AnalysisFull, nil
	}

	changed := changedParagraphIndices(req.PreviousContent, req.Content)
	paragraphs := SplitParagraphs(req.Content)
	if len(changed) == 0 {
		return AnalysisFull, nil
	}
	if ExceedsChangeThreshold(len(changed), len(paragraphs)) {
		return AnalysisFull, nil
	}

	radius := req.ContextRadius
	if radius <= 0 {
		radius = DefaultContextRadius
	}
	windows := BuildContextWindow(paragraphs, changed, radius)
	if len(windows) == 0 {
		return AnalysisFull, nil
	}
	return AnalysisDifferential, windows
}

// callAndParse performs the model call and decodes the response. A parse
// failure gets exactly one constrained retry; a second failure is fatal
// for the request.
func (s *Service) callAndParse(ctx context.Context, systemPrompt, prompt string) (*suggestionsEnvelope, error) {
	raw, err := s.caller.Complete(ctx, CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   prompt,
		Temperature:  s.analysisTemperature,
		MaxTokens:    analysisMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelCallFailed, err)
	}

	var env suggestionsEnvelope
	if err := DecodeModelJSON(raw, &env); err == nil {
		return &env, nil
	}

	s.log.Warn("model response unparseable, retrying constrained")
	raw, err = s.caller.Complete(ctx, CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   constrainPrompt(prompt),
		Temperature:  s.analysisTemperature,
		MaxTokens:    analysisMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelCallFailed, err)
	}
	if err := DecodeModelJSON(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: model returned malformed JSON twice", ErrAnalysisFailed)
	}
	return &env, nil
}

// filterModifiedAreas drops suggestions that target areas the user has
// already reworked past the per-type iteration limit. Correctness issues
// are never dropped.
func (s *Service) filterModifiedAreas(ctx context.Context, req *AnalyzeRequest, suggestions []models.SuggestionModel) []models.SuggestionModel {
	if s.tracker == nil || req.DocumentID == "" || len(suggestions) == 0 {
		return suggestions
	}
	areas, err := s.tracker.ModifiedAreas(ctx, req.DocumentID, req.UserID)
	if err != nil {
		s.log.Warn("modified areas lookup failed", zap.String("documentId", req.DocumentID), zap.Error(err))
		return suggestions
	}
	if len(areas) == 0 {
		return suggestions
	}

	kept := suggestions[:0]
	for _, sug := range suggestions {
		if ShouldExcludeArea(sug.StartIndex, sug.EndIndex, sug.Type, areas) {
			continue
		}
		kept = append(kept, sug)
	}
	return kept
}

// applyGradeLevel runs the grade-level filter when a level is set. An
// empty filtered set falls back to the unfiltered batch so an aggressive
// profile never silently hides everything.
func applyGradeLevel(suggestions []models.SuggestionModel, goals *WritingGoals) []models.SuggestionModel {
	if goals == nil || goals.AcademicLevel == "" || len(suggestions) == 0 {
		return suggestions
	}
	filtered := FilterByGradeLevel(suggestions, goals.AcademicLevel)
	if len(filtered) == 0 {
		return suggestions
	}
	return filtered
}

// CacheStats reports the caller's live cache entry summary.
func (s *Service) CacheStats(ctx context.Context, userID string) (*CacheStats, error) {
	if s.cache == nil {
		return &CacheStats{}, nil
	}
	return s.cache.Stats(ctx, userID)
}

func (s *Service) persist(ctx context.Context, req *AnalyzeRequest, suggestions []models.SuggestionModel) []models.SuggestionModel {
	saved := s.store.SaveBatch(ctx, suggestions)
	if err := s.store.MarkDocumentAnalyzed(ctx, req.DocumentID); err != nil {
		s.log.Warn("mark document analyzed failed", zap.String("documentId", req.DocumentID), zap.Error(err))
	}
	return saved
}
