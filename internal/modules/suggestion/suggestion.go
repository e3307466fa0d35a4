package suggestion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/quillmind/core/internal/models"
	"github.com/quillmind/core/internal/modules/analysis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("suggestion not found")
	// ErrStale means the suggestion's original text no longer exists in the
	// document; the suggestion is auto-rejected instead of applied blindly.
	ErrStale = errors.New("suggestion is stale: original text not found")
)

// ListFilter narrows a document's suggestion list.
type ListFilter struct {
	Status         models.SuggestionStatus
	ParagraphStart *int
	ParagraphEnd   *int
}

// AcceptResult is what applying a suggestion produced.
type AcceptResult struct {
	Suggestion *models.SuggestionModel `json:"suggestion"`
	Content    string                  `json:"content"`
	Relocated  bool                    `json:"relocated"`
}

// Service applies, rejects and lists suggestions, and manages paragraph tags.
type Service struct {
	db      *gorm.DB
	tracker *analysis.Tracker
	log     *zap.Logger
}

func NewService(db *gorm.DB, tracker *analysis.Tracker, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, tracker: tracker, log: log}
}

// relocateSpan verifies a suggestion span against current content and, when
// the document has drifted, searches for the original text verbatim. Returns
// the (possibly shifted) span, whether it moved, and whether it was found.
func relocateSpan(content, originalText string, start, end int) (newStart, newEnd int, relocated, found bool) {
	if originalText == "" {
		return start, end, false, false
	}
	if start >= 0 && end <= len(content) && start < end && content[start:end] == originalText {
		return start, end, false, true
	}
	idx := strings.Index(content, originalText)
	if idx < 0 {
		return start, end, false, false
	}
	return idx, idx + len(originalText), true, true
}

// applySpan splices the replacement into content.
func applySpan(content, replacement string, start, end int) string {
	return content[:start] + replacement + content[end:]
}

func (s *Service) fetch(ctx context.Context, userID, id string) (*models.SuggestionModel, error) {
	var sug models.SuggestionModel
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&sug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sug, nil
}

// Accept applies a pending suggestion to its document. Stale spans are
// relocated by searching the original text verbatim; when the text is gone
// the suggestion is auto-rejected and ErrStale returned.
func (s *Service) Accept(ctx context.Context, userID, id string) (*AcceptResult, error) {
	sug, err := s.fetch(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if sug.Status != models.StatusPending {
		return nil, fmt.Errorf("suggestion already %s", sug.Status)
	}

	var doc models.DocumentModel
	err = s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", sug.DocumentID, userID).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	start, end, relocated, found := relocateSpan(doc.Content, sug.OriginalText, sug.StartIndex, sug.EndIndex)
	if !found {
		sug.Status = models.StatusRejected
		if err := s.db.WithContext(ctx).Save(sug).Error; err != nil {
			s.log.Warn("auto-reject save failed", zap.String("id", sug.ID), zap.Error(err))
		}
		return nil, ErrStale
	}

	newContent := applySpan(doc.Content, sug.SuggestedText, start, end)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&doc).Update("content", newContent).Error; err != nil {
			return err
		}
		sug.Status = models.StatusAccepted
		sug.StartIndex = start
		sug.EndIndex = end
		return tx.Save(sug).Error
	})
	if err != nil {
		return nil, fmt.Errorf("apply suggestion: %w", err)
	}

	if s.tracker != nil {
		newEnd := start + len(sug.SuggestedText)
		if err := s.tracker.RecordSuggestionEdit(ctx, sug.DocumentID, userID, newContent, start, newEnd, sug.Type); err != nil {
			s.log.Warn("record suggestion edit failed", zap.String("id", sug.ID), zap.Error(err))
		}
	}

	return &AcceptResult{Suggestion: sug, Content: newContent, Relocated: relocated}, nil
}

func (s *Service) Reject(ctx context.Context, userID, id string) (*models.SuggestionModel, error) {
	sug, err := s.fetch(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if sug.Status != models.StatusPending {
		return nil, fmt.Errorf("suggestion already %s", sug.Status)
	}

	sug.Status = models.StatusRejected
	if err := s.db.WithContext(ctx).Save(sug).Error; err != nil {
		return nil, err
	}
	return sug, nil
}

// ListForDocument returns a document's suggestions, optionally narrowed by
// status and span.
func (s *Service) ListForDocument(ctx context.Context, userID, documentID string, filter ListFilter) ([]models.SuggestionModel, error) {
	q := s.db.WithContext(ctx).
		Where("document_id = ? AND user_id = ?", documentID, userID).
		Order("start_index ASC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ParagraphStart != nil {
		q = q.Where("end_index > ?", *filter.ParagraphStart)
	}
	if filter.ParagraphEnd != nil {
		q = q.Where("start_index < ?", *filter.ParagraphEnd)
	}

	var out []models.SuggestionModel
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
