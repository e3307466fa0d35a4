package analysis

import (
	"context"
	"time"

	"github.com/quillmind/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SuggestionStore persists accepted analysis output. The gorm
// implementation is best-effort: a failed row never fails the request.
type SuggestionStore interface {
	SaveBatch(ctx context.Context, suggestions []models.SuggestionModel) []models.SuggestionModel
	MarkDocumentAnalyzed(ctx context.Context, documentID string) error
}

type gormSuggestionStore struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSuggestionStore(db *gorm.DB, log *zap.Logger) SuggestionStore {
	return &gormSuggestionStore{db: db, log: log}
}

// SaveBatch inserts each suggestion individually so one bad row does not
// drop the whole batch. Returns the rows that made it in, IDs populated.
func (s *gormSuggestionStore) SaveBatch(ctx context.Context, suggestions []models.SuggestionModel) []models.SuggestionModel {
	saved := make([]models.SuggestionModel, 0, len(suggestions))
	for i := range suggestions {
		item := suggestions[i]
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			s.log.Warn("save suggestion failed",
				zap.String("documentId", item.DocumentID),
				zap.String("type", string(item.Type)),
				zap.Error(err))
			continue
		}
		saved = append(saved, item)
	}
	return saved
}

func (s *gormSuggestionStore) MarkDocumentAnalyzed(ctx context.Context, documentID string) error {
	if documentID == "" {
		return nil
	}
	now := time.Now()
	return s.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("id = ?", documentID).
		Update("last_analyzed_at", &now).Error
}
