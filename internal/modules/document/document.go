package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/quillmind/core/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound covers both missing documents and documents owned by someone
// else; callers cannot tell the difference, on purpose.
var ErrNotFound = errors.New("document not found")

type CreateDTO struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type UpdateDTO struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, userID string, dto CreateDTO) (*models.DocumentModel, error) {
	doc := models.DocumentModel{
		UserID:  userID,
		Title:   dto.Title,
		Content: dto.Content,
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return &doc, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*models.DocumentModel, error) {
	var doc models.DocumentModel
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Query returns the base query for the user's documents, newest first.
// Handlers paginate it.
func (s *Service) Query(ctx context.Context, userID string) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")
}

func (s *Service) Update(ctx context.Context, userID, id string, dto UpdateDTO) (*models.DocumentModel, error) {
	doc, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if len(updates) == 0 {
		return doc, nil
	}

	if err := s.db.WithContext(ctx).Model(doc).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	return doc, nil
}

// Delete removes the document and everything hanging off it.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&models.SuggestionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&models.ParagraphTagModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&models.ChangeRecordModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.DocumentModel{}).Error
	})
}
