package suggestion

import (
	"context"
	"errors"
	"strings"

	"github.com/quillmind/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TagDTO struct {
	ParagraphIndex int            `json:"paragraphIndex"`
	StartIndex     int            `json:"startIndex"`
	EndIndex       int            `json:"endIndex"`
	Text           string         `json:"text" binding:"required"`
	TagType        models.TagType `json:"tagType" binding:"required"`
	Note           string         `json:"note"`
}

var validTagTypes = map[models.TagType]bool{
	models.TagNeedsReview: true,
	models.TagDone:        true,
}

// CreateTag attaches a paragraph tag to the document.
func (s *Service) CreateTag(ctx context.Context, userID, documentID string, dto TagDTO) (*models.ParagraphTagModel, error) {
	if !validTagTypes[dto.TagType] {
		return nil, errors.New("unknown tag type")
	}

	var doc models.DocumentModel
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", documentID, userID).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	tag := models.ParagraphTagModel{
		DocumentID:     documentID,
		UserID:         userID,
		ParagraphIndex: dto.ParagraphIndex,
		StartIndex:     dto.StartIndex,
		EndIndex:       dto.EndIndex,
		Text:           dto.Text,
		TagType:        dto.TagType,
		Note:           dto.Note,
	}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListTags returns the document's tags, validated against current content.
// Tags whose text can no longer be located are deleted instead of returned;
// a tag pointing at the wrong paragraph is worse than no tag.
func (s *Service) ListTags(ctx context.Context, userID, documentID string) ([]models.ParagraphTagModel, error) {
	var doc models.DocumentModel
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", documentID, userID).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var tags []models.ParagraphTagModel
	err = s.db.WithContext(ctx).
		Where("document_id = ? AND user_id = ?", documentID, userID).
		Order("paragraph_index ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}

	valid := tags[:0]
	var stale []string
	for _, tag := range tags {
		idx := strings.Index(doc.Content, tag.Text)
		if idx < 0 {
			stale = append(stale, tag.ID)
			continue
		}
		if idx != tag.StartIndex {
			tag.StartIndex = idx
			tag.EndIndex = idx + len(tag.Text)
			if err := s.db.WithContext(ctx).Save(&tag).Error; err != nil {
				s.log.Warn("tag offset update failed", zap.String("id", tag.ID), zap.Error(err))
			}
		}
		valid = append(valid, tag)
	}

	if len(stale) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", stale).Delete(&models.ParagraphTagModel{}).Error; err != nil {
			s.log.Warn("stale tag cleanup failed", zap.Int("count", len(stale)), zap.Error(err))
		}
	}
	return valid, nil
}

func (s *Service) DeleteTag(ctx context.Context, userID, tagID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", tagID, userID).
		Delete(&models.ParagraphTagModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
