package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/quillmind/core/internal/models"
	"gorm.io/gorm"
)

const (
	// changeRetention is how long change records stay relevant.
	changeRetention = 7 * 24 * time.Hour

	// Re-suggestion thresholds: engagement gives up after one rewrite of the
	// same span, clarity after two.
	maxIterationsEngagement = 1
	maxIterationsClarity    = 2
)

// paragraphSpan is a paragraph plus its byte offsets in the source content.
type paragraphSpan struct {
	Index int
	Start int
	End   int
	Text  string
}

// splitParagraphSpans splits on blank-line boundaries and keeps offsets.
func splitParagraphSpans(content string) []paragraphSpan {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	spans := make([]paragraphSpan, 0, 8)
	offset := 0
	index := 0
	for _, part := range strings.Split(normalized, "\n\n") {
		if strings.TrimSpace(part) != "" {
			spans = append(spans, paragraphSpan{
				Index: index,
				Start: offset,
				End:   offset + len(part),
				Text:  part,
			})
			index++
		}
		offset += len(part) + 2 // skip the blank-line separator
	}
	return spans
}

// paragraphIndexAt returns the index of the paragraph containing the offset.
// Offsets past the last paragraph snap to it.
func paragraphIndexAt(content string, offset int) int {
	spans := splitParagraphSpans(content)
	for _, s := range spans {
		if offset <= s.End {
			return s.Index
		}
	}
	if n := len(spans); n > 0 {
		return spans[n-1].Index
	}
	return 0
}

// changedParagraphIndices compares old and new content paragraph-by-paragraph
// at matching indices. Paragraphs beyond the shorter snapshot count as changed.
func changedParagraphIndices(oldContent, newContent string) []int {
	oldParas := SplitParagraphs(oldContent)
	newParas := SplitParagraphs(newContent)

	var changed []int
	for i := range newParas {
		if i >= len(oldParas) || oldParas[i] != newParas[i] {
			changed = append(changed, i)
		}
	}
	return changed
}

// Tracker records which paragraphs changed between document snapshots and how
// often suggestion-driven rewrites have touched each span.
type Tracker struct {
	db *gorm.DB
}

func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db}
}

// TrackChanges diffs two snapshots and upserts a change record per changed
// paragraph, incrementing the modification count for spans seen before.
func (t *Tracker) TrackChanges(ctx context.Context, documentID, userID, oldContent, newContent string) ([]models.ChangeRecordModel, error) {
	changed := changedParagraphIndices(oldContent, newContent)
	if len(changed) == 0 {
		return nil, nil
	}

	spans := splitParagraphSpans(newContent)
	records := make([]models.ChangeRecordModel, 0, len(changed))
	for _, idx := range changed {
		if idx >= len(spans) {
			continue
		}
		rec, err := t.upsertRecord(ctx, documentID, userID, spans[idx], models.ChangeClarity)
		if err != nil {
			return records, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

// RecordSuggestionEdit notes that a suggestion of the given type rewrote a
// span, so future analyses can stop re-suggesting the same improvement.
// Correctness types are not tracked; they must always surface. content is the
// document text after the edit; it locates the paragraph the span belongs to.
func (t *Tracker) RecordSuggestionEdit(ctx context.Context, documentID, userID, content string, start, end int, sugType models.SuggestionType) error {
	if sugType.IsCorrectness() {
		return nil
	}
	changeType := models.ChangeClarity
	if sugType == models.SuggestionEngagement {
		changeType = models.ChangeEngagement
	}
	span := paragraphSpan{Index: paragraphIndexAt(content, start), Start: start, End: end}
	_, err := t.upsertRecord(ctx, documentID, userID, span, changeType)
	return err
}

// matchChangeRecord finds the record tracking the same paragraph. Records are
// matched by paragraph index, never byte offsets: every rewrite shifts the
// span, so an offset-keyed lookup would reset the count on each edit.
func matchChangeRecord(records []models.ChangeRecordModel, paragraphIndex int, changeType models.ChangeType) *models.ChangeRecordModel {
	for i := range records {
		if records[i].ChangeType == changeType && records[i].ParagraphIndex == paragraphIndex {
			return &records[i]
		}
	}
	return nil
}

func (t *Tracker) upsertRecord(ctx context.Context, documentID, userID string, span paragraphSpan, changeType models.ChangeType) (*models.ChangeRecordModel, error) {
	var records []models.ChangeRecordModel
	err := t.db.WithContext(ctx).
		Where("document_id = ? AND user_id = ? AND change_type = ?", documentID, userID, changeType).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	if rec := matchChangeRecord(records, span.Index, changeType); rec != nil {
		rec.ModificationCount++
		rec.StartIndex = span.Start
		rec.EndIndex = span.End
		if err := t.db.WithContext(ctx).Save(rec).Error; err != nil {
			return nil, err
		}
		return rec, nil
	}

	rec := models.ChangeRecordModel{
		DocumentID:        documentID,
		UserID:            userID,
		ParagraphIndex:    span.Index,
		StartIndex:        span.Start,
		EndIndex:          span.End,
		ChangeType:        changeType,
		ModificationCount: 1,
	}
	if err := t.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ModifiedAreas returns the tracked spans for a document, newest snapshot wins.
func (t *Tracker) ModifiedAreas(ctx context.Context, documentID, userID string) ([]ModifiedArea, error) {
	var records []models.ChangeRecordModel
	err := t.db.WithContext(ctx).
		Where("document_id = ? AND user_id = ? AND created_at > ?", documentID, userID, time.Now().Add(-changeRetention)).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	areas := make([]ModifiedArea, 0, len(records))
	for _, rec := range records {
		areas = append(areas, ModifiedArea{
			StartIndex:        rec.StartIndex,
			EndIndex:          rec.EndIndex,
			Type:              rec.ChangeType,
			ModificationCount: rec.ModificationCount,
		})
	}
	return areas, nil
}

// Cleanup removes change records past the retention window. Not
// correctness-critical; runs on a cron sweep.
func (t *Tracker) Cleanup(ctx context.Context) (int64, error) {
	res := t.db.WithContext(ctx).
		Where("created_at < ?", time.Now().Add(-changeRetention)).
		Delete(&models.ChangeRecordModel{})
	return res.RowsAffected, res.Error
}

// ShouldExcludeArea reports whether a suggestion span should be suppressed
// because it overlaps an area the user has already rewritten enough times.
// Grammar and spelling are never excluded: correctness always surfaces.
// Pass maxIterations to override the per-type defaults.
func ShouldExcludeArea(start, end int, sugType models.SuggestionType, areas []ModifiedArea, maxIterations ...int) bool {
	if sugType.IsCorrectness() {
		return false
	}

	threshold := maxIterationsClarity
	if sugType == models.SuggestionEngagement {
		threshold = maxIterationsEngagement
	}
	if len(maxIterations) > 0 && maxIterations[0] > 0 {
		threshold = maxIterations[0]
	}

	for _, area := range areas {
		if start < area.EndIndex && end > area.StartIndex && area.ModificationCount >= threshold {
			return true
		}
	}
	return false
}
