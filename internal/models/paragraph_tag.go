package models

// TagType is the user-assigned state of a paragraph.
type TagType string

const (
	TagNeedsReview TagType = "needs-review"
	TagDone        TagType = "done"
)

// ParagraphTagModel is an explicit user annotation on a paragraph. Offsets are
// validated against current content on load; tags whose paragraph can no
// longer be located are removed rather than shown at the wrong place.
type ParagraphTagModel struct {
	Base
	DocumentID     string  `json:"document_id"     gorm:"index;not null"`
	UserID         string  `json:"user_id"         gorm:"index;not null"`
	ParagraphIndex int     `json:"paragraph_index"`
	StartIndex     int     `json:"start_index"`
	EndIndex       int     `json:"end_index"`
	Text           string  `json:"text"            gorm:"type:text"`
	TagType        TagType `json:"tag_type"        gorm:"not null"`
	Note           string  `json:"note,omitempty"  gorm:"type:text"`
}

func (ParagraphTagModel) TableName() string { return "paragraph_tags" }
