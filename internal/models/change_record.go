package models

// ChangeType marks which kind of suggestion-driven rewrite a span has seen.
type ChangeType string

const (
	ChangeClarity    ChangeType = "clarity"
	ChangeEngagement ChangeType = "engagement"
)

// ChangeRecordModel tracks how many times a paragraph has been rewritten after
// a suggestion, so repeated re-suggestions on the same span can be suppressed.
// Rows older than seven days are swept by the retention cron job.
type ChangeRecordModel struct {
	Base
	DocumentID        string     `json:"document_id"        gorm:"index:idx_change_doc_user;not null"`
	UserID            string     `json:"user_id"            gorm:"index:idx_change_doc_user;not null"`
	ParagraphIndex    int        `json:"paragraph_index"`
	StartIndex        int        `json:"start_index"`
	EndIndex          int        `json:"end_index"`
	ChangeType        ChangeType `json:"change_type"        gorm:"default:'clarity'"`
	ModificationCount int        `json:"modification_count" gorm:"default:1"`
}

func (ChangeRecordModel) TableName() string { return "change_records" }
