package models

import "time"

// DocumentModel is the thin document record suggestions and tags hang off of.
// Clients own the editing experience; the backend keeps the latest content so
// differential analysis has a prior snapshot to diff against.
type DocumentModel struct {
	Base
	UserID         string     `json:"user_id" gorm:"index;not null"`
	Title          string     `json:"title"   gorm:"not null"`
	Content        string     `json:"content" gorm:"type:longtext"`
	LastAnalyzedAt *time.Time `json:"last_analyzed_at,omitempty"`
}

func (DocumentModel) TableName() string { return "documents" }
