package model

import (
	"time"

	"github.com/lib/pq"
)

// VocabularyItem is one saved word for one user. There is exactly one row
// per (owner, word) pair; repeated submissions bump AddCount instead of
// inserting a duplicate.
//
// NextReviewAt is nil until the first review completes. A nil NextReviewAt
// means the item is due now, not "not scheduled"; the due query depends on
// this.
type VocabularyItem struct {
	ID             string         `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID        int64          `gorm:"not null;index:idx_vocabulary_owner_word,unique,priority:1" json:"ownerId"`
	Word           string         `gorm:"not null;size:255;index:idx_vocabulary_owner_word,unique,priority:2" json:"word"`
	Definition     string         `gorm:"type:text" json:"definition"`
	Examples       pq.StringArray `gorm:"type:text[]" json:"examples"`
	SourcePassage  string         `gorm:"type:text" json:"sourcePassage"`
	SourceQuestion string         `gorm:"type:text" json:"sourceQuestion"`
	AddCount       int            `gorm:"not null;default:1" json:"addCount"`
	ReviewCount    int            `gorm:"not null;default:0" json:"reviewCount"`
	CreatedAt      time.Time      `json:"createdAt"`
	LastAddDate    time.Time      `json:"lastAddDate"`
	LastReviewedAt *time.Time     `json:"lastReviewedAt"`
	NextReviewAt   *time.Time     `json:"nextReviewAt"`
}

func (VocabularyItem) TableName() string {
	return "vocabulary_items"
}
