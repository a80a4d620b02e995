package model

import (
	"time"

	"gorm.io/datatypes"
)

// LearningSession is one completed reading-practice round: the passage, the
// generated questions and the user's answers with per-question feedback.
// Questions is a JSON array of strings; Answers and Feedback are JSON objects
// keyed by question index.
type LearningSession struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64          `gorm:"not null;index:idx_learning_sessions_user_created,priority:1" json:"userId"`
	Passage   string         `gorm:"type:text;not null" json:"passage"`
	Questions datatypes.JSON `json:"questions"`
	Answers   datatypes.JSON `json:"answers"`
	Feedback  datatypes.JSON `json:"feedback"`
	Score     int            `gorm:"not null;default:0" json:"score"`
	CreatedAt time.Time      `gorm:"index:idx_learning_sessions_user_created,priority:2,sort:desc" json:"createdAt"`
}

func (LearningSession) TableName() string {
	return "learning_sessions"
}
