package model

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"not null;size:100" json:"username"`
	Email        string    `gorm:"not null;size:255" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Provider     string    `gorm:"not null;size:20;default:'local'" json:"provider"`
	ProviderID   string    `gorm:"size:255" json:"providerId,omitempty"`
	Name         string    `gorm:"size:255" json:"name"`
	AvatarURL    string    `json:"avatarUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	LastLoginAt  time.Time `json:"lastLoginAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// Provider constants
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)
