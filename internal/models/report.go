package models

import "time"

// Report flags a post or comment for moderator review.
type Report struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ReportedBy string    `gorm:"not null;index" json:"reported_by"`
	TargetType string    `gorm:"not null" json:"target_type"`
	TargetID   string    `gorm:"not null;index" json:"target_id"`
	Reason     string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

// Favorite bookmarks a post for a viewer.
type Favorite struct {
	UserID    string    `gorm:"primaryKey;type:varchar(64)" json:"user_id"`
	PostID    string    `gorm:"primaryKey;type:varchar(64)" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
