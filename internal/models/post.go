// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a thread in a forum category.
type Post struct {
	ID        string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title     string     `gorm:"not null;default:''" json:"title"`
	Content   string     `gorm:"type:text;not null;default:''" json:"content"`
	Category  string     `gorm:"not null;index" json:"category"`
	Author    string     `gorm:"not null;index" json:"author"`
	UserID    string     `gorm:"not null;index" json:"user_id"`
	ImageURL  string     `json:"image_url,omitempty"`
	Likes     int        `gorm:"not null;default:0" json:"likes"`
	Dislikes  int        `gorm:"not null;default:0" json:"dislikes"`
	Replies   int        `gorm:"not null;default:0" json:"replies"`
	CreatedAt *time.Time `gorm:"index" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`

	// RelativeTime is derived from CreatedAt on every read; never persisted
	RelativeTime string `gorm:"-" json:"relative_time"`
	// CanEdit reports whether the requesting viewer may still edit this post (computed)
	CanEdit bool `gorm:"-" json:"can_edit"`
}
