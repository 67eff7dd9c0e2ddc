package models

import (
	"time"
)

// Comment is a reply to a post or, when ParentCommentID is set, to another comment.
type Comment struct {
	ID              string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	PostID          string     `gorm:"not null;index" json:"post_id"`
	ParentCommentID *string    `gorm:"index" json:"parent_comment_id"`
	Author          string     `gorm:"not null;index" json:"author"`
	UserID          string     `gorm:"not null;index" json:"user_id"`
	Content         string     `gorm:"type:text;not null;default:''" json:"content"`
	ImageURL        string     `json:"image_url,omitempty"`
	GifURL          string     `json:"gif_url,omitempty"`
	StickerURL      string     `json:"sticker_url,omitempty"`
	Likes           int        `gorm:"not null;default:0" json:"likes"`
	Dislikes        int        `gorm:"not null;default:0" json:"dislikes"`
	CreatedAt       *time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`

	RelativeTime string `gorm:"-" json:"relative_time"`
	CanEdit      bool   `gorm:"-" json:"can_edit"`
}

// IsReply reports whether the comment answers another comment rather than the post.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil && *c.ParentCommentID != ""
}
