package models

import "time"

// BlockedAuthor hides every post and comment written under a display name.
// Blocks are keyed by display name, not by the author's account.
type BlockedAuthor struct {
	UserID          string    `gorm:"primaryKey;type:varchar(64)" json:"-"`
	BlockedUsername string    `gorm:"primaryKey;type:varchar(255)" json:"blocked_username"`
	CreatedAt       time.Time `json:"created_at"`
}

// FilteredKeyword hides records whose title or body contains Keyword.
// Keyword is stored lowercase.
type FilteredKeyword struct {
	UserID    string    `gorm:"primaryKey;type:varchar(64)" json:"-"`
	Keyword   string    `gorm:"primaryKey;type:varchar(255)" json:"keyword"`
	CreatedAt time.Time `json:"created_at"`
}

// Preferences is a viewer's moderation settings as stored.
type Preferences struct {
	BlockedUsernames []string `json:"blocked_usernames"`
	FilteredKeywords []string `json:"filtered_keywords"`
}
