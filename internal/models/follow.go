package models

import "time"

// Follow records that a viewer follows an author. Like blocks, follows are
// keyed by display name.
type Follow struct {
	UserID           string    `gorm:"primaryKey;type:varchar(64)" json:"-"`
	FollowedUsername string    `gorm:"primaryKey;type:varchar(255)" json:"followed_username"`
	CreatedAt        time.Time `json:"created_at"`
}
