package models

import "time"

// Vote target types.
const (
	TargetPost    = "post"
	TargetComment = "comment"
)

// Vote directions.
const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

// Vote is a single viewer's like or dislike on one post or comment.
// The composite key (UserID, TargetID) allows at most one vote per target.
type Vote struct {
	UserID     string     `gorm:"primaryKey;type:varchar(64)" json:"user_id"`
	TargetID   string     `gorm:"primaryKey;type:varchar(64)" json:"target_id"`
	TargetType string     `gorm:"not null;index" json:"target_type"`
	Direction  string     `gorm:"not null" json:"direction"`
	CreatedAt  *time.Time `json:"created_at"`
}

// IsVoteTarget reports whether t names a votable record type.
func IsVoteTarget(t string) bool {
	return t == TargetPost || t == TargetComment
}

// IsVoteDirection reports whether d is a known vote direction.
func IsVoteDirection(d string) bool {
	return d == VoteLike || d == VoteDislike
}
