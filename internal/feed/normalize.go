package feed

import (
	"fmt"
	"time"

	"chika/internal/models"
)

// UnknownTime is shown for records without a creation instant.
const UnknownTime = "Unknown"

// JustNow is shown for anything under a minute old, and for future instants.
const JustNow = "Just now"

// AbsoluteDateLayout is used once a record is too old for a relative label.
const AbsoluteDateLayout = "Jan 2, 2006"

// RelativeTime renders how long before now created happened.
// Units are floored and months and years are 30 and 365 day buckets.
func RelativeTime(created *time.Time, now time.Time) string {
	if created == nil || created.IsZero() {
		return UnknownTime
	}

	diff := now.Sub(*created)
	if diff < 0 {
		return JustNow
	}

	seconds := int64(diff / time.Second)
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24
	weeks := days / 7
	months := days / 30
	years := days / 365

	switch {
	case seconds < 60:
		return JustNow
	case minutes == 1:
		return "1 minute ago"
	case minutes < 60:
		return fmt.Sprintf("%d minutes ago", minutes)
	case hours == 1:
		return "1 hour ago"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	case days == 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case weeks == 1:
		return "1 week ago"
	case weeks < 5:
		return fmt.Sprintf("%d weeks ago", weeks)
	case months == 1:
		return "1 month ago"
	case months < 12:
		return fmt.Sprintf("%d months ago", months)
	case years == 1:
		return "1 year ago"
	default:
		return created.In(now.Location()).Format(AbsoluteDateLayout)
	}
}

// Normalizer stamps derived display fields onto fetched records.
type Normalizer struct {
	// Now returns the reference instant; nil means time.Now.
	Now func() time.Time
}

func (n Normalizer) now() time.Time {
	if n.Now == nil {
		return time.Now()
	}
	return n.Now()
}

// Posts returns copies of posts with RelativeTime set. Nil entries are dropped.
func (n Normalizer) Posts(posts []*models.Post) []*models.Post {
	now := n.now()
	out := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}
		cp := *p
		cp.RelativeTime = RelativeTime(cp.CreatedAt, now)
		out = append(out, &cp)
	}
	return out
}

// Comments returns copies of comments with RelativeTime set. Nil entries are dropped.
func (n Normalizer) Comments(comments []*models.Comment) []*models.Comment {
	now := n.now()
	out := make([]*models.Comment, 0, len(comments))
	for _, c := range comments {
		if c == nil {
			continue
		}
		cp := *c
		cp.RelativeTime = RelativeTime(cp.CreatedAt, now)
		out = append(out, &cp)
	}
	return out
}
