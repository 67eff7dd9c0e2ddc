package feed

import (
	"strings"

	"chika/internal/models"
)

// Hidden reasons reported by Partition.
const (
	HiddenBlocked = "blocked_author"
	HiddenKeyword = "keyword"
)

// Preferences is a viewer's moderation settings prepared for matching.
// The zero value hides nothing.
type Preferences struct {
	blocked  map[string]struct{}
	keywords []string
}

// NewPreferences builds Preferences from stored lists. Author names are
// matched exactly. Keywords are lowercased and blank entries are dropped,
// since an empty keyword would match every record.
func NewPreferences(blocked, keywords []string) Preferences {
	p := Preferences{}
	if len(blocked) > 0 {
		p.blocked = make(map[string]struct{}, len(blocked))
		for _, name := range blocked {
			p.blocked[name] = struct{}{}
		}
	}
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		p.keywords = append(p.keywords, strings.ToLower(kw))
	}
	return p
}

// PreferencesFrom adapts stored preferences.
func PreferencesFrom(stored models.Preferences) Preferences {
	return NewPreferences(stored.BlockedUsernames, stored.FilteredKeywords)
}

// IsBlocked reports whether author is on the block list.
func (p Preferences) IsBlocked(author string) bool {
	_, ok := p.blocked[author]
	return ok
}

// MatchesKeyword reports whether the title or body contains a filtered keyword.
func (p Preferences) MatchesKeyword(f Fields) bool {
	if len(p.keywords) == 0 {
		return false
	}
	title := strings.ToLower(f.Title)
	body := strings.ToLower(f.Body)
	for _, kw := range p.keywords {
		if strings.Contains(title, kw) || strings.Contains(body, kw) {
			return true
		}
	}
	return false
}

// HiddenReason returns why f is hidden, or "" if it is visible.
func (p Preferences) HiddenReason(f Fields) string {
	if p.IsBlocked(f.Author) {
		return HiddenBlocked
	}
	if p.MatchesKeyword(f) {
		return HiddenKeyword
	}
	return ""
}

// Visible reports whether a record with fields f should be shown.
func (p Preferences) Visible(f Fields) bool {
	return p.HiddenReason(f) == ""
}

// Filter returns the visible records in their original order.
func Filter[T Record](items []T, p Preferences) []T {
	visible, _ := Partition(items, p)
	return visible
}

// Partition returns the visible records in their original order along
// with how many were hidden for each reason.
func Partition[T Record](items []T, p Preferences) ([]T, map[string]int) {
	visible := make([]T, 0, len(items))
	hidden := map[string]int{}
	for _, item := range items {
		if isNil(item) {
			continue
		}
		if reason := p.HiddenReason(FieldsOf(item)); reason != "" {
			hidden[reason]++
			continue
		}
		visible = append(visible, item)
	}
	return visible, hidden
}

// MatchCategory reports whether a post belongs to category. An empty
// category and models.AllCategories match every post.
func MatchCategory(p *models.Post, category string) bool {
	if category == "" || category == models.AllCategories {
		return true
	}
	return p.Category == category
}

// MatchSearch reports whether the post title or author contains query,
// ignoring case. A blank query matches everything.
func MatchSearch(p *models.Post, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Author), q)
}
