package feed

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Strategy names an ordering of a record set.
type Strategy string

// Known strategies.
const (
	SortLatest   Strategy = "latest"
	SortPopular  Strategy = "popular"
	SortReplies  Strategy = "replies"
	SortRelevant Strategy = "relevant"
)

// ParseStrategy validates a strategy name. An empty name means SortLatest.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(name))); s {
	case "":
		return SortLatest, nil
	case SortLatest, SortPopular, SortReplies, SortRelevant:
		return s, nil
	}
	return "", fmt.Errorf("unknown sort strategy %q", name)
}

// Sort returns a newly ordered copy of items. Every strategy is stable.
// SortRelevant only reorders when term is not blank.
func Sort[T Record](items []T, s Strategy, term string) []T {
	out := slices.Clone(items)
	switch s {
	case SortLatest:
		slices.SortStableFunc(out, func(a, b T) int {
			return compareRecency(FieldsOf(a).CreatedAt, FieldsOf(b).CreatedAt)
		})
	case SortPopular:
		slices.SortStableFunc(out, func(a, b T) int {
			return cmp.Compare(FieldsOf(b).Likes, FieldsOf(a).Likes)
		})
	case SortReplies:
		slices.SortStableFunc(out, func(a, b T) int {
			return cmp.Compare(FieldsOf(b).Replies, FieldsOf(a).Replies)
		})
	case SortRelevant:
		if strings.TrimSpace(term) == "" {
			return out
		}
		q := strings.ToLower(term)
		slices.SortStableFunc(out, func(a, b T) int {
			return relevanceTier(FieldsOf(b).Title, q) - relevanceTier(FieldsOf(a).Title, q)
		})
	}
	return out
}

// Top returns the n most liked records, most liked first.
func Top[T Record](items []T, n int) []T {
	sorted := Sort(items, SortPopular, "")
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// compareRecency orders newest first at whole-second resolution. A missing
// instant on a sorts it after b and a missing instant on b sorts it after
// a, checked in that order, so two missing instants compare as "b first".
func compareRecency(a, b *time.Time) int {
	if a == nil || a.IsZero() {
		return 1
	}
	if b == nil || b.IsZero() {
		return -1
	}
	return cmp.Compare(b.Unix(), a.Unix())
}

func relevanceTier(title, q string) int {
	t := strings.ToLower(title)
	switch {
	case t == q:
		return 2
	case strings.HasPrefix(t, q):
		return 1
	default:
		return 0
	}
}
