package feed

import (
	"time"

	"chika/internal/models"
)

// HotCommentLimit is how many comments a thread view lists as hot.
const HotCommentLimit = 10

// FeedQuery selects and orders posts for a feed or search screen.
type FeedQuery struct {
	Category string
	Search   string
	Sort     Strategy
}

// FeedResult is a feed ready to render.
type FeedResult struct {
	Posts []*models.Post
	// Hidden counts posts removed by the viewer's preferences, by reason.
	Hidden map[string]int
}

// ThreadView is a post with its comment tree ready to render.
type ThreadView struct {
	Post *models.Post `json:"post"`
	// Hidden is set when the post itself matches the viewer's filters.
	Hidden       bool              `json:"hidden"`
	Comments     []*Node           `json:"comments"`
	Hot          []*models.Comment `json:"hot_comments"`
	CommentCount int               `json:"comment_count"`

	Orphans      []*models.Comment `json:"-"`
	HiddenCounts map[string]int    `json:"-"`
}

// Pipeline runs a fetched snapshot through filtering, normalization,
// edit flags and ordering. It holds no state between calls.
type Pipeline struct {
	// Now returns the reference instant; nil means time.Now.
	Now        func() time.Time
	EditWindow time.Duration
	Tree       TreeOptions
}

func (p Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

func (p Pipeline) window() time.Duration {
	if p.EditWindow <= 0 {
		return DefaultEditWindow
	}
	return p.EditWindow
}

// Feed filters posts by category and search text, drops what the viewer
// has hidden, stamps display fields and orders the rest.
func (p Pipeline) Feed(posts []*models.Post, viewer models.Viewer, prefs Preferences, q FeedQuery) FeedResult {
	matched := make([]*models.Post, 0, len(posts))
	for _, post := range posts {
		if post == nil {
			continue
		}
		if MatchCategory(post, q.Category) && MatchSearch(post, q.Search) {
			matched = append(matched, post)
		}
	}

	visible, hidden := Partition(matched, prefs)
	now := p.now()
	stamped := Normalizer{Now: func() time.Time { return now }}.Posts(visible)
	for _, post := range stamped {
		post.CanEdit = viewer.Owns(post.UserID) && CanEdit(post.CreatedAt, now, p.window())
	}

	strategy := q.Sort
	if strategy == "" {
		strategy = SortLatest
	}
	return FeedResult{
		Posts:  Sort(stamped, strategy, q.Search),
		Hidden: hidden,
	}
}

// Thread builds the thread view for post from a snapshot of its comments.
func (p Pipeline) Thread(post *models.Post, comments []*models.Comment, viewer models.Viewer, prefs Preferences) ThreadView {
	now := p.now()
	norm := Normalizer{Now: func() time.Time { return now }}

	view := ThreadView{Comments: []*Node{}, Hot: []*models.Comment{}}
	if post != nil {
		stamped := norm.Posts([]*models.Post{post})[0]
		stamped.CanEdit = viewer.Owns(stamped.UserID) && CanEdit(stamped.CreatedAt, now, p.window())
		view.Post = stamped
		view.Hidden = !prefs.Visible(FieldsOf(stamped))
	}

	visible, hidden := Partition(comments, prefs)
	stamped := norm.Comments(visible)
	for _, c := range stamped {
		c.CanEdit = viewer.Owns(c.UserID) && CanEdit(c.CreatedAt, now, p.window())
	}

	tree := BuildTree(stamped, p.Tree)
	view.Comments = tree.Roots
	view.Orphans = tree.Orphans
	view.CommentCount = tree.Count()
	view.Hot = Top(stamped, HotCommentLimit)
	view.HiddenCounts = hidden
	return view
}

// Comments stamps and filters a flat comment list, such as one author's
// comments across threads, and orders it newest first.
func (p Pipeline) Comments(comments []*models.Comment, viewer models.Viewer, prefs Preferences) ([]*models.Comment, map[string]int) {
	visible, hidden := Partition(comments, prefs)
	now := p.now()
	stamped := Normalizer{Now: func() time.Time { return now }}.Comments(visible)
	for _, c := range stamped {
		c.CanEdit = viewer.Owns(c.UserID) && CanEdit(c.CreatedAt, now, p.window())
	}
	return Sort(stamped, SortLatest, ""), hidden
}
