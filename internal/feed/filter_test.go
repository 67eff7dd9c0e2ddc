package feed

import (
	"testing"

	"chika/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFilter_BlockedAuthorIsCaseSensitive(t *testing.T) {
	prefs := NewPreferences([]string{"alice"}, nil)
	posts := []*models.Post{
		post("1", "alice", "hello"),
		post("2", "Alice", "hello again"),
		post("3", "bob", "hi"),
	}

	got := Filter(posts, prefs)

	assert.Equal(t, []string{"2", "3"}, postIDs(got))
}

func TestFilter_KeywordIsCaseInsensitiveSubstring(t *testing.T) {
	prefs := NewPreferences(nil, []string{"spam"})

	bodyMatch := post("1", "kofi", "offer")
	bodyMatch.Content = "this is not SPAM"
	titleMatch := post("2", "ama", "Spammy deals")
	clean := post("3", "esi", "study group")
	clean.Content = "tonight at 7"

	got := Filter([]*models.Post{bodyMatch, titleMatch, clean}, prefs)

	assert.Equal(t, []string{"3"}, postIDs(got))
}

func TestFilter_CommentsMatchOnBody(t *testing.T) {
	prefs := NewPreferences([]string{"troll"}, []string{"scam"})
	comments := []*models.Comment{
		{ID: "1", Author: "troll", Content: "fine"},
		{ID: "2", Author: "ama", Content: "a total SCAM"},
		{ID: "3", Author: "esi", Content: "agreed"},
	}

	assert.Equal(t, []string{"3"}, commentIDs(Filter(comments, prefs)))
}

func TestNewPreferences_DropsBlankKeywords(t *testing.T) {
	prefs := NewPreferences(nil, []string{"", "   ", "Exam"})
	posts := []*models.Post{post("1", "kofi", "anything"), post("2", "ama", "exam leak")}

	got := Filter(posts, prefs)

	assert.Equal(t, []string{"1"}, postIDs(got), "blank keywords must not hide everything")
}

func TestFilter_EmptyPreferencesKeepEverything(t *testing.T) {
	posts := []*models.Post{post("1", "a", "x"), nil, post("2", "b", "y")}
	got := Filter(posts, Preferences{})
	assert.Equal(t, []string{"1", "2"}, postIDs(got))
}

func TestPartition_CountsReasons(t *testing.T) {
	prefs := NewPreferences([]string{"alice"}, []string{"spam"})
	posts := []*models.Post{
		post("1", "alice", "spam too"),
		post("2", "bob", "spam"),
		post("3", "bob", "ok"),
	}

	visible, hidden := Partition(posts, prefs)

	assert.Equal(t, []string{"3"}, postIDs(visible))
	assert.Equal(t, map[string]int{HiddenBlocked: 1, HiddenKeyword: 1}, hidden)
}

func TestPreferencesFrom(t *testing.T) {
	prefs := PreferencesFrom(models.Preferences{
		BlockedUsernames: []string{"kojo"},
		FilteredKeywords: []string{"Rent"},
	})
	assert.True(t, prefs.IsBlocked("kojo"))
	assert.True(t, prefs.MatchesKeyword(Fields{Body: "RENT is due"}))
}

func TestMatchCategoryAndSearch(t *testing.T) {
	p := post("1", "Kwame", "Best jollof spots")
	p.Category = "Rant"

	assert.True(t, MatchCategory(p, ""))
	assert.True(t, MatchCategory(p, models.AllCategories))
	assert.True(t, MatchCategory(p, "Rant"))
	assert.False(t, MatchCategory(p, "Work"))

	assert.True(t, MatchSearch(p, "  "))
	assert.True(t, MatchSearch(p, "JOLLOF"))
	assert.True(t, MatchSearch(p, "kwa"))
	assert.False(t, MatchSearch(p, "waakye"))
}
