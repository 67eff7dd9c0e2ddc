package service

import (
	"context"
	"testing"
	"time"

	"chika/internal/cache"
	"chika/internal/feed"
	"chika/internal/models"
	"chika/internal/repository"
	"chika/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type feedFixture struct {
	db    *gorm.DB
	svc   *FeedService
	prefs *PreferencesService
	votes repository.VoteRepository
}

func newFeedFixture(t *testing.T, opts feed.TreeOptions) feedFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	votes := repository.NewVoteRepository(db)
	prefs := NewPreferencesService(repository.NewPreferencesRepository(db), cache.NewStore(nil), 0)
	svc := NewFeedService(posts, comments, votes, prefs, feed.Pipeline{EditWindow: 15 * time.Minute, Tree: opts})
	return feedFixture{db: db, svc: svc, prefs: prefs, votes: votes}
}

func (f feedFixture) post(t *testing.T, id, author, userID, category string, age time.Duration) {
	t.Helper()
	created := time.Now().UTC().Add(-age)
	require.NoError(t, repository.NewPostRepository(f.db).Create(context.Background(), &models.Post{
		ID: id, Title: "title " + id, Author: author, UserID: userID, Category: category, CreatedAt: &created,
	}))
}

func (f feedFixture) comment(t *testing.T, id, postID string, parent *string, content string, age time.Duration) {
	t.Helper()
	created := time.Now().UTC().Add(-age)
	require.NoError(t, repository.NewCommentRepository(f.db).Create(context.Background(), &models.Comment{
		ID: id, PostID: postID, ParentCommentID: parent, Author: "Esi", UserID: "u3", Content: content, CreatedAt: &created,
	}))
}

func TestFeedService_Feed(t *testing.T) {
	f := newFeedFixture(t, feed.TreeOptions{})
	ctx := context.Background()
	f.post(t, "p1", "Kofi", "u1", "School", 5*time.Minute)
	f.post(t, "p2", "troll", "u9", "School", time.Minute)
	f.post(t, "p3", "Ama", "u2", "Work", 2*time.Hour)

	_, err := f.prefs.Block(ctx, author, "troll")
	require.NoError(t, err)
	_, err = f.votes.Toggle(ctx, "u1", models.TargetPost, "p3", models.VoteLike)
	require.NoError(t, err)

	page, err := f.svc.Feed(ctx, author, feed.FeedQuery{Category: models.AllCategories, Sort: feed.SortLatest})
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "p1", page.Posts[0].ID)
	assert.True(t, page.Posts[0].CanEdit)
	assert.Equal(t, "5 minutes ago", page.Posts[0].RelativeTime)
	assert.Equal(t, "p3", page.Posts[1].ID)
	assert.False(t, page.Posts[1].CanEdit)
	assert.Equal(t, 1, page.Hidden[feed.HiddenBlocked])
	assert.Equal(t, map[string]string{"p3": models.VoteLike}, page.Votes)

	page, err = f.svc.Feed(ctx, models.Anonymous, feed.FeedQuery{Category: "School"})
	require.NoError(t, err)
	require.Len(t, page.Posts, 2, "anonymous viewers have no block list")
	assert.Equal(t, "p2", page.Posts[0].ID)
	assert.Empty(t, page.Votes)
}

func TestFeedService_Thread(t *testing.T) {
	ctx := context.Background()

	t.Run("drops orphans by default", func(t *testing.T) {
		f := newFeedFixture(t, feed.TreeOptions{})
		f.post(t, "p1", "Kofi", "u1", "Chika", time.Hour)
		f.comment(t, "c1", "p1", nil, "first", 30*time.Minute)
		f.comment(t, "c2", "p1", strPtr("c1"), "reply", 20*time.Minute)
		f.comment(t, "c3", "p1", strPtr("deleted"), "lost", 10*time.Minute)
		f.comment(t, "c4", "p1", nil, "buy spam now", 5*time.Minute)

		_, err := f.prefs.AddKeyword(ctx, author, "SPAM")
		require.NoError(t, err)

		page, err := f.svc.Thread(ctx, author, "p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", page.Post.ID)
		assert.Equal(t, 4, page.Post.Replies)
		assert.False(t, page.Hidden)
		require.Len(t, page.Comments, 1)
		assert.Equal(t, "c1", page.Comments[0].Comment.ID)
		require.Len(t, page.Comments[0].Children, 1)
		assert.Equal(t, "c2", page.Comments[0].Children[0].Comment.ID)
		assert.Equal(t, 2, page.CommentCount)
		require.Len(t, page.Orphans, 1)
		assert.Equal(t, "c3", page.Orphans[0].ID)
		assert.Equal(t, 1, page.HiddenCounts[feed.HiddenKeyword])
	})

	t.Run("promotes orphans when configured", func(t *testing.T) {
		f := newFeedFixture(t, feed.TreeOptions{PromoteOrphans: true})
		f.post(t, "p1", "Kofi", "u1", "Chika", time.Hour)
		f.comment(t, "c1", "p1", nil, "first", 30*time.Minute)
		f.comment(t, "c3", "p1", strPtr("deleted"), "lost", 10*time.Minute)

		page, err := f.svc.Thread(ctx, models.Anonymous, "p1")
		require.NoError(t, err)
		require.Len(t, page.Comments, 2)
		assert.Equal(t, 2, page.CommentCount)
	})

	t.Run("missing post", func(t *testing.T) {
		f := newFeedFixture(t, feed.TreeOptions{})
		_, err := f.svc.Thread(ctx, author, "p404")
		assertCode(t, err, models.CodeNotFound)
	})
}

func TestFeedService_Gallery(t *testing.T) {
	f := newFeedFixture(t, feed.TreeOptions{})
	ctx := context.Background()
	posts := repository.NewPostRepository(f.db)
	comments := repository.NewCommentRepository(f.db)

	created := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, posts.Create(ctx, &models.Post{
		ID: "p1", Title: "Beach day", Author: "Kofi", UserID: "u1", Category: "Chika",
		ImageURL: "https://img/beach.jpg", CreatedAt: &created,
	}))
	at := func(m int) *time.Time {
		ts := created.Add(time.Duration(m) * time.Minute)
		return &ts
	}
	require.NoError(t, comments.Create(ctx, &models.Comment{
		ID: "c1", PostID: "p1", Author: "Ama", UserID: "u2", GifURL: "https://gif/wave.gif", CreatedAt: at(1),
	}))
	require.NoError(t, comments.Create(ctx, &models.Comment{
		ID: "c2", PostID: "p1", Author: "troll", UserID: "u9", ImageURL: "https://img/spam.jpg", CreatedAt: at(2),
	}))
	require.NoError(t, comments.Create(ctx, &models.Comment{
		ID: "c3", PostID: "p1", Author: "Esi", UserID: "u3", Content: "no media", CreatedAt: at(3),
	}))

	page, err := f.svc.Gallery(ctx, models.Anonymous, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", page.PostID)
	require.Len(t, page.Items, 3)
	assert.Equal(t, feed.OriginalPostSource, page.Items[0].Source)
	assert.Equal(t, "Ama (GIF)", page.Items[1].Source)
	assert.Equal(t, feed.MediaGIF, page.Items[1].Kind)
	assert.Equal(t, "troll", page.Items[2].Source)

	_, err = f.prefs.Block(ctx, stranger, "troll")
	require.NoError(t, err)
	page, err = f.svc.Gallery(ctx, stranger, "p1")
	require.NoError(t, err)
	require.Len(t, page.Items, 2, "blocked authors' media is left out")

	_, err = f.svc.Gallery(ctx, models.Anonymous, "missing")
	assertCode(t, err, models.CodeNotFound)
}
