package service

import (
	"context"
	"log/slog"

	"chika/internal/feed"
	"chika/internal/models"
	"chika/internal/observability"
	"chika/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// FeedPage is a feed shaped for one viewer.
type FeedPage struct {
	Posts  []*models.Post `json:"posts"`
	Hidden map[string]int `json:"hidden"`
	// Votes maps post id to the viewer's vote direction.
	Votes map[string]string `json:"votes"`
}

// ThreadPage is a thread shaped for one viewer.
type ThreadPage struct {
	feed.ThreadView
	Votes map[string]string `json:"votes"`
}

// FeedService loads snapshots and runs them through the feed pipeline.
type FeedService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	votes    repository.VoteRepository
	prefs    *PreferencesService
	pipeline feed.Pipeline
}

func NewFeedService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	votes repository.VoteRepository,
	prefs *PreferencesService,
	pipeline feed.Pipeline,
) *FeedService {
	return &FeedService{
		posts:    posts,
		comments: comments,
		votes:    votes,
		prefs:    prefs,
		pipeline: pipeline,
	}
}

// Feed lists posts for q as seen by viewer.
func (s *FeedService) Feed(ctx context.Context, viewer models.Viewer, q feed.FeedQuery) (*FeedPage, error) {
	span, ctx := observability.NewSpan(ctx, "feed.list",
		attribute.String("feed.category", q.Category),
		attribute.String("feed.sort", string(q.Sort)),
	)
	defer span.End()

	posts, err := s.posts.List(ctx, q.Category)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	prefs, err := s.prefs.Get(ctx, viewer)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	done := observability.TrackPipeline("feed")
	result := s.pipeline.Feed(posts, viewer, feed.PreferencesFrom(prefs), q)
	done()
	observability.RecordHidden(models.TargetPost, result.Hidden)
	span.AddAttributes(attribute.Int("feed.posts", len(result.Posts)))

	ids := make([]string, len(result.Posts))
	for i, p := range result.Posts {
		ids[i] = p.ID
	}
	votes, err := s.votes.Directions(ctx, viewer.ID, ids)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &FeedPage{Posts: result.Posts, Hidden: result.Hidden, Votes: votes}, nil
}

// Thread returns a post with its comment tree as seen by viewer.
func (s *FeedService) Thread(ctx context.Context, viewer models.Viewer, postID string) (*ThreadPage, error) {
	span, ctx := observability.NewSpan(ctx, "feed.thread", attribute.String("post.id", postID))
	defer span.End()

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	prefs, err := s.prefs.Get(ctx, viewer)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	done := observability.TrackPipeline("thread")
	view := s.pipeline.Thread(post, comments, viewer, feed.PreferencesFrom(prefs))
	done()
	observability.RecordHidden(models.TargetComment, view.HiddenCounts)

	if n := len(view.Orphans); n > 0 {
		observability.OrphanComments.Add(float64(n))
		ids := make([]string, n)
		for i, c := range view.Orphans {
			ids[i] = c.ID
		}
		slog.WarnContext(ctx, "thread has unreachable comments",
			slog.String("post_id", postID),
			slog.Int("count", n),
			slog.Any("comment_ids", ids),
		)
	}

	ids := make([]string, 0, len(comments)+1)
	ids = append(ids, post.ID)
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	votes, err := s.votes.Directions(ctx, viewer.ID, ids)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &ThreadPage{ThreadView: view, Votes: votes}, nil
}

// GalleryPage is a thread's media as seen by one viewer.
type GalleryPage struct {
	PostID string             `json:"post_id"`
	Items  []feed.GalleryItem `json:"items"`
}

// Gallery collects the pictures attached to a post and its comments.
func (s *FeedService) Gallery(ctx context.Context, viewer models.Viewer, postID string) (*GalleryPage, error) {
	span, ctx := observability.NewSpan(ctx, "feed.gallery", attribute.String("post.id", postID))
	defer span.End()

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	prefs, err := s.prefs.Get(ctx, viewer)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	items := feed.Gallery(post, comments, feed.PreferencesFrom(prefs))
	span.AddAttributes(attribute.Int("gallery.items", len(items)))
	return &GalleryPage{PostID: post.ID, Items: items}, nil
}
