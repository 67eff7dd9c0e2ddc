package service

import (
	"context"
	"slices"
	"strings"

	"chika/internal/feed"
	"chika/internal/models"
	"chika/internal/observability"
	"chika/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// AuthorProfile summarises one display name for the viewer.
type AuthorProfile struct {
	Username     string `json:"username"`
	PostCount    int    `json:"post_count"`
	CommentCount int    `json:"comment_count"`
	Following    bool   `json:"following"`
	Blocked      bool   `json:"blocked"`
}

// CommentsPage is a flat comment list shaped for one viewer.
type CommentsPage struct {
	Comments []*models.Comment `json:"comments"`
	Hidden   map[string]int    `json:"hidden"`
	Votes    map[string]string `json:"votes"`
}

// ProfileService lists what one author has written, as seen by a viewer.
type ProfileService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	votes    repository.VoteRepository
	prefs    *PreferencesService
	follows  *FollowService
	pipeline feed.Pipeline
}

func NewProfileService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	votes repository.VoteRepository,
	prefs *PreferencesService,
	follows *FollowService,
	pipeline feed.Pipeline,
) *ProfileService {
	return &ProfileService{
		posts:    posts,
		comments: comments,
		votes:    votes,
		prefs:    prefs,
		follows:  follows,
		pipeline: pipeline,
	}
}

func authorParam(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", models.NewValidationError("Username is required")
	}
	return name, nil
}

// Profile counts the author's posts and comments and reports whether the
// viewer follows or blocks them. Counts ignore the viewer's filters.
func (s *ProfileService) Profile(ctx context.Context, viewer models.Viewer, username string) (*AuthorProfile, error) {
	username, err := authorParam(username)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByAuthor(ctx, username)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByAuthor(ctx, username)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.IsFollowing(ctx, viewer, username)
	if err != nil {
		return nil, err
	}
	prefs, err := s.prefs.Get(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return &AuthorProfile{
		Username:     username,
		PostCount:    len(posts),
		CommentCount: len(comments),
		Following:    following,
		Blocked:      slices.Contains(prefs.BlockedUsernames, username),
	}, nil
}

// Posts lists the author's posts newest first through the feed pipeline.
func (s *ProfileService) Posts(ctx context.Context, viewer models.Viewer, username string) (*FeedPage, error) {
	username, err := authorParam(username)
	if err != nil {
		return nil, err
	}
	span, ctx := observability.NewSpan(ctx, "profile.posts", attribute.String("profile.username", username))
	defer span.End()

	posts, err := s.posts.ListByAuthor(ctx, username)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	prefs, err := s.prefs.Get(ctx, viewer)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	done := observability.TrackPipeline("profile_posts")
	result := s.pipeline.Feed(posts, viewer, feed.PreferencesFrom(prefs), feed.FeedQuery{Sort: feed.SortLatest})
	done()
	observability.RecordHidden(models.TargetPost, result.Hidden)

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

// Comments lists the author's comments across every thread, newest first.
func (s *ProfileService) Comments(ctx context.Context, viewer models.Viewer, username string) (*CommentsPage, error) {
	username, err := authorParam(username)
	if err != nil {
		return nil, err
	}
	span, ctx := observability.NewSpan(ctx, "profile.comments", attribute.String("profile.username", username))
	defer span.End()

	comments, err := s.comments.ListByAuthor(ctx, username)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	prefs, err := s.prefs.Get(ctx, viewer)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	done := observability.TrackPipeline("profile_comments")
	visible, hidden := s.pipeline.Comments(comments, viewer, feed.PreferencesFrom(prefs))
	done()
	observability.RecordHidden(models.TargetComment, hidden)

	ids := make([]string, len(visible))
	for i, c := range visible {
		ids[i] = c.ID
	}
	votes, err := s.votes.Directions(ctx, viewer.ID, ids)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return &CommentsPage{Comments: visible, Hidden: hidden, Votes: votes}, nil
}
