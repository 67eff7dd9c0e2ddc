package service

import (
	"context"

	"chika/internal/feed"
	"chika/internal/models"
	"chika/internal/repository"
)

type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	postRepo     repository.PostRepository
	prefs        *PreferencesService
	pipeline     feed.Pipeline
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	postRepo repository.PostRepository,
	prefs *PreferencesService,
	pipeline feed.Pipeline,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		postRepo:     postRepo,
		prefs:        prefs,
		pipeline:     pipeline,
	}
}

func (s *FavoriteService) AddFavorite(ctx context.Context, viewer models.Viewer, postID string) error {
	if !viewer.SignedIn() {
		return models.NewUnauthorizedError("Sign in to save favorites")
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.favoriteRepo.Add(ctx, viewer.ID, postID)
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, viewer models.Viewer, postID string) error {
	if !viewer.SignedIn() {
		return models.NewUnauthorizedError("Sign in to manage favorites")
	}
	return s.favoriteRepo.Remove(ctx, viewer.ID, postID)
}

// ListFavorites returns the viewer's saved posts, newest first, minus
// anything their preferences hide.
func (s *FavoriteService) ListFavorites(ctx context.Context, viewer models.Viewer) (*FeedPage, error) {
	if !viewer.SignedIn() {
		return nil, models.NewUnauthorizedError("Sign in to view favorites")
	}
	ids, err := s.favoriteRepo.ListPostIDs(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	prefs, err := s.prefs.Get(ctx, viewer)
	if err != nil {
		return nil, err
	}
	result := s.pipeline.Feed(posts, viewer, feed.PreferencesFrom(prefs), feed.FeedQuery{Sort: feed.SortLatest})
	return &FeedPage{Posts: result.Posts, Hidden: result.Hidden, Votes: map[string]string{}}, nil
}
