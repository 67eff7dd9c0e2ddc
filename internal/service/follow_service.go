package service

import (
	"context"
	"strings"

	"chika/internal/models"
	"chika/internal/repository"
)

// FollowService provides following and unfollowing of authors by display name.
type FollowService struct {
	followRepo repository.FollowRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository) *FollowService {
	return &FollowService{followRepo: followRepo}
}

// Follow starts following username and returns the updated list.
func (s *FollowService) Follow(ctx context.Context, viewer models.Viewer, username string) ([]models.Follow, error) {
	if !viewer.SignedIn() {
		return nil, models.NewUnauthorizedError("Sign in to follow authors")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}
	if username == viewer.Name {
		return nil, models.NewValidationError("You cannot follow yourself")
	}
	if err := s.followRepo.Follow(ctx, viewer.ID, username); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, viewer.ID)
}

// Unfollow stops following username and returns the updated list.
func (s *FollowService) Unfollow(ctx context.Context, viewer models.Viewer, username string) ([]models.Follow, error) {
	if !viewer.SignedIn() {
		return nil, models.NewUnauthorizedError("Sign in to manage followed authors")
	}
	if err := s.followRepo.Unfollow(ctx, viewer.ID, strings.TrimSpace(username)); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, viewer.ID)
}

// Following lists who the viewer follows.
func (s *FollowService) Following(ctx context.Context, viewer models.Viewer) ([]models.Follow, error) {
	if !viewer.SignedIn() {
		return nil, models.NewUnauthorizedError("Sign in to view followed authors")
	}
	return s.followRepo.ListFollowing(ctx, viewer.ID)
}

// IsFollowing reports whether the viewer follows username. Anonymous viewers follow no one.
func (s *FollowService) IsFollowing(ctx context.Context, viewer models.Viewer, username string) (bool, error) {
	if !viewer.SignedIn() {
		return false, nil
	}
	return s.followRepo.IsFollowing(ctx, viewer.ID, strings.TrimSpace(username))
}
