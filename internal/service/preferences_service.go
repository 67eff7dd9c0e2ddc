// Package service holds the application's use cases on top of the repositories.
package service

import (
	"context"
	"strings"
	"time"

	"chika/internal/cache"
	"chika/internal/models"
	"chika/internal/repository"
)

const maxKeywordLen = 100

// PreferencesService manages a viewer's blocked authors and filtered keywords.
// Reads go through the cache; every write invalidates it.
type PreferencesService struct {
	repo  repository.PreferencesRepository
	store *cache.Store
	ttl   time.Duration
}

func NewPreferencesService(repo repository.PreferencesRepository, store *cache.Store, ttl time.Duration) *PreferencesService {
	return &PreferencesService{repo: repo, store: store, ttl: ttl}
}

// Get returns the viewer's stored preferences. A viewer without an id has none.
func (s *PreferencesService) Get(ctx context.Context, viewer models.Viewer) (models.Preferences, error) {
	prefs := models.Preferences{BlockedUsernames: []string{}, FilteredKeywords: []string{}}
	if !viewer.SignedIn() {
		return prefs, nil
	}
	err := s.store.CacheAside(ctx, "preferences", cache.PreferencesKey(viewer.ID), &prefs, s.ttl, func() error {
		var fetchErr error
		prefs, fetchErr = s.repo.Get(ctx, viewer.ID)
		return fetchErr
	})
	if err != nil {
		return models.Preferences{}, err
	}
	return prefs, nil
}

func (s *PreferencesService) Block(ctx context.Context, viewer models.Viewer, username string) (models.Preferences, error) {
	if !viewer.SignedIn() {
		return models.Preferences{}, models.NewUnauthorizedError("Sign in to block authors")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return models.Preferences{}, models.NewValidationError("Username is required")
	}
	if username == viewer.Name {
		return models.Preferences{}, models.NewValidationError("You cannot block yourself")
	}
	if err := s.repo.Block(ctx, viewer.ID, username); err != nil {
		return models.Preferences{}, err
	}
	return s.reload(ctx, viewer)
}

func (s *PreferencesService) Unblock(ctx context.Context, viewer models.Viewer, username string) (models.Preferences, error) {
	if !viewer.SignedIn() {
		return models.Preferences{}, models.NewUnauthorizedError("Sign in to manage blocked authors")
	}
	if err := s.repo.Unblock(ctx, viewer.ID, strings.TrimSpace(username)); err != nil {
		return models.Preferences{}, err
	}
	return s.reload(ctx, viewer)
}

// AddKeyword stores keyword trimmed and lowercased. Blank and already
// filtered keywords are rejected.
func (s *PreferencesService) AddKeyword(ctx context.Context, viewer models.Viewer, keyword string) (models.Preferences, error) {
	if !viewer.SignedIn() {
		return models.Preferences{}, models.NewUnauthorizedError("Sign in to filter keywords")
	}
	keyword = NormalizeKeyword(keyword)
	if keyword == "" {
		return models.Preferences{}, models.NewValidationError("Keyword is required")
	}
	if len(keyword) > maxKeywordLen {
		return models.Preferences{}, models.NewValidationError("Keyword too long (max 100 characters)")
	}
	added, err := s.repo.AddKeyword(ctx, viewer.ID, keyword)
	if err != nil {
		return models.Preferences{}, err
	}
	if !added {
		return models.Preferences{}, models.NewConflictError("Keyword is already filtered")
	}
	return s.reload(ctx, viewer)
}

func (s *PreferencesService) RemoveKeyword(ctx context.Context, viewer models.Viewer, keyword string) (models.Preferences, error) {
	if !viewer.SignedIn() {
		return models.Preferences{}, models.NewUnauthorizedError("Sign in to manage keywords")
	}
	if err := s.repo.RemoveKeyword(ctx, viewer.ID, NormalizeKeyword(keyword)); err != nil {
		return models.Preferences{}, err
	}
	return s.reload(ctx, viewer)
}

func (s *PreferencesService) reload(ctx context.Context, viewer models.Viewer) (models.Preferences, error) {
	s.store.Invalidate(ctx, cache.PreferencesKey(viewer.ID))
	return s.Get(ctx, viewer)
}

// NormalizeKeyword is the stored form of a filtered keyword.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}
