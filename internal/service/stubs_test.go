package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"chika/internal/models"
	"chika/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn    func(context.Context, *models.Post) error
	getByIDFn   func(context.Context, string) (*models.Post, error)
	listFn      func(context.Context, string) ([]*models.Post, error)
	listByIDsFn func(context.Context, []string) ([]*models.Post, error)
	byAuthorFn  func(context.Context, string) ([]*models.Post, error)
	updateFn    func(context.Context, *models.Post) error
	deleteFn    func(context.Context, string) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, category string) ([]*models.Post, error) {
	return s.listFn(ctx, category)
}
func (s *postRepoStub) ListByIDs(ctx context.Context, ids []string) ([]*models.Post, error) {
	return s.listByIDsFn(ctx, ids)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, author string) ([]*models.Post, error) {
	return s.byAuthorFn(ctx, author)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:    func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:   func(_ context.Context, id string) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:      func(_ context.Context, _ string) ([]*models.Post, error) { return nil, nil },
		listByIDsFn: func(_ context.Context, _ []string) ([]*models.Post, error) { return nil, nil },
		byAuthorFn:  func(_ context.Context, _ string) ([]*models.Post, error) { return nil, nil },
		updateFn:    func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:    func(_ context.Context, _ string) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, string) (*models.Comment, error)
	listByPostFn func(context.Context, string) ([]*models.Comment, error)
	byAuthorFn   func(context.Context, string) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, *models.Comment) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListByAuthor(ctx context.Context, author string) ([]*models.Comment, error) {
	return s.byAuthorFn(ctx, author)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, c *models.Comment) error {
	return s.deleteFn(ctx, c)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id string) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ string) ([]*models.Comment, error) { return nil, nil },
		byAuthorFn:   func(_ context.Context, _ string) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ *models.Comment) error { return nil },
	}
}

// voteRepoStub is a stub for repository.VoteRepository.
type voteRepoStub struct {
	toggleFn     func(context.Context, string, string, string, string) (*repository.VoteResult, error)
	directionsFn func(context.Context, string, []string) (map[string]string, error)
}

func (s *voteRepoStub) Toggle(ctx context.Context, userID, targetType, targetID, direction string) (*repository.VoteResult, error) {
	return s.toggleFn(ctx, userID, targetType, targetID, direction)
}
func (s *voteRepoStub) Directions(ctx context.Context, userID string, ids []string) (map[string]string, error) {
	return s.directionsFn(ctx, userID, ids)
}

func noopVoteRepo() *voteRepoStub {
	return &voteRepoStub{
		toggleFn: func(_ context.Context, _, _, _, direction string) (*repository.VoteResult, error) {
			return &repository.VoteResult{Outcome: repository.VoteCreated, Direction: direction}, nil
		},
		directionsFn: func(_ context.Context, _ string, _ []string) (map[string]string, error) {
			return map[string]string{}, nil
		},
	}
}

// prefsRepoStub is a stub for repository.PreferencesRepository.
type prefsRepoStub struct {
	getFn           func(context.Context, string) (models.Preferences, error)
	blockFn         func(context.Context, string, string) error
	unblockFn       func(context.Context, string, string) error
	addKeywordFn    func(context.Context, string, string) (bool, error)
	removeKeywordFn func(context.Context, string, string) error
}

func (s *prefsRepoStub) Get(ctx context.Context, userID string) (models.Preferences, error) {
	return s.getFn(ctx, userID)
}
func (s *prefsRepoStub) Block(ctx context.Context, userID, username string) error {
	return s.blockFn(ctx, userID, username)
}
func (s *prefsRepoStub) Unblock(ctx context.Context, userID, username string) error {
	return s.unblockFn(ctx, userID, username)
}
func (s *prefsRepoStub) AddKeyword(ctx context.Context, userID, keyword string) (bool, error) {
	return s.addKeywordFn(ctx, userID, keyword)
}
func (s *prefsRepoStub) RemoveKeyword(ctx context.Context, userID, keyword string) error {
	return s.removeKeywordFn(ctx, userID, keyword)
}

func noopPrefsRepo() *prefsRepoStub {
	return &prefsRepoStub{
		getFn: func(_ context.Context, _ string) (models.Preferences, error) {
			return models.Preferences{BlockedUsernames: []string{}, FilteredKeywords: []string{}}, nil
		},
		blockFn:         func(_ context.Context, _, _ string) error { return nil },
		unblockFn:       func(_ context.Context, _, _ string) error { return nil },
		addKeywordFn:    func(_ context.Context, _, _ string) (bool, error) { return true, nil },
		removeKeywordFn: func(_ context.Context, _, _ string) error { return nil },
	}
}

// reportRepoStub is a stub for repository.ReportRepository.
type reportRepoStub struct {
	createFn       func(context.Context, *models.Report) error
	listByTargetFn func(context.Context, string) ([]*models.Report, error)
}

func (s *reportRepoStub) Create(ctx context.Context, r *models.Report) error {
	return s.createFn(ctx, r)
}
func (s *reportRepoStub) ListByTarget(ctx context.Context, targetID string) ([]*models.Report, error) {
	return s.listByTargetFn(ctx, targetID)
}

func noopReportRepo() *reportRepoStub {
	return &reportRepoStub{
		createFn:       func(_ context.Context, _ *models.Report) error { return nil },
		listByTargetFn: func(_ context.Context, _ string) ([]*models.Report, error) { return nil, nil },
	}
}

// favoriteRepoStub is a stub for repository.FavoriteRepository.
type favoriteRepoStub struct {
	addFn         func(context.Context, string, string) error
	removeFn      func(context.Context, string, string) error
	listPostIDsFn func(context.Context, string) ([]string, error)
}

func (s *favoriteRepoStub) Add(ctx context.Context, userID, postID string) error {
	return s.addFn(ctx, userID, postID)
}
func (s *favoriteRepoStub) Remove(ctx context.Context, userID, postID string) error {
	return s.removeFn(ctx, userID, postID)
}
func (s *favoriteRepoStub) ListPostIDs(ctx context.Context, userID string) ([]string, error) {
	return s.listPostIDsFn(ctx, userID)
}

func noopFavoriteRepo() *favoriteRepoStub {
	return &favoriteRepoStub{
		addFn:         func(_ context.Context, _, _ string) error { return nil },
		removeFn:      func(_ context.Context, _, _ string) error { return nil },
		listPostIDsFn: func(_ context.Context, _ string) ([]string, error) { return nil, nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	followFn      func(context.Context, string, string) error
	unfollowFn    func(context.Context, string, string) error
	isFollowingFn func(context.Context, string, string) (bool, error)
	listFn        func(context.Context, string) ([]models.Follow, error)
}

func (s *followRepoStub) Follow(ctx context.Context, userID, username string) error {
	return s.followFn(ctx, userID, username)
}
func (s *followRepoStub) Unfollow(ctx context.Context, userID, username string) error {
	return s.unfollowFn(ctx, userID, username)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, userID, username string) (bool, error) {
	return s.isFollowingFn(ctx, userID, username)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, userID string) ([]models.Follow, error) {
	return s.listFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:      func(_ context.Context, _, _ string) error { return nil },
		unfollowFn:    func(_ context.Context, _, _ string) error { return nil },
		isFollowingFn: func(_ context.Context, _, _ string) (bool, error) { return false, nil },
		listFn:        func(_ context.Context, _ string) ([]models.Follow, error) { return []models.Follow{}, nil },
	}
}

var (
	author    = models.Viewer{ID: "u1", Name: "Kofi"}
	stranger  = models.Viewer{ID: "u2", Name: "Ama"}
	moderator = models.Viewer{ID: "mod", Name: "Mod", Moderator: true}
	guest     = models.Viewer{ID: "g1", Guest: true}
)

func minutesAgo(n int) *time.Time {
	t := time.Now().UTC().Add(-time.Duration(n) * time.Minute)
	return &t
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeValidation)
}
