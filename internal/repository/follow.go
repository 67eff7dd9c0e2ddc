package repository

import (
	"context"
	"errors"

	"chika/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	Follow(ctx context.Context, userID, username string) error
	Unfollow(ctx context.Context, userID, username string) error
	IsFollowing(ctx context.Context, userID, username string) (bool, error)
	ListFollowing(ctx context.Context, userID string) ([]models.Follow, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow is idempotent.
func (r *followRepository) Follow(ctx context.Context, userID, username string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{UserID: userID, FollowedUsername: username}).Error
}

func (r *followRepository) Unfollow(ctx context.Context, userID, username string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND followed_username = ?", userID, username).
		Delete(&models.Follow{}).Error
}

func (r *followRepository) IsFollowing(ctx context.Context, userID, username string) (bool, error) {
	var follow models.Follow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND followed_username = ?", userID, username).
		Take(&follow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// ListFollowing returns who userID follows, most recently followed first.
func (r *followRepository) ListFollowing(ctx context.Context, userID string) ([]models.Follow, error) {
	follows := []models.Follow{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&follows).Error
	return follows, err
}
