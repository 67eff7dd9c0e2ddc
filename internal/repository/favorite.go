package repository

import (
	"context"

	"chika/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository stores bookmarked posts.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, postID string) error
	Remove(ctx context.Context, userID, postID string) error
	ListPostIDs(ctx context.Context, userID string) ([]string, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add is idempotent.
func (r *favoriteRepository) Add(ctx context.Context, userID, postID string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Favorite{UserID: userID, PostID: postID}).Error
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, postID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Favorite{}).Error
}

// ListPostIDs returns the user's favorite post ids, most recently added first.
func (r *favoriteRepository) ListPostIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).Order("created_at DESC").Pluck("post_id", &ids).Error
	return ids, err
}
