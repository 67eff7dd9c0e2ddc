package repository

import (
	"context"

	"chika/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferencesRepository stores each viewer's blocked authors and filtered keywords.
type PreferencesRepository interface {
	Get(ctx context.Context, userID string) (models.Preferences, error)
	Block(ctx context.Context, userID, username string) error
	Unblock(ctx context.Context, userID, username string) error
	AddKeyword(ctx context.Context, userID, keyword string) (bool, error)
	RemoveKeyword(ctx context.Context, userID, keyword string) error
}

type preferencesRepository struct {
	db *gorm.DB
}

// NewPreferencesRepository creates a new PreferencesRepository
func NewPreferencesRepository(db *gorm.DB) PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) Get(ctx context.Context, userID string) (models.Preferences, error) {
	prefs := models.Preferences{BlockedUsernames: []string{}, FilteredKeywords: []string{}}
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.BlockedAuthor{}).Where("user_id = ?", userID).
		Order("created_at ASC").Pluck("blocked_username", &prefs.BlockedUsernames).Error; err != nil {
		return models.Preferences{}, err
	}
	if err := db.Model(&models.FilteredKeyword{}).Where("user_id = ?", userID).
		Order("created_at ASC").Pluck("keyword", &prefs.FilteredKeywords).Error; err != nil {
		return models.Preferences{}, err
	}
	return prefs, nil
}

// Block is idempotent.
func (r *preferencesRepository) Block(ctx context.Context, userID, username string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.BlockedAuthor{UserID: userID, BlockedUsername: username}).Error
}

func (r *preferencesRepository) Unblock(ctx context.Context, userID, username string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND blocked_username = ?", userID, username).
		Delete(&models.BlockedAuthor{}).Error
}

// AddKeyword stores keyword as given and reports whether it was new.
func (r *preferencesRepository) AddKeyword(ctx context.Context, userID, keyword string) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.FilteredKeyword{UserID: userID, Keyword: keyword})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *preferencesRepository) RemoveKeyword(ctx context.Context, userID, keyword string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND keyword = ?", userID, keyword).
		Delete(&models.FilteredKeyword{}).Error
}
