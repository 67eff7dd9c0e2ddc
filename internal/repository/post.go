// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"chika/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, category string) ([]*models.Post, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, author string) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&post).Error; err != nil {
		return nil, notFound(err, "Post", id)
	}
	return &post, nil
}

// List returns posts newest first. An empty category or models.AllCategories lists every post.
func (r *postRepository) List(ctx context.Context, category string) ([]*models.Post, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if category != "" && category != models.AllCategories {
		q = q.Where("category = ?", category)
	}
	var posts []*models.Post
	err := q.Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Post, error) {
	var posts []*models.Post
	if len(ids) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// ListByAuthor returns the posts written under a display name, newest first.
func (r *postRepository) ListByAuthor(ctx context.Context, author string) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).Where("author = ?", author).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]any{
		"title":      post.Title,
		"content":    post.Content,
		"category":   post.Category,
		"image_url":  post.ImageURL,
		"updated_at": post.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", post.ID)
	}
	return nil
}

// Delete removes a post with its comments, the votes on both, and favorites, in one transaction.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var targets []string
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", id).Pluck("id", &targets).Error; err != nil {
			return err
		}
		targets = append(targets, id)

		if err := tx.Where("target_id IN ?", targets).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return nil
	})
}

// notFound converts gorm.ErrRecordNotFound into a NOT_FOUND AppError.
func notFound(err error, resource, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}
