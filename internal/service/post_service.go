package service

import (
	"context"
	"strings"
	"time"

	"chika/internal/feed"
	"chika/internal/models"
	"chika/internal/repository"
)

const (
	maxTitleLen   = 300
	maxContentLen = 50000
)

// anonymousAuthor is shown for accounts without a display name.
const anonymousAuthor = "Anonymous"

type PostService struct {
	postRepo   repository.PostRepository
	editWindow time.Duration
	now        func() time.Time
}

type CreatePostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}

// UpdatePostInput replaces the fields that are non-empty.
type UpdatePostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}

func NewPostService(postRepo repository.PostRepository, editWindow time.Duration) *PostService {
	if editWindow <= 0 {
		editWindow = feed.DefaultEditWindow
	}
	return &PostService{postRepo: postRepo, editWindow: editWindow, now: time.Now}
}

func (s *PostService) CreatePost(ctx context.Context, viewer models.Viewer, in CreatePostInput) (*models.Post, error) {
	if !viewer.CanAuthor() {
		return nil, models.NewUnauthorizedError("Sign in to create posts")
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = models.DefaultCategory
	}
	if !models.IsCategory(category) {
		return nil, models.NewValidationError("Invalid category")
	}

	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	imageURL := strings.TrimSpace(in.ImageURL)
	if title == "" && content == "" && imageURL == "" {
		return nil, models.NewValidationError("A post needs a title, content or an image")
	}
	if err := checkPostLengths(title, content); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	post := &models.Post{
		Title:     title,
		Content:   content,
		Category:  category,
		ImageURL:  imageURL,
		Author:    authorName(viewer),
		UserID:    viewer.ID,
		CreatedAt: &now,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	post.RelativeTime = feed.RelativeTime(post.CreatedAt, now)
	post.CanEdit = true
	return post, nil
}

// UpdatePost edits a post owned by viewer while its edit window is open.
func (s *PostService) UpdatePost(ctx context.Context, viewer models.Viewer, postID string, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !viewer.Owns(post.UserID) {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}
	now := s.now().UTC()
	if !feed.CanEdit(post.CreatedAt, now, s.editWindow) {
		return nil, models.NewForbiddenError("The edit window for this post has closed")
	}

	if v := strings.TrimSpace(in.Title); v != "" {
		post.Title = v
	}
	if v := strings.TrimSpace(in.Content); v != "" {
		post.Content = v
	}
	if v := strings.TrimSpace(in.ImageURL); v != "" {
		post.ImageURL = v
	}
	if v := strings.TrimSpace(in.Category); v != "" {
		if !models.IsCategory(v) {
			return nil, models.NewValidationError("Invalid category")
		}
		post.Category = v
	}
	if err := checkPostLengths(post.Title, post.Content); err != nil {
		return nil, err
	}
	post.UpdatedAt = &now

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	post.RelativeTime = feed.RelativeTime(post.CreatedAt, now)
	post.CanEdit = true
	return post, nil
}

// DeletePost removes a post. Authors delete their own posts; moderators delete any.
func (s *PostService) DeletePost(ctx context.Context, viewer models.Viewer, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !viewer.Owns(post.UserID) && !viewer.Moderator {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

func checkPostLengths(title, content string) error {
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError("Content too long (max 50000 characters)")
	}
	return nil
}

func authorName(viewer models.Viewer) string {
	if name := strings.TrimSpace(viewer.Name); name != "" {
		return name
	}
	return anonymousAuthor
}
