package service

import (
	"context"
	"strings"
	"time"

	"chika/internal/feed"
	"chika/internal/models"
	"chika/internal/repository"
)

const maxCommentLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	editWindow  time.Duration
	now         func() time.Time
}

type CreateCommentInput struct {
	Content         string  `json:"content"`
	ParentCommentID *string `json:"parent_comment_id"`
	ImageURL        string  `json:"image_url"`
	GifURL          string  `json:"gif_url"`
	StickerURL      string  `json:"sticker_url"`
}

type UpdateCommentInput struct {
	Content string `json:"content"`
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, editWindow time.Duration) *CommentService {
	if editWindow <= 0 {
		editWindow = feed.DefaultEditWindow
	}
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		editWindow:  editWindow,
		now:         time.Now,
	}
}

// CreateComment replies to a post, or to one of its comments when
// ParentCommentID is set.
func (s *CommentService) CreateComment(ctx context.Context, viewer models.Viewer, postID string, in CreateCommentInput) (*models.Comment, error) {
	if !viewer.CanAuthor() {
		return nil, models.NewUnauthorizedError("Sign in to comment")
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	imageURL := strings.TrimSpace(in.ImageURL)
	gifURL := strings.TrimSpace(in.GifURL)
	stickerURL := strings.TrimSpace(in.StickerURL)
	if content == "" && imageURL == "" && gifURL == "" && stickerURL == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	var parentID *string
	if in.ParentCommentID != nil && strings.TrimSpace(*in.ParentCommentID) != "" {
		id := strings.TrimSpace(*in.ParentCommentID)
		parent, err := s.commentRepo.GetByID(ctx, id)
		if err != nil {
			if models.ErrorCode(err) == models.CodeNotFound {
				return nil, models.NewValidationError("Parent comment not found")
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, models.NewValidationError("Parent comment belongs to another post")
		}
		parentID = &id
	}

	now := s.now().UTC()
	comment := &models.Comment{
		PostID:          postID,
		ParentCommentID: parentID,
		Author:          authorName(viewer),
		UserID:          viewer.ID,
		Content:         content,
		ImageURL:        imageURL,
		GifURL:          gifURL,
		StickerURL:      stickerURL,
		CreatedAt:       &now,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.RelativeTime = feed.RelativeTime(comment.CreatedAt, now)
	comment.CanEdit = true
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, viewer models.Viewer, commentID string, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !viewer.Owns(comment.UserID) {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	now := s.now().UTC()
	if !feed.CanEdit(comment.CreatedAt, now, s.editWindow) {
		return nil, models.NewForbiddenError("The edit window for this comment has closed")
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}
	comment.Content = content
	comment.UpdatedAt = &now

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	comment.RelativeTime = feed.RelativeTime(comment.CreatedAt, now)
	comment.CanEdit = true
	return comment, nil
}

// DeleteComment removes a comment. Authors delete their own; moderators delete any.
func (s *CommentService) DeleteComment(ctx context.Context, viewer models.Viewer, commentID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !viewer.Owns(comment.UserID) && !viewer.Moderator {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, comment)
}
