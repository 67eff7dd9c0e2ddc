package service

import (
	"context"
	"strings"

	"chika/internal/models"
	"chika/internal/repository"
)

const maxReasonLen = 1000

type ReportService struct {
	reportRepo  repository.ReportRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

type CreateReportInput struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Reason     string `json:"reason"`
}

func NewReportService(
	reportRepo repository.ReportRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *ReportService {
	return &ReportService{reportRepo: reportRepo, postRepo: postRepo, commentRepo: commentRepo}
}

// CreateReport flags an existing post or comment for moderators.
func (s *ReportService) CreateReport(ctx context.Context, viewer models.Viewer, in CreateReportInput) (*models.Report, error) {
	if !viewer.SignedIn() {
		return nil, models.NewUnauthorizedError("Sign in to report content")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}
	if len(reason) > maxReasonLen {
		return nil, models.NewValidationError("Reason too long (max 1000 characters)")
	}

	var err error
	switch in.TargetType {
	case models.TargetPost:
		_, err = s.postRepo.GetByID(ctx, in.TargetID)
	case models.TargetComment:
		_, err = s.commentRepo.GetByID(ctx, in.TargetID)
	default:
		return nil, models.NewValidationError("Target type must be post or comment")
	}
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		ReportedBy: viewer.ID,
		TargetType: in.TargetType,
		TargetID:   in.TargetID,
		Reason:     reason,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
