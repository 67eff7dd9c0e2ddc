package service

import (
	"context"

	"chika/internal/models"
	"chika/internal/observability"
	"chika/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// VoteService toggles likes and dislikes. Each toggle and its counter update share one transaction.
type VoteService struct {
	voteRepo repository.VoteRepository
}

func NewVoteService(voteRepo repository.VoteRepository) *VoteService {
	return &VoteService{voteRepo: voteRepo}
}

// Vote toggles viewer's like or dislike on a post or comment.
func (s *VoteService) Vote(ctx context.Context, viewer models.Viewer, targetType, targetID, direction string) (*repository.VoteResult, error) {
	if !viewer.SignedIn() {
		return nil, models.NewUnauthorizedError("Sign in to vote")
	}
	if !models.IsVoteTarget(targetType) {
		return nil, models.NewValidationError("Invalid vote target")
	}
	if !models.IsVoteDirection(direction) {
		return nil, models.NewValidationError("Direction must be like or dislike")
	}

	span, ctx := observability.NewSpan(ctx, "vote.toggle",
		attribute.String("vote.target", targetType),
		attribute.String("vote.direction", direction),
	)
	defer span.End()

	result, err := s.voteRepo.Toggle(ctx, viewer.ID, targetType, targetID, direction)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	observability.VoteOutcomes.WithLabelValues(targetType, string(result.Outcome)).Inc()
	return result, nil
}
