package repository

import (
	"context"
	"errors"
	"fmt"

	"chika/internal/models"

	"gorm.io/gorm"
)

// VoteOutcome says what a toggle did to the viewer's vote.
type VoteOutcome string

// Toggle outcomes.
const (
	VoteCreated VoteOutcome = "created"
	VoteRemoved VoteOutcome = "removed"
	VoteFlipped VoteOutcome = "flipped"
)

// VoteResult is the state of a target after a toggle.
type VoteResult struct {
	Outcome VoteOutcome `json:"outcome"`
	// Direction is the viewer's vote after the toggle, "" when removed.
	Direction string `json:"direction"`
	Likes     int    `json:"likes"`
	Dislikes  int    `json:"dislikes"`
}

// VoteRepository defines vote persistence.
type VoteRepository interface {
	Toggle(ctx context.Context, userID, targetType, targetID, direction string) (*VoteResult, error)
	Directions(ctx context.Context, userID string, targetIDs []string) (map[string]string, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// counters is the part of a post or comment row a toggle touches.
type counters struct {
	Likes    int
	Dislikes int
}

func targetModel(targetType string) (any, string, error) {
	switch targetType {
	case models.TargetPost:
		return &models.Post{}, "Post", nil
	case models.TargetComment:
		return &models.Comment{}, "Comment", nil
	}
	return nil, "", fmt.Errorf("unknown vote target %q", targetType)
}

func counterColumn(direction string) string {
	if direction == models.VoteDislike {
		return "dislikes"
	}
	return "likes"
}

// Toggle applies a like or dislike from userID to a target. Voting the
// same direction again removes the vote; voting the other direction flips
// it. The vote row and the target's counters change in one transaction.
func (r *voteRepository) Toggle(ctx context.Context, userID, targetType, targetID, direction string) (*VoteResult, error) {
	model, resource, err := targetModel(targetType)
	if err != nil {
		return nil, err
	}

	var result VoteResult
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c counters
		if err := tx.Model(model).Select("likes", "dislikes").Where("id = ?", targetID).Take(&c).Error; err != nil {
			return notFound(err, resource, targetID)
		}

		var existing models.Vote
		err := tx.Where("user_id = ? AND target_id = ?", userID, targetID).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := &models.Vote{UserID: userID, TargetID: targetID, TargetType: targetType, Direction: direction}
			if err := tx.Create(vote).Error; err != nil {
				return err
			}
			if err := bump(tx, model, targetID, map[string]any{counterColumn(direction): increment(counterColumn(direction))}); err != nil {
				return err
			}
			result.Outcome, result.Direction = VoteCreated, direction

		case err != nil:
			return err

		case existing.Direction == direction:
			if err := tx.Where("user_id = ? AND target_id = ?", userID, targetID).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if err := bump(tx, model, targetID, map[string]any{counterColumn(direction): decrement(counterColumn(direction))}); err != nil {
				return err
			}
			result.Outcome = VoteRemoved

		default:
			if err := tx.Model(&models.Vote{}).Where("user_id = ? AND target_id = ?", userID, targetID).
				Update("direction", direction).Error; err != nil {
				return err
			}
			if err := bump(tx, model, targetID, map[string]any{
				counterColumn(existing.Direction): decrement(counterColumn(existing.Direction)),
				counterColumn(direction):          increment(counterColumn(direction)),
			}); err != nil {
				return err
			}
			result.Outcome, result.Direction = VoteFlipped, direction
		}

		if err := tx.Model(model).Select("likes", "dislikes").Where("id = ?", targetID).Take(&c).Error; err != nil {
			return err
		}
		result.Likes, result.Dislikes = c.Likes, c.Dislikes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func bump(tx *gorm.DB, model any, id string, cols map[string]any) error {
	return tx.Model(model).Where("id = ?", id).UpdateColumns(cols).Error
}

// Directions returns userID's vote direction for each of targetIDs that has one.
func (r *voteRepository) Directions(ctx context.Context, userID string, targetIDs []string) (map[string]string, error) {
	out := make(map[string]string)
	if userID == "" || len(targetIDs) == 0 {
		return out, nil
	}
	var votes []models.Vote
	if err := r.db.WithContext(ctx).Where("user_id = ? AND target_id IN ?", userID, targetIDs).Find(&votes).Error; err != nil {
		return nil, err
	}
	for _, v := range votes {
		out[v.TargetID] = v.Direction
	}
	return out, nil
}
