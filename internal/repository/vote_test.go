package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"chika/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteRepository_Toggle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()
	seedPost(t, db, "p1", "u1")

	tests := []struct {
		name      string
		userID    string
		direction string
		outcome   VoteOutcome
		current   string
		likes     int
		dislikes  int
	}{
		{"first like creates", "u2", models.VoteLike, VoteCreated, models.VoteLike, 1, 0},
		{"second voter dislikes", "u3", models.VoteDislike, VoteCreated, models.VoteDislike, 1, 1},
		{"same direction removes", "u2", models.VoteLike, VoteRemoved, "", 0, 1},
		{"like again", "u2", models.VoteLike, VoteCreated, models.VoteLike, 1, 1},
		{"opposite flips", "u2", models.VoteDislike, VoteFlipped, models.VoteDislike, 0, 2},
		{"flip back", "u2", models.VoteLike, VoteFlipped, models.VoteLike, 1, 1},
	}

	// steps build on each other, so they run in order
	for _, tt := range tests {
		res, err := repo.Toggle(ctx, tt.userID, models.TargetPost, "p1", tt.direction)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.outcome, res.Outcome, tt.name)
		assert.Equal(t, tt.current, res.Direction, tt.name)
		assert.Equal(t, tt.likes, res.Likes, tt.name)
		assert.Equal(t, tt.dislikes, res.Dislikes, tt.name)
	}

	post, err := NewPostRepository(db).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, post.Likes)
	assert.Equal(t, 1, post.Dislikes)

	var rows int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&rows).Error)
	assert.Equal(t, int64(2), rows, "one row per voter")
}

func TestVoteRepository_ToggleComment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()
	seedPost(t, db, "p1", "u1")
	seedComment(t, db, "c1", "p1", nil)

	res, err := repo.Toggle(ctx, "u2", models.TargetComment, "c1", models.VoteDislike)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Dislikes)

	post, err := NewPostRepository(db).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, post.Dislikes, "comment votes do not touch the post")
}

func TestVoteRepository_ToggleMissingTarget(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)

	_, err := repo.Toggle(context.Background(), "u2", models.TargetPost, "nope", models.VoteLike)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))

	_, err = repo.Toggle(context.Background(), "u2", "thread", "nope", models.VoteLike)
	assert.Error(t, err)
}

func TestVoteRepository_Directions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()
	seedPost(t, db, "p1", "u1")
	seedPost(t, db, "p2", "u1")

	_, err := repo.Toggle(ctx, "u2", models.TargetPost, "p1", models.VoteDislike)
	require.NoError(t, err)

	got, err := repo.Directions(ctx, "u2", []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"p1": models.VoteDislike}, got)

	got, err = repo.Directions(ctx, "", []string{"p1"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVoteRepository_ToggleRollsBack(t *testing.T) {
	t.Run("target lookup fails", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewVoteRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM "posts"`).WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err := repo.Toggle(context.Background(), "u2", models.TargetPost, "p1", models.VoteLike)
		assert.EqualError(t, err, "connection reset")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("vote insert fails", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewVoteRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM "posts"`).
			WillReturnRows(sqlmock.NewRows([]string{"likes", "dislikes"}).AddRow(3, 1))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "votes"`)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "target_id"}))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "votes"`)).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		_, err := repo.Toggle(context.Background(), "u2", models.TargetPost, "p1", models.VoteLike)
		assert.EqualError(t, err, "disk full")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
