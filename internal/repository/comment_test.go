package repository

import (
	"context"
	"testing"
	"time"

	"chika/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateBumpsReplies(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedPost(t, db, "p1", "u1")

	seedComment(t, db, "c1", "p1", nil)
	parent := "c1"
	seedComment(t, db, "c2", "p1", &parent)

	post, err := NewPostRepository(db).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, post.Replies)

	got, err := NewCommentRepository(db).GetByID(ctx, "c2")
	require.NoError(t, err)
	require.NotNil(t, got.ParentCommentID)
	assert.Equal(t, "c1", *got.ParentCommentID)
	assert.NotNil(t, got.CreatedAt)
}

func TestCommentRepository_CreateOnMissingPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	err := repo.Create(context.Background(), &models.Comment{PostID: "nope", UserID: "u", Content: "hi"})
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCommentRepository_ListByPostOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	seedPost(t, db, "p1", "u1")

	later := time.Now().UTC()
	earlier := later.Add(-time.Minute)
	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "late", PostID: "p1", UserID: "u", CreatedAt: &later}))
	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "early", PostID: "p1", UserID: "u", CreatedAt: &earlier}))

	comments, err := repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "early", comments[0].ID)
	assert.Equal(t, "late", comments[1].ID)
}

func TestCommentRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	seedPost(t, db, "p1", "u1")
	c := seedComment(t, db, "c1", "p1", nil)

	now := time.Now().UTC()
	c.Content = "edited"
	c.UpdatedAt = &now
	require.NoError(t, repo.Update(ctx, c))
	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	_, err = NewVoteRepository(db).Toggle(ctx, "u9", models.TargetComment, "c1", models.VoteLike)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, c))

	_, err = repo.GetByID(ctx, "c1")
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))

	post, err := NewPostRepository(db).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, post.Replies)

	var votes int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&votes).Error)
	assert.Zero(t, votes)

	err = repo.Delete(ctx, c)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestCommentRepository_DeleteNeverGoesNegative(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	seedPost(t, db, "p1", "u1")
	c := seedComment(t, db, "c1", "p1", nil)

	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", "p1").UpdateColumn("replies", 0).Error)
	require.NoError(t, repo.Delete(ctx, c))

	post, err := NewPostRepository(db).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, post.Replies)
}
