package repository

import (
	"context"
	"testing"
	"time"

	"chika/internal/models"
	"chika/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewTestDB(t)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func seedPost(t *testing.T, db *gorm.DB, id, userID string) *models.Post {
	t.Helper()
	now := time.Now().UTC()
	post := &models.Post{
		ID:        id,
		Title:     "title " + id,
		Content:   "body",
		Category:  models.DefaultCategory,
		Author:    "author-" + userID,
		UserID:    userID,
		CreatedAt: &now,
	}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), post))
	return post
}

func seedComment(t *testing.T, db *gorm.DB, id, postID string, parent *string) *models.Comment {
	t.Helper()
	c := &models.Comment{
		ID:              id,
		PostID:          postID,
		ParentCommentID: parent,
		Author:          "commenter",
		UserID:          "u-c",
		Content:         "reply " + id,
	}
	require.NoError(t, NewCommentRepository(db).Create(context.Background(), c))
	return c
}
