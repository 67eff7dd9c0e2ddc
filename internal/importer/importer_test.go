package importer

import (
	"context"
	"strings"
	"testing"

	"chika/internal/models"
	"chika/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportJSON = `{
  "threads": [
    {"id": "t1", "title": "Exam tips", "category": "School", "author": "kofi", "userId": "u1",
     "content": "bring pencils", "likes": 9, "replies": 7,
     "createdAt": {"_seconds": 1709281800, "_nanoseconds": 0}},
    {"id": "t2", "title": "Lost cat", "category": "Pets", "author": "ama", "userId": "u2",
     "createdAt": {"_methodName": "serverTimestamp"}},
    {"title": "no id"}
  ],
  "comments": [
    {"id": "c1", "threadId": "t1", "author": "ama", "userId": "u2", "content": "thanks",
     "createdAt": "2024-03-01T09:00:00Z"},
    {"id": "c2", "threadId": "t1", "parentCommentId": "c1", "author": "kofi", "userId": "u1", "content": "np"},
    {"id": "c3", "threadId": "t1", "parentCommentId": "", "author": "esi", "userId": "u3", "content": "same"},
    {"id": "c4", "author": "esi", "content": "where am I"}
  ],
  "votes": [
    {"id": "u2_t1", "userId": "u2", "targetId": "t1", "targetType": "thread", "voteType": "like"},
    {"id": "u3_t1", "userId": "u3", "targetId": "t1", "targetType": "thread", "voteType": "dislike"},
    {"id": "u1_c1", "userId": "u1", "targetId": "c1", "targetType": "comment", "voteType": "like"},
    {"id": "u9_t1", "userId": "u9", "targetId": "t1", "targetType": "thread", "voteType": "meh"}
  ]
}`

func load(t *testing.T) *Export {
	t.Helper()
	exp, err := Load(strings.NewReader(exportJSON))
	require.NoError(t, err)
	return exp
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(strings.NewReader(`{"threads": [`))
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	sum, err := Import(ctx, db, load(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, Summary{
		Posts: 2, Comments: 3, Votes: 3,
		SkippedPosts: 1, SkippedComments: 1, SkippedVotes: 1,
	}, sum)

	var t1, t2 models.Post
	require.NoError(t, db.Take(&t1, "id = ?", "t1").Error)
	require.NoError(t, db.Take(&t2, "id = ?", "t2").Error)

	assert.Equal(t, 9, t1.Likes, "stored counters are kept without recount")
	assert.Equal(t, 7, t1.Replies)
	require.NotNil(t, t1.CreatedAt)
	assert.Equal(t, int64(1709281800), t1.CreatedAt.Unix())

	assert.Equal(t, models.DefaultCategory, t2.Category)
	assert.Nil(t, t2.CreatedAt, "pending timestamps stay unknown")

	var c2, c3 models.Comment
	require.NoError(t, db.Take(&c2, "id = ?", "c2").Error)
	require.NoError(t, db.Take(&c3, "id = ?", "c3").Error)
	require.NotNil(t, c2.ParentCommentID)
	assert.Equal(t, "c1", *c2.ParentCommentID)
	assert.Nil(t, c3.ParentCommentID, "empty parent means top level")
	assert.Nil(t, c3.CreatedAt)

	var vote models.Vote
	require.NoError(t, db.Take(&vote, "user_id = ? AND target_id = ?", "u2", "t1").Error)
	assert.Equal(t, models.TargetPost, vote.TargetType)
}

func TestImport_Recount(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := Import(ctx, db, load(t), Options{Recount: true})
	require.NoError(t, err)

	var t1 models.Post
	require.NoError(t, db.Take(&t1, "id = ?", "t1").Error)
	assert.Equal(t, 3, t1.Replies)
	assert.Equal(t, 1, t1.Likes)
	assert.Equal(t, 1, t1.Dislikes)

	var c1 models.Comment
	require.NoError(t, db.Take(&c1, "id = ?", "c1").Error)
	assert.Equal(t, 1, c1.Likes)
	assert.Equal(t, 0, c1.Dislikes)
}

func TestImport_IsRepeatable(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := Import(ctx, db, load(t), Options{})
	require.NoError(t, err)

	exp := load(t)
	exp.Threads[0]["title"] = "Exam tips (updated)"
	_, err = Import(ctx, db, exp, Options{})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var t1 models.Post
	require.NoError(t, db.Take(&t1, "id = ?", "t1").Error)
	assert.Equal(t, "Exam tips (updated)", t1.Title)
}
