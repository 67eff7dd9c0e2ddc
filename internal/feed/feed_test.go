package feed

import (
	"time"

	"chika/internal/models"
)

var refNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func ago(d time.Duration) *time.Time {
	t := refNow.Add(-d)
	return &t
}

func strPtr(s string) *string {
	return &s
}

func post(id, author, title string) *models.Post {
	return &models.Post{ID: id, Author: author, Title: title, Category: models.DefaultCategory}
}

func comment(id string, parent *string) *models.Comment {
	return &models.Comment{ID: id, ParentCommentID: parent, Author: "anon", Content: "reply " + id}
}

func postIDs(posts []*models.Post) []string {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func commentIDs(comments []*models.Comment) []string {
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	return ids
}
