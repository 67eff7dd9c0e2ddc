// Package feed turns flat snapshots of posts and comments into what a
// viewer sees: stamped with relative times, stripped of blocked authors
// and filtered keywords, ordered by a named strategy, and, for comments,
// nested into reply trees.
//
// Everything here is a pure pass over its input. Nothing is cached and no
// input slice or record is modified, so the same snapshot can be fed
// through concurrently.
package feed

import (
	"time"

	"chika/internal/models"
)

// Record is a post or a comment.
type Record interface {
	*models.Post | *models.Comment
}

// Fields is the part of a record the filter and the sorters look at.
// Comments have no title or category and never carry a reply count.
type Fields struct {
	Author    string
	Title     string
	Body      string
	Category  string
	Likes     int
	Replies   int
	CreatedAt *time.Time
}

// FieldsOf extracts Fields from a record. A nil record yields zero Fields.
func FieldsOf[T Record](r T) Fields {
	switch v := any(r).(type) {
	case *models.Post:
		if v == nil {
			return Fields{}
		}
		return Fields{
			Author:    v.Author,
			Title:     v.Title,
			Body:      v.Content,
			Category:  v.Category,
			Likes:     v.Likes,
			Replies:   v.Replies,
			CreatedAt: v.CreatedAt,
		}
	case *models.Comment:
		if v == nil {
			return Fields{}
		}
		return Fields{
			Author:    v.Author,
			Body:      v.Content,
			Likes:     v.Likes,
			CreatedAt: v.CreatedAt,
		}
	}
	return Fields{}
}

func isNil[T Record](r T) bool {
	switch v := any(r).(type) {
	case *models.Post:
		return v == nil
	case *models.Comment:
		return v == nil
	}
	return true
}
