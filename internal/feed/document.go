package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"chika/internal/models"

	"github.com/go-viper/mapstructure/v2"
)

// Document is a loosely typed record as exported from the document store.
// The document identifier lives under "id".
type Document map[string]any

// ErrMissingID is returned when a document has no usable identifier.
var ErrMissingID = errors.New("document has no id")

type postDocument struct {
	Title    string `mapstructure:"title"`
	Category string `mapstructure:"category"`
	Author   string `mapstructure:"author"`
	UserID   string `mapstructure:"userId"`
	Content  string `mapstructure:"content"`
	ImageURL string `mapstructure:"imageUrl"`
	Likes    int    `mapstructure:"likes"`
	Dislikes int    `mapstructure:"dislikes"`
	Replies  int    `mapstructure:"replies"`
}

type commentDocument struct {
	ThreadID        string  `mapstructure:"threadId"`
	ParentCommentID *string `mapstructure:"parentCommentId"`
	Author          string  `mapstructure:"author"`
	UserID          string  `mapstructure:"userId"`
	Content         string  `mapstructure:"content"`
	ImageURL        string  `mapstructure:"imageUrl"`
	GifURL          string  `mapstructure:"gifUrl"`
	StickerURL      string  `mapstructure:"stickerUrl"`
	Likes           int     `mapstructure:"likes"`
	Dislikes        int     `mapstructure:"dislikes"`
}

type voteDocument struct {
	UserID     string `mapstructure:"userId"`
	TargetID   string `mapstructure:"targetId"`
	TargetType string `mapstructure:"targetType"`
	VoteType   string `mapstructure:"voteType"`
}

// DecodePost converts a thread document into a Post. Counts that are
// missing or negative become zero, an unknown category falls back to
// models.DefaultCategory and an unreadable createdAt stays nil.
func DecodePost(doc Document) (*models.Post, error) {
	id, err := doc.id()
	if err != nil {
		return nil, err
	}
	var raw postDocument
	if err := decode(doc, &raw); err != nil {
		return nil, fmt.Errorf("decode thread %s: %w", id, err)
	}

	category := raw.Category
	if !models.IsCategory(category) {
		category = models.DefaultCategory
	}

	return &models.Post{
		ID:        id,
		Title:     raw.Title,
		Content:   raw.Content,
		Category:  category,
		Author:    raw.Author,
		UserID:    raw.UserID,
		ImageURL:  raw.ImageURL,
		Likes:     nonNegative(raw.Likes),
		Dislikes:  nonNegative(raw.Dislikes),
		Replies:   nonNegative(raw.Replies),
		CreatedAt: ParseInstant(doc["createdAt"]),
		UpdatedAt: ParseInstant(doc["updatedAt"]),
	}, nil
}

// DecodeComment converts a comment document into a Comment. An empty
// parentCommentId is treated as a direct reply to the thread.
func DecodeComment(doc Document) (*models.Comment, error) {
	id, err := doc.id()
	if err != nil {
		return nil, err
	}
	var raw commentDocument
	if err := decode(doc, &raw); err != nil {
		return nil, fmt.Errorf("decode comment %s: %w", id, err)
	}

	parent := raw.ParentCommentID
	if parent != nil && *parent == "" {
		parent = nil
	}

	return &models.Comment{
		ID:              id,
		PostID:          raw.ThreadID,
		ParentCommentID: parent,
		Author:          raw.Author,
		UserID:          raw.UserID,
		Content:         raw.Content,
		ImageURL:        raw.ImageURL,
		GifURL:          raw.GifURL,
		StickerURL:      raw.StickerURL,
		Likes:           nonNegative(raw.Likes),
		Dislikes:        nonNegative(raw.Dislikes),
		CreatedAt:       ParseInstant(doc["createdAt"]),
		UpdatedAt:       ParseInstant(doc["updatedAt"]),
	}, nil
}

// DecodeVote converts a vote document into a Vote. Vote documents are
// keyed "<voter>_<target>" in the store but the fields are authoritative.
// The legacy "thread" target type maps to models.TargetPost.
func DecodeVote(doc Document) (*models.Vote, error) {
	var raw voteDocument
	if err := decode(doc, &raw); err != nil {
		return nil, fmt.Errorf("decode vote: %w", err)
	}
	if raw.UserID == "" || raw.TargetID == "" {
		return nil, ErrMissingID
	}

	target := raw.TargetType
	if target == "thread" {
		target = models.TargetPost
	}
	if !models.IsVoteTarget(target) {
		return nil, fmt.Errorf("vote %s_%s: unknown target type %q", raw.UserID, raw.TargetID, raw.TargetType)
	}
	if !models.IsVoteDirection(raw.VoteType) {
		return nil, fmt.Errorf("vote %s_%s: unknown vote type %q", raw.UserID, raw.TargetID, raw.VoteType)
	}

	return &models.Vote{
		UserID:     raw.UserID,
		TargetID:   raw.TargetID,
		TargetType: target,
		Direction:  raw.VoteType,
		CreatedAt:  ParseInstant(doc["createdAt"]),
	}, nil
}

// ParseInstant reads a creation instant in any of the shapes the store
// produces: a time.Time, a {seconds, nanoseconds} map (also the
// underscore-prefixed admin export form) or an RFC 3339 string. Pending
// server timestamps and anything unreadable yield nil.
func ParseInstant(v any) *time.Time {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return &t
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil
		}
		cp := *t
		return &cp
	case map[string]any:
		return instantFromMap(t)
	case Document:
		return instantFromMap(t)
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(t))
		if err != nil {
			return nil
		}
		return &parsed
	}
	return nil
}

func instantFromMap(m map[string]any) *time.Time {
	secs, ok := number(first(m, "seconds", "_seconds"))
	if !ok {
		return nil
	}
	nanos, _ := number(first(m, "nanoseconds", "_nanoseconds"))
	t := time.Unix(int64(secs), int64(nanos)).UTC()
	return &t
}

func first(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func (d Document) id() (string, error) {
	raw, ok := d["id"]
	if !ok || raw == nil {
		return "", ErrMissingID
	}
	id := strings.TrimSpace(fmt.Sprint(raw))
	if id == "" {
		return "", ErrMissingID
	}
	return id, nil
}

func decode(doc Document, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(doc))
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
