// Package importer loads a JSON export of the legacy document store into the
// relational schema.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"chika/internal/feed"
	"chika/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 200

// Export is the document store dump, one collection per field.
type Export struct {
	Threads  []feed.Document `json:"threads"`
	Comments []feed.Document `json:"comments"`
	Votes    []feed.Document `json:"votes"`
}

// Options tunes an import run.
type Options struct {
	// Recount rebuilds replies, likes and dislikes from the imported rows
	// instead of trusting the stored counters.
	Recount bool
}

// Summary reports how many documents were written or skipped per collection.
type Summary struct {
	Posts           int
	Comments        int
	Votes           int
	SkippedPosts    int
	SkippedComments int
	SkippedVotes    int
}

// Load reads an Export from r. Numbers are kept as json.Number so large
// timestamps survive decoding.
func Load(r io.Reader) (*Export, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var exp Export
	if err := dec.Decode(&exp); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return &exp, nil
}

// Import decodes every document and upserts the results in one transaction.
// Documents that cannot be decoded are logged and skipped.
func Import(ctx context.Context, db *gorm.DB, exp *Export, opts Options) (Summary, error) {
	var sum Summary

	posts := make([]*models.Post, 0, len(exp.Threads))
	for _, doc := range exp.Threads {
		p, err := feed.DecodePost(doc)
		if err != nil {
			skip(ctx, "thread", doc, err)
			sum.SkippedPosts++
			continue
		}
		posts = append(posts, p)
	}

	comments := make([]*models.Comment, 0, len(exp.Comments))
	for _, doc := range exp.Comments {
		c, err := feed.DecodeComment(doc)
		if err == nil && c.PostID == "" {
			err = fmt.Errorf("comment %s has no threadId", c.ID)
		}
		if err != nil {
			skip(ctx, "comment", doc, err)
			sum.SkippedComments++
			continue
		}
		comments = append(comments, c)
	}

	votes := make([]*models.Vote, 0, len(exp.Votes))
	for _, doc := range exp.Votes {
		v, err := feed.DecodeVote(doc)
		if err != nil {
			skip(ctx, "vote", doc, err)
			sum.SkippedVotes++
			continue
		}
		votes = append(votes, v)
	}

	// Inserts stamp missing creation times with now; unknown must stay unknown.
	undatedPostIDs, undatedCommentIDs := undatedPosts(posts), undatedComments(comments)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(posts) > 0 {
			if err := upsert(tx).CreateInBatches(posts, batchSize).Error; err != nil {
				return fmt.Errorf("insert posts: %w", err)
			}
		}
		if len(comments) > 0 {
			if err := upsert(tx).CreateInBatches(comments, batchSize).Error; err != nil {
				return fmt.Errorf("insert comments: %w", err)
			}
		}
		if len(votes) > 0 {
			if err := upsert(tx).CreateInBatches(votes, batchSize).Error; err != nil {
				return fmt.Errorf("insert votes: %w", err)
			}
		}
		if len(undatedPostIDs) > 0 {
			if err := tx.Model(&models.Post{}).Where("id IN ?", undatedPostIDs).UpdateColumn("created_at", nil).Error; err != nil {
				return fmt.Errorf("clear post times: %w", err)
			}
		}
		if len(undatedCommentIDs) > 0 {
			if err := tx.Model(&models.Comment{}).Where("id IN ?", undatedCommentIDs).UpdateColumn("created_at", nil).Error; err != nil {
				return fmt.Errorf("clear comment times: %w", err)
			}
		}
		if opts.Recount {
			return recount(tx)
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	sum.Posts, sum.Comments, sum.Votes = len(posts), len(comments), len(votes)
	slog.InfoContext(ctx, "import finished",
		slog.Int("posts", sum.Posts),
		slog.Int("comments", sum.Comments),
		slog.Int("votes", sum.Votes),
		slog.Int("skipped", sum.SkippedPosts+sum.SkippedComments+sum.SkippedVotes),
	)
	return sum, nil
}

func upsert(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.OnConflict{UpdateAll: true})
}

func recount(tx *gorm.DB) error {
	all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})

	err := all.Model(&models.Post{}).UpdateColumns(map[string]any{
		"replies":  gorm.Expr("(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id)"),
		"likes":    gorm.Expr("(SELECT COUNT(*) FROM votes WHERE votes.target_id = posts.id AND votes.direction = ?)", models.VoteLike),
		"dislikes": gorm.Expr("(SELECT COUNT(*) FROM votes WHERE votes.target_id = posts.id AND votes.direction = ?)", models.VoteDislike),
	}).Error
	if err != nil {
		return fmt.Errorf("recount posts: %w", err)
	}

	err = all.Model(&models.Comment{}).UpdateColumns(map[string]any{
		"likes":    gorm.Expr("(SELECT COUNT(*) FROM votes WHERE votes.target_id = comments.id AND votes.direction = ?)", models.VoteLike),
		"dislikes": gorm.Expr("(SELECT COUNT(*) FROM votes WHERE votes.target_id = comments.id AND votes.direction = ?)", models.VoteDislike),
	}).Error
	if err != nil {
		return fmt.Errorf("recount comments: %w", err)
	}
	return nil
}

func undatedPosts(posts []*models.Post) []string {
	var ids []string
	for _, p := range posts {
		if p.CreatedAt == nil {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func undatedComments(comments []*models.Comment) []string {
	var ids []string
	for _, c := range comments {
		if c.CreatedAt == nil {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func skip(ctx context.Context, kind string, doc feed.Document, err error) {
	slog.WarnContext(ctx, "skipping undecodable document",
		slog.String("kind", kind),
		slog.Any("id", doc["id"]),
		slog.String("error", err.Error()),
	)
}
