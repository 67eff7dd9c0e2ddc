// Package seed fills a development database with fake forum activity.
// It is intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chika/internal/database"
	"chika/internal/models"
	"chika/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much data Run creates.
type Options struct {
	Authors            int
	Posts              int
	MaxCommentsPerPost int
	// MaxDays spreads creation times over this many days back from now.
	MaxDays int
	// Seed makes the generated data reproducible; 0 picks a random seed.
	Seed int64
}

// DefaultOptions is a small but varied forum.
var DefaultOptions = Options{Authors: 20, Posts: 60, MaxCommentsPerPost: 12, MaxDays: 30}

// Summary counts what Run created.
type Summary struct {
	Posts    int
	Comments int
	Votes    int
}

// Seeder writes fake data through the repositories so counters stay consistent.
type Seeder struct {
	db       *gorm.DB
	opts     Options
	fake     *gofakeit.Faker
	posts    repository.PostRepository
	comments repository.CommentRepository
	votes    repository.VoteRepository
	now      time.Time
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.Authors <= 0 {
		opts.Authors = DefaultOptions.Authors
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = DefaultOptions.MaxDays
	}
	if opts.MaxCommentsPerPost < 0 {
		opts.MaxCommentsPerPost = 0
	}
	return &Seeder{
		db:       db,
		opts:     opts,
		fake:     gofakeit.New(opts.Seed),
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
		votes:    repository.NewVoteRepository(db),
		now:      time.Now().UTC(),
	}
}

// ClearAll deletes every row of every persistent model.
func (s *Seeder) ClearAll(ctx context.Context) error {
	for _, m := range database.PersistentModels() {
		if err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("clear %T: %w", m, err)
		}
	}
	slog.InfoContext(ctx, "cleared existing forum data")
	return nil
}

// Run creates authors' posts, threaded comments and votes.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	authors := s.authors()

	for i := 0; i < s.opts.Posts; i++ {
		author := authors[s.fake.Number(0, len(authors)-1)]
		post := s.buildPost(author)
		if err := s.posts.Create(ctx, post); err != nil {
			return sum, fmt.Errorf("create post: %w", err)
		}
		sum.Posts++

		n, err := s.seedComments(ctx, post, authors)
		sum.Comments += n
		if err != nil {
			return sum, err
		}

		v, err := s.seedVotes(ctx, models.TargetPost, post.ID, authors)
		sum.Votes += v
		if err != nil {
			return sum, err
		}
	}

	slog.InfoContext(ctx, "seeded forum",
		slog.Int("posts", sum.Posts),
		slog.Int("comments", sum.Comments),
		slog.Int("votes", sum.Votes),
	)
	return sum, nil
}

func (s *Seeder) authors() []models.Viewer {
	out := make([]models.Viewer, s.opts.Authors)
	for i := range out {
		out[i] = models.Viewer{
			ID:   s.fake.UUID(),
			Name: fmt.Sprintf("%s%d", s.fake.FirstName(), s.fake.Number(10, 99)),
		}
	}
	return out
}

func (s *Seeder) buildPost(author models.Viewer) *models.Post {
	created := s.pastInstant(s.now)
	post := &models.Post{
		Title:     s.fake.Sentence(s.fake.Number(3, 8)),
		Content:   s.fake.Paragraph(1, 3, 12, "\n"),
		Category:  s.fake.RandomString(models.Categories),
		Author:    author.Name,
		UserID:    author.ID,
		CreatedAt: &created,
	}
	if s.fake.Number(1, 5) == 1 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", s.fake.UUID())
	}
	return post
}

// seedComments adds comments in time order; later ones may answer earlier ones.
func (s *Seeder) seedComments(ctx context.Context, post *models.Post, authors []models.Viewer) (int, error) {
	if s.opts.MaxCommentsPerPost == 0 {
		return 0, nil
	}
	count := s.fake.Number(0, s.opts.MaxCommentsPerPost)
	created := make([]*models.Comment, 0, count)
	at := *post.CreatedAt

	for i := 0; i < count; i++ {
		author := authors[s.fake.Number(0, len(authors)-1)]
		at = at.Add(time.Duration(s.fake.Number(1, 180)) * time.Minute)
		if at.After(s.now) {
			at = s.now
		}
		when := at
		c := &models.Comment{
			PostID:    post.ID,
			Author:    author.Name,
			UserID:    author.ID,
			Content:   s.fake.Sentence(s.fake.Number(4, 20)),
			CreatedAt: &when,
		}
		if len(created) > 0 && s.fake.Bool() {
			parent := created[s.fake.Number(0, len(created)-1)].ID
			c.ParentCommentID = &parent
		}
		if err := s.comments.Create(ctx, c); err != nil {
			return len(created), fmt.Errorf("create comment: %w", err)
		}
		created = append(created, c)

		if _, err := s.seedVotes(ctx, models.TargetComment, c.ID, authors); err != nil {
			return len(created), err
		}
	}
	return len(created), nil
}

func (s *Seeder) seedVotes(ctx context.Context, targetType, targetID string, authors []models.Viewer) (int, error) {
	n := s.fake.Number(0, min(len(authors), 8))
	picked := make(map[string]struct{}, n)
	votes := 0
	for len(picked) < n {
		v := authors[s.fake.Number(0, len(authors)-1)]
		if _, ok := picked[v.ID]; ok {
			continue
		}
		picked[v.ID] = struct{}{}
		direction := models.VoteLike
		if s.fake.Number(1, 4) == 1 {
			direction = models.VoteDislike
		}
		if _, err := s.votes.Toggle(ctx, v.ID, targetType, targetID, direction); err != nil {
			return votes, fmt.Errorf("vote on %s %s: %w", targetType, targetID, err)
		}
		votes++
	}
	return votes, nil
}

func (s *Seeder) pastInstant(now time.Time) time.Time {
	back := time.Duration(s.fake.Number(0, s.opts.MaxDays*24*60)) * time.Minute
	return now.Add(-back)
}
