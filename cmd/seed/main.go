// Command main fills the configured database with fake forum data.
package main

import (
	"context"
	"flag"
	"log"

	"chika/internal/config"
	"chika/internal/database"
	"chika/internal/seed"
)

func main() {
	opts := seed.DefaultOptions
	flag.IntVar(&opts.Authors, "authors", opts.Authors, "Number of distinct authors")
	flag.IntVar(&opts.Posts, "posts", opts.Posts, "Number of posts to create")
	flag.IntVar(&opts.MaxCommentsPerPost, "comments", opts.MaxCommentsPerPost, "Maximum comments per post")
	flag.IntVar(&opts.MaxDays, "days", opts.MaxDays, "Spread creation times over this many days")
	flag.Int64Var(&opts.Seed, "seed", 0, "Random seed (0 for a random one)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Target: %d authors, %d posts, clean=%v", opts.Authors, opts.Posts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	s := seed.NewSeeder(db, opts)

	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	sum, err := s.Run(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Done: %d posts, %d comments, %d votes", sum.Posts, sum.Comments, sum.Votes)
}
