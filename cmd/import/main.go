// Command main loads a JSON export of the legacy document store into the database.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"chika/internal/config"
	"chika/internal/database"
	"chika/internal/importer"
)

func main() {
	path := flag.String("file", "export.json", "Path to the JSON export")
	recount := flag.Bool("recount", false, "Rebuild reply and vote counters from imported rows")
	flag.Parse()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Failed to open export: %v", err)
	}
	defer f.Close()

	exp, err := importer.Load(f)
	if err != nil {
		log.Fatalf("Failed to read export: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sum, err := importer.Import(context.Background(), db, exp, importer.Options{Recount: *recount})
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Imported %d posts, %d comments, %d votes (skipped %d/%d/%d)",
		sum.Posts, sum.Comments, sum.Votes,
		sum.SkippedPosts, sum.SkippedComments, sum.SkippedVotes)
}
