// Command main runs the demo data seeder against the configured database.
package main

import (
	"context"
	"flag"
	"log"

	"chronicle/internal/config"
	"chronicle/internal/database"
	"chronicle/internal/seed"
	"chronicle/internal/store"
)

func main() {
	numUsers := flag.Int("users", 12, "Number of users to create")
	numPosts := flag.Int("posts", 30, "Number of posts to create")
	force := flag.Bool("force", false, "Seed even if the store already has users")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	st := store.NewGorm(db)
	ctx := context.Background()
	opts := seed.Options{NumUsers: *numUsers, NumPosts: *numPosts}

	if *force {
		err = seed.NewSeeder(st).Run(ctx, opts)
	} else {
		err = seed.Demo(ctx, st, opts)
	}
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
