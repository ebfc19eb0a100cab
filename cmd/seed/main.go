// Package main provides a tool to seed the database with test feed data.
//
// It creates a handful of users with reviews of real books, sprinkles in
// likes and comments, and leaves some content private so visibility
// filtering has something to chew on.
//
// Usage:
//
//	go run ./cmd/seed --data-path ~/ShelfPost/data
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/shelfpostapp/shelfpost-server/internal/auth"
	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	"github.com/shelfpostapp/shelfpost-server/internal/genre"
	"github.com/shelfpostapp/shelfpost-server/internal/id"
	"github.com/shelfpostapp/shelfpost-server/internal/store/sqlite"
)

var (
	dataPath = flag.String("data-path", "", "Base path for data storage (defaults to ~/ShelfPost/data)")
	password = flag.String("password", "reading is fun", "Password for all seeded users")
)

type seedUser struct {
	handle      string
	displayName string
	visibility  domain.Visibility
}

type seedReview struct {
	owner       string
	title       string
	author      string
	body        string
	recommended *bool
	genre       string
	visibility  domain.Visibility
}

func boolp(b bool) *bool { return &b }

var users = []seedUser{
	{"ursula", "Ursula", domain.VisibilityPublic},
	{"octavia", "Octavia", domain.VisibilityPublic},
	{"jorge", "Jorge", domain.VisibilityPublic},
	{"hermit", "The Hermit", domain.VisibilityPrivate},
}

var reviews = []seedReview{
	{"ursula", "The Dispossessed", "Ursula K. Le Guin", "An ambiguous utopia that refuses easy answers. The physics is a metaphor and the metaphor is load-bearing.", boolp(true), "Science Fiction", domain.VisibilityPublic},
	{"ursula", "Piranesi", "Susanna Clarke", "The House is kind. I wandered its halls for a week after finishing.", boolp(true), "Fantasy", domain.VisibilityPublic},
	{"ursula", "My Secret Diary", "", "Notes to self, not for the feed.", nil, "", domain.VisibilityPrivate},
	{"octavia", "Kindred", "Octavia E. Butler", "Time travel stripped of every comfort the genre usually provides. Essential and unsparing.", boolp(true), "Science Fiction", domain.VisibilityPublic},
	{"octavia", "The Da Vinci Code", "Dan Brown", "The puzzles are fine. The prose is a crime scene.", boolp(false), "Thriller", domain.VisibilityPublic},
	{"jorge", "Ficciones", "Jorge Luis Borges", "A library that contains every book also contains this review of it.", boolp(true), "Short Stories", domain.VisibilityPublic},
	{"jorge", "Ulysses", "James Joyce", "I finished it. I am told that counts for something.", nil, "Modernism", domain.VisibilityPublic},
	{"hermit", "Walden", "Henry David Thoreau", "He was two miles from town and his mother did his laundry, but the point stands.", boolp(true), "Memoir", domain.VisibilityPublic},
}

var comments = []string{
	"Completely agree with this.",
	"Adding it to my pile.",
	"I bounced off this one, maybe I should retry.",
	"The ending broke me.",
}

func main() {
	flag.Parse()

	base := *dataPath
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to find home directory: %v", err)
		}
		base = filepath.Join(home, "ShelfPost", "data")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	dbPath := filepath.Join(base, "shelfpost.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	st, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	passwordHash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	userIDs := make(map[string]string, len(users))
	for _, u := range users {
		user := &domain.User{
			Handle:            u.handle,
			PasswordHash:      passwordHash,
			DisplayName:       u.displayName,
			ProfileVisibility: u.visibility,
		}
		user.ID = id.MustGenerate("usr")
		user.InitTimestamps()

		if err := st.CreateUser(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", u.handle, err)
		}
		userIDs[u.handle] = user.ID
		fmt.Printf("Created user %s (%s)\n", u.handle, user.ID)
	}

	reviewIDs := make([]string, 0, len(reviews))
	for i, r := range reviews {
		review := &domain.Review{
			OwnerID:     userIDs[r.owner],
			Title:       r.title,
			Body:        r.body,
			Recommended: r.recommended,
			Visibility:  r.visibility,
		}
		review.ID = id.MustGenerate("rev")
		review.InitTimestamps()
		// Spread creation times so the feed has a stable order.
		review.CreatedAt = time.Now().Add(-time.Duration(len(reviews)-i) * time.Hour)
		review.UpdatedAt = review.CreatedAt

		if r.author != "" {
			author := r.author
			review.Author = &author
		}
		if r.genre != "" {
			label := r.genre
			review.Genre = &label
			if slug := genre.Slugify(label); slug != "" {
				review.GenreSlug = &slug
			}
		}

		if err := st.CreateReview(ctx, review); err != nil {
			log.Fatalf("Failed to create review %q: %v", r.title, err)
		}
		reviewIDs = append(reviewIDs, review.ID)
		fmt.Printf("Created review %q by %s\n", r.title, r.owner)
	}

	// Likes and comments, only on reviews the engine will accept them for.
	var likes, commentCount int
	for _, reviewID := range reviewIDs {
		for _, u := range users {
			if rng.Intn(2) == 0 {
				continue
			}
			if _, err := st.SetLike(ctx, userIDs[u.handle], reviewID); err != nil {
				continue // private review or private owner
			}
			likes++

			if rng.Intn(3) == 0 {
				body := comments[rng.Intn(len(comments))]
				if _, err := st.AddComment(ctx, reviewID, userIDs[u.handle], body); err == nil {
					commentCount++
				}
			}
		}
	}

	fmt.Printf("\nSeeded %d users, %d reviews, %d likes, %d comments\n",
		len(users), len(reviews), likes, commentCount)
	fmt.Printf("All users share the password %q\n", *password)
}
