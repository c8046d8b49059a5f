// Package seed creates demo data for development environments: a set of
// curated posts plus a randomly generated population of users, comments,
// ratings and follows.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"chronicle/internal/middleware"
	"chronicle/internal/models"
	"chronicle/internal/repository"
	"chronicle/internal/store"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Options configure the demo seeder. Zero values pick sensible defaults.
type Options struct {
	NumUsers int
	NumPosts int
	// SkipBcrypt stores a plain-text marker password instead of a real
	// hash. Fast, but logins will not work; dev listing-only setups.
	SkipBcrypt bool
}

// DemoPassword is the login password of every generated demo account.
const DemoPassword = "password123"

// Seeder builds demo entities through the repositories so every invariant
// (unique emails, rating bounds, notification side effects) holds for
// seeded data exactly as it does for real traffic.
type Seeder struct {
	users   repository.UserRepository
	posts   repository.PostRepository
	follows repository.FollowRepository
	rng     *rand.Rand
}

// NewSeeder creates a Seeder over the given store.
func NewSeeder(st store.Store) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		users:   repository.NewUserRepository(st),
		posts:   repository.NewPostRepository(st),
		follows: repository.NewFollowRepository(st),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Demo seeds the store with the curated fixture posts plus a generated
// population. Idempotent at the collection level: an already-populated
// store is left untouched.
func Demo(ctx context.Context, st store.Store, opts Options) error {
	s := NewSeeder(st)

	existing, err := s.users.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		middleware.Logger.Info("Demo seed skipped, store already populated",
			"users", len(existing))
		return nil
	}

	return s.Run(ctx, opts)
}

// Run executes the full seeding pass.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	numUsers := opts.NumUsers
	if numUsers <= 0 {
		numUsers = 12
	}
	numPosts := opts.NumPosts
	if numPosts <= 0 {
		numPosts = 30
	}

	users, err := s.CreateUsers(ctx, numUsers, opts.SkipBcrypt)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	if err := s.CreateFixturePosts(ctx, users); err != nil {
		return fmt.Errorf("seed fixture posts: %w", err)
	}

	if err := s.CreatePosts(ctx, users, numPosts); err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}

	if err := s.CreateFollowMesh(ctx, users); err != nil {
		return fmt.Errorf("seed follows: %w", err)
	}

	middleware.Logger.Info("Demo data seeded",
		"users", len(users), "posts", numPosts)
	return nil
}

// CreateUsers generates and persists demo accounts.
func (s *Seeder) CreateUsers(ctx context.Context, n int, skipBcrypt bool) ([]models.User, error) {
	password := DemoPassword
	if !skipBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		password = string(hashed)
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Email:        models.NormalizeEmail(gofakeit.Email()),
			FullName:     gofakeit.Name(),
			Password:     password,
			ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", uuid.NewString()),
			JoinedAt:     s.pastTime(365),
		}
		if err := s.users.Create(ctx, &user); err != nil {
			// Random emails can collide; just draw again.
			if models.HasCode(err, models.CodeDuplicateEmail) {
				i--
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// CreateFixturePosts persists the curated posts, attributed to random
// generated users.
func (s *Seeder) CreateFixturePosts(ctx context.Context, users []models.User) error {
	fixtures, err := LoadFixtures()
	if err != nil {
		return err
	}
	for _, f := range fixtures {
		author := users[s.rng.Intn(len(users))]
		post := models.Post{
			ID:          uuid.NewString(),
			Title:       f.Title,
			Content:     f.Content,
			Author:      author.FullName,
			AuthorEmail: author.Email,
			Category:    f.Category,
			Date:        s.pastTime(120),
			Image:       f.Image,
		}
		if err := s.posts.Create(ctx, &post); err != nil {
			return err
		}
		if err := s.decoratePost(ctx, post.ID, users); err != nil {
			return err
		}
	}
	return nil
}

// CreatePosts generates random posts with ratings and comments.
func (s *Seeder) CreatePosts(ctx context.Context, users []models.User, n int) error {
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		post := models.Post{
			ID:          uuid.NewString(),
			Title:       gofakeit.Sentence(s.rng.Intn(5) + 4),
			Content:     gofakeit.Paragraph(2, 4, 8, "\n\n"),
			Author:      author.FullName,
			AuthorEmail: author.Email,
			Category:    models.Categories[s.rng.Intn(len(models.Categories))],
			Date:        s.pastTime(90),
			Image:       fmt.Sprintf("https://picsum.photos/seed/%s/800/500", uuid.NewString()),
		}
		if err := s.posts.Create(ctx, &post); err != nil {
			return err
		}
		if err := s.decoratePost(ctx, post.ID, users); err != nil {
			return err
		}
	}
	return nil
}

// decoratePost adds a random spread of ratings and comments to a post.
func (s *Seeder) decoratePost(ctx context.Context, postID string, users []models.User) error {
	for i := s.rng.Intn(8); i > 0; i-- {
		if _, err := s.posts.AddRating(ctx, postID, s.rng.Intn(5)+1); err != nil {
			return err
		}
	}
	for i := s.rng.Intn(4); i > 0; i-- {
		commenter := users[s.rng.Intn(len(users))]
		comment := models.Comment{
			ID:          uuid.NewString(),
			Author:      commenter.FullName,
			AuthorEmail: commenter.Email,
			Text:        gofakeit.Sentence(s.rng.Intn(10) + 5),
			Date:        s.pastTime(30),
		}
		if _, err := s.posts.AddComment(ctx, postID, comment); err != nil {
			return err
		}
	}
	return nil
}

// CreateFollowMesh gives every user a handful of follows.
func (s *Seeder) CreateFollowMesh(ctx context.Context, users []models.User) error {
	for _, u := range users {
		for i := s.rng.Intn(4) + 1; i > 0; i-- {
			target := users[s.rng.Intn(len(users))]
			if _, err := s.follows.Add(ctx, u.Email, target.Email); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	d := time.Duration(s.rng.Intn(maxDays*24*60)) * time.Minute
	return time.Now().UTC().Add(-d)
}
