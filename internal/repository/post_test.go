package repository

import (
	"context"
	"testing"
	"time"

	"chronicle/internal/models"
	"chronicle/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPost(id string) *models.Post {
	return &models.Post{
		ID:          id,
		Title:       "Post " + id,
		Content:     "content",
		Category:    "Technology",
		Author:      "Alice Jones",
		AuthorEmail: "alice@example.com",
		Date:        time.Now().UTC(),
	}
}

func TestPostRepositoryCreateDefaults(t *testing.T) {
	repo := NewPostRepository(store.NewMemory())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestPost("p1")))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	// Ratings and comments start as empty slices, not nil, so the
	// serialized document always carries both arrays.
	assert.NotNil(t, got.Ratings)
	assert.NotNil(t, got.Comments)
	assert.Empty(t, got.Ratings)
	assert.Empty(t, got.Comments)
}

func TestPostRepositoryGetMissing(t *testing.T) {
	repo := NewPostRepository(store.NewMemory())

	_, err := repo.GetByID(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestPostRepositoryUpdatePinsID(t *testing.T) {
	repo := NewPostRepository(store.NewMemory())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestPost("p1")))

	updated, err := repo.Update(ctx, "p1", func(p *models.Post) error {
		p.Title = "Edited"
		p.ID = "p99"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, "p1", updated.ID)
}

func TestPostRepositoryDelete(t *testing.T) {
	repo := NewPostRepository(store.NewMemory())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestPost("p1")))
	require.NoError(t, repo.Create(ctx, newTestPost("p2")))
	require.NoError(t, repo.Delete(ctx, "p1"))

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "p2", posts[0].ID)

	err = repo.Delete(ctx, "p1")
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestPostRepositoryAddRating(t *testing.T) {
	repo := NewPostRepository(store.NewMemory())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestPost("p1")))

	updated, err := repo.AddRating(ctx, "p1", 4)
	require.NoError(t, err)
	updated, err = repo.AddRating(ctx, "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, updated.Ratings)
	assert.Equal(t, 4.5, updated.AverageRating())

	// Repeated ratings accumulate rather than replacing earlier ones.
	updated, err = repo.AddRating(ctx, "p1", 5)
	require.NoError(t, err)
	assert.Len(t, updated.Ratings, 3)
}

func TestPostRepositoryAddRatingBounds(t *testing.T) {
	repo := NewPostRepository(store.NewMemory())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestPost("p1")))

	for _, value := range []int{0, -1, 6, 42} {
		_, err := repo.AddRating(ctx, "p1", value)
		assert.True(t, models.HasCode(err, models.CodeValidation), "rating %d", value)
	}
}

func TestPostRepositoryComments(t *testing.T) {
	repo := NewPostRepository(store.NewMemory())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestPost("p1")))

	updated, err := repo.AddComment(ctx, "p1", models.Comment{
		ID:          "c1",
		Author:      "Bob Smith",
		AuthorEmail: "bob@example.com",
		Text:        "Nice one",
		Date:        time.Now().UTC(),
	})
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)

	_, err = repo.AddComment(ctx, "p1", models.Comment{ID: "c2"})
	assert.True(t, models.HasCode(err, models.CodeValidation))

	updated, err = repo.RemoveComment(ctx, "p1", "c1")
	require.NoError(t, err)
	assert.Empty(t, updated.Comments)

	_, err = repo.RemoveComment(ctx, "p1", "c1")
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestPostRepositorySetDisabled(t *testing.T) {
	repo := NewPostRepository(store.NewMemory())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestPost("p1")))

	updated, err := repo.SetDisabled(ctx, "p1", true)
	require.NoError(t, err)
	assert.True(t, updated.Disabled)
}
