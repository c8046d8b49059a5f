package repository

import (
	"context"

	"chronicle/internal/cache"
	"chronicle/internal/models"
	"chronicle/internal/store"
)

// PostRepository defines persistence operations for the post collection.
// Rating range and comment shape are validated here; ownership rules live
// in the service layer where the requesting principal is known.
type PostRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	// Update applies fn to the post with the given id inside one
	// read-modify-write cycle and returns the updated post.
	Update(ctx context.Context, id string, apply func(*models.Post) error) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	SetDisabled(ctx context.Context, id string, disabled bool) (*models.Post, error)
	AddRating(ctx context.Context, id string, value int) (*models.Post, error)
	AddComment(ctx context.Context, id string, comment models.Comment) (*models.Post, error)
	RemoveComment(ctx context.Context, id, commentID string) (*models.Post, error)
}

type postRepository struct {
	store store.Store
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(s store.Store) PostRepository {
	return &postRepository{store: s}
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := cache.Aside(ctx, cache.PostsKey, &posts, cache.PostsTTL, func() error {
		_, err := r.store.Get(ctx, store.KeyPosts, &posts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	posts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, models.NewNotFoundError("Post", id)
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.Ratings == nil {
		post.Ratings = []int{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := mutateDoc(ctx, r.store, store.KeyPosts, func(posts *[]models.Post) error {
		*posts = append(*posts, *post)
		return nil
	})
	if err == nil {
		cache.InvalidatePosts(ctx)
	}
	return err
}

func (r *postRepository) Update(ctx context.Context, id string, apply func(*models.Post) error) (*models.Post, error) {
	var updated models.Post
	_, err := mutateDoc(ctx, r.store, store.KeyPosts, func(posts *[]models.Post) error {
		for i := range *posts {
			if (*posts)[i].ID == id {
				if err := apply(&(*posts)[i]); err != nil {
					return err
				}
				(*posts)[i].ID = id
				updated = (*posts)[i]
				return nil
			}
		}
		return models.NewNotFoundError("Post", id)
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidatePosts(ctx)
	return &updated, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	_, err := mutateDoc(ctx, r.store, store.KeyPosts, func(posts *[]models.Post) error {
		for i := range *posts {
			if (*posts)[i].ID == id {
				*posts = append((*posts)[:i], (*posts)[i+1:]...)
				return nil
			}
		}
		return models.NewNotFoundError("Post", id)
	})
	if err == nil {
		cache.InvalidatePosts(ctx)
	}
	return err
}

func (r *postRepository) SetDisabled(ctx context.Context, id string, disabled bool) (*models.Post, error) {
	return r.Update(ctx, id, func(p *models.Post) error {
		p.Disabled = disabled
		return nil
	})
}

func (r *postRepository) AddRating(ctx context.Context, id string, value int) (*models.Post, error) {
	if value < 1 || value > 5 {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}
	return r.Update(ctx, id, func(p *models.Post) error {
		p.Ratings = append(p.Ratings, value)
		return nil
	})
}

func (r *postRepository) AddComment(ctx context.Context, id string, comment models.Comment) (*models.Post, error) {
	if comment.Text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	return r.Update(ctx, id, func(p *models.Post) error {
		p.Comments = append(p.Comments, comment)
		return nil
	})
}

func (r *postRepository) RemoveComment(ctx context.Context, id, commentID string) (*models.Post, error) {
	return r.Update(ctx, id, func(p *models.Post) error {
		idx := p.FindComment(commentID)
		if idx < 0 {
			return models.NewNotFoundError("Comment", commentID)
		}
		p.Comments = append(p.Comments[:idx], p.Comments[idx+1:]...)
		return nil
	})
}
