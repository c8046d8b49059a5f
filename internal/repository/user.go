package repository

import (
	"context"

	"chronicle/internal/cache"
	"chronicle/internal/models"
	"chronicle/internal/store"
)

// UserRepository defines persistence operations for the user collection.
// Email uniqueness is enforced here, at the collection boundary.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	// GetByEmail returns (nil, nil) when no user has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, email string, apply func(*models.User) error) (*models.User, error)
	Delete(ctx context.Context, email string) error
	SetDisabled(ctx context.Context, email string, disabled bool) (*models.User, error)
}

type userRepository struct {
	store store.Store
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := cache.Aside(ctx, cache.UsersKey, &users, cache.UsersTTL, func() error {
		_, err := r.store.Get(ctx, store.KeyUsers, &users)
		return err
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)
	_, err := mutateDoc(ctx, r.store, store.KeyUsers, func(users *[]models.User) error {
		for i := range *users {
			if (*users)[i].Email == user.Email {
				return models.NewDuplicateEmailError(user.Email)
			}
		}
		*users = append(*users, *user)
		return nil
	})
	if err == nil {
		cache.InvalidateUsers(ctx)
	}
	return err
}

func (r *userRepository) Update(ctx context.Context, email string, apply func(*models.User) error) (*models.User, error) {
	email = models.NormalizeEmail(email)
	var updated models.User
	_, err := mutateDoc(ctx, r.store, store.KeyUsers, func(users *[]models.User) error {
		for i := range *users {
			if (*users)[i].Email == email {
				if err := apply(&(*users)[i]); err != nil {
					return err
				}
				// The email is the collection key; edits must not move it.
				(*users)[i].Email = email
				updated = (*users)[i]
				return nil
			}
		}
		return models.NewNotFoundError("User", email)
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateUsers(ctx)
	return &updated, nil
}

func (r *userRepository) Delete(ctx context.Context, email string) error {
	email = models.NormalizeEmail(email)
	_, err := mutateDoc(ctx, r.store, store.KeyUsers, func(users *[]models.User) error {
		for i := range *users {
			if (*users)[i].Email == email {
				*users = append((*users)[:i], (*users)[i+1:]...)
				return nil
			}
		}
		return models.NewNotFoundError("User", email)
	})
	if err == nil {
		cache.InvalidateUsers(ctx)
	}
	return err
}

func (r *userRepository) SetDisabled(ctx context.Context, email string, disabled bool) (*models.User, error) {
	return r.Update(ctx, email, func(u *models.User) error {
		u.Disabled = disabled
		return nil
	})
}
