package repository

import (
	"context"
	"strings"

	"chronicle/internal/models"
	"chronicle/internal/store"
)

// FollowRepository defines persistence operations for the directed follow
// relation. Each user's follow list is stored as a per-user document with
// set semantics: add and remove are idempotent, and a user never appears
// in their own list.
type FollowRepository interface {
	Following(ctx context.Context, email string) ([]string, error)
	// Add inserts a follow edge and reports whether it was new.
	Add(ctx context.Context, follower, followee string) (bool, error)
	// Remove deletes a follow edge and reports whether it existed.
	Remove(ctx context.Context, follower, followee string) (bool, error)
	// Followers scans every user's follow list for membership of email.
	// O(users); acceptable at this scale.
	Followers(ctx context.Context, email string) ([]string, error)
	// PurgeUser removes the user's own list and the user's membership in
	// every other list. Used when an account is deleted.
	PurgeUser(ctx context.Context, email string) error
}

type followRepository struct {
	store store.Store
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(s store.Store) FollowRepository {
	return &followRepository{store: s}
}

func (r *followRepository) Following(ctx context.Context, email string) ([]string, error) {
	var following []string
	key := store.FollowingKey(models.NormalizeEmail(email))
	if _, err := r.store.Get(ctx, key, &following); err != nil {
		return nil, err
	}
	return following, nil
}

func (r *followRepository) Add(ctx context.Context, follower, followee string) (bool, error) {
	follower = models.NormalizeEmail(follower)
	followee = models.NormalizeEmail(followee)
	if follower == followee {
		return false, nil
	}

	added := false
	_, err := mutateDoc(ctx, r.store, store.FollowingKey(follower), func(following *[]string) error {
		for _, e := range *following {
			if e == followee {
				return nil
			}
		}
		*following = append(*following, followee)
		added = true
		return nil
	})
	return added, err
}

func (r *followRepository) Remove(ctx context.Context, follower, followee string) (bool, error) {
	follower = models.NormalizeEmail(follower)
	followee = models.NormalizeEmail(followee)

	removed := false
	_, err := mutateDoc(ctx, r.store, store.FollowingKey(follower), func(following *[]string) error {
		for i, e := range *following {
			if e == followee {
				*following = append((*following)[:i], (*following)[i+1:]...)
				removed = true
				return nil
			}
		}
		return nil
	})
	return removed, err
}

func (r *followRepository) Followers(ctx context.Context, email string) ([]string, error) {
	email = models.NormalizeEmail(email)
	keys, err := r.store.Keys(ctx, store.KeyFollowingPrefix)
	if err != nil {
		return nil, err
	}

	var followers []string
	for _, key := range keys {
		owner := strings.TrimPrefix(key, store.KeyFollowingPrefix)
		if owner == email {
			continue
		}
		var following []string
		if _, err := r.store.Get(ctx, key, &following); err != nil {
			return nil, err
		}
		for _, e := range following {
			if e == email {
				followers = append(followers, owner)
				break
			}
		}
	}
	return followers, nil
}

func (r *followRepository) PurgeUser(ctx context.Context, email string) error {
	email = models.NormalizeEmail(email)
	if err := r.store.Delete(ctx, store.FollowingKey(email)); err != nil {
		return err
	}

	keys, err := r.store.Keys(ctx, store.KeyFollowingPrefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		owner := strings.TrimPrefix(key, store.KeyFollowingPrefix)
		if _, err := r.Remove(ctx, owner, email); err != nil {
			return err
		}
	}
	return nil
}
