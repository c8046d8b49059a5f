package repository

import (
	"context"
	"sort"

	"chronicle/internal/models"
	"chronicle/internal/store"
)

// NotificationRepository defines persistence operations for per-user
// notification lists. All operations are scoped to the recipient; the
// service layer guarantees callers only touch their own list.
type NotificationRepository interface {
	// ListFor returns the user's notifications sorted newest-first.
	ListFor(ctx context.Context, email string) ([]models.Notification, error)
	Append(ctx context.Context, email string, n models.Notification) error
	MarkRead(ctx context.Context, email, id string) error
	MarkAllRead(ctx context.Context, email string) error
	Delete(ctx context.Context, email, id string) error
	ClearAll(ctx context.Context, email string) error
}

type notificationRepository struct {
	store store.Store
}

// NewNotificationRepository returns a new NotificationRepository implementation.
func NewNotificationRepository(s store.Store) NotificationRepository {
	return &notificationRepository{store: s}
}

func (r *notificationRepository) key(email string) string {
	return store.NotificationsKey(models.NormalizeEmail(email))
}

func (r *notificationRepository) ListFor(ctx context.Context, email string) ([]models.Notification, error) {
	var notifs []models.Notification
	if _, err := r.store.Get(ctx, r.key(email), &notifs); err != nil {
		return nil, err
	}
	sort.SliceStable(notifs, func(i, j int) bool {
		return notifs[i].Date.After(notifs[j].Date)
	})
	return notifs, nil
}

func (r *notificationRepository) Append(ctx context.Context, email string, n models.Notification) error {
	_, err := mutateDoc(ctx, r.store, r.key(email), func(notifs *[]models.Notification) error {
		*notifs = append(*notifs, n)
		return nil
	})
	return err
}

func (r *notificationRepository) MarkRead(ctx context.Context, email, id string) error {
	_, err := mutateDoc(ctx, r.store, r.key(email), func(notifs *[]models.Notification) error {
		for i := range *notifs {
			if (*notifs)[i].ID == id {
				(*notifs)[i].Read = true
				return nil
			}
		}
		return models.NewNotFoundError("Notification", id)
	})
	return err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, email string) error {
	_, err := mutateDoc(ctx, r.store, r.key(email), func(notifs *[]models.Notification) error {
		for i := range *notifs {
			(*notifs)[i].Read = true
		}
		return nil
	})
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, email, id string) error {
	_, err := mutateDoc(ctx, r.store, r.key(email), func(notifs *[]models.Notification) error {
		for i := range *notifs {
			if (*notifs)[i].ID == id {
				*notifs = append((*notifs)[:i], (*notifs)[i+1:]...)
				return nil
			}
		}
		return models.NewNotFoundError("Notification", id)
	})
	return err
}

// ClearAll drops the whole inbox document without a version check.
// Last write wins: an Append racing the clear may be lost, which is
// acceptable for an explicit clear-everything action.
func (r *notificationRepository) ClearAll(ctx context.Context, email string) error {
	return r.store.Delete(ctx, r.key(email))
}
