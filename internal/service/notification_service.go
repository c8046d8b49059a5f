// Package service implements the business logic layer. Services own the
// rules that need a requesting principal: ownership checks, cascades and
// notification side effects. Data-shape invariants live in the
// repositories underneath.
package service

import (
	"context"
	"encoding/json"
	"time"

	"chronicle/internal/middleware"
	"chronicle/internal/models"
	"chronicle/internal/notifications"
	"chronicle/internal/observability"
	"chronicle/internal/repository"

	"github.com/google/uuid"
)

// NotificationService manages per-user notification lists and pushes new
// notifications to connected clients.
type NotificationService struct {
	notifRepo repository.NotificationRepository
	notifier  *notifications.Notifier
}

// NewNotificationService returns a new NotificationService. notifier may
// be nil; real-time delivery is then skipped and lists still work.
func NewNotificationService(
	notifRepo repository.NotificationRepository,
	notifier *notifications.Notifier,
) *NotificationService {
	return &NotificationService{notifRepo: notifRepo, notifier: notifier}
}

// Emit persists a notification for recipient and publishes it to any open
// notification streams. The write is authoritative; publishing is best
// effort and never fails the caller.
func (s *NotificationService) Emit(ctx context.Context, recipient string, n models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Date.IsZero() {
		n.Date = time.Now().UTC()
	}

	if err := s.notifRepo.Append(ctx, recipient, n); err != nil {
		return err
	}
	observability.NotificationsEmitted.WithLabelValues(string(n.Type)).Inc()

	if s.notifier != nil {
		payload, err := json.Marshal(n)
		if err == nil {
			if err := s.notifier.PublishUser(ctx, recipient, string(payload)); err != nil {
				middleware.Logger.WarnContext(ctx, "failed to publish notification",
					"recipient", recipient, "error", err)
			}
		}
	}
	return nil
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, email string) ([]models.Notification, error) {
	notifs, err := s.notifRepo.ListFor(ctx, email)
	if err != nil {
		return nil, err
	}
	if notifs == nil {
		notifs = []models.Notification{}
	}
	return notifs, nil
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *NotificationService) UnreadCount(ctx context.Context, email string) (int, error) {
	notifs, err := s.notifRepo.ListFor(ctx, email)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifs {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, email, id string) error {
	return s.notifRepo.MarkRead(ctx, email, id)
}

// MarkAllRead marks every notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, email string) error {
	return s.notifRepo.MarkAllRead(ctx, email)
}

// Delete removes one of the user's notifications.
func (s *NotificationService) Delete(ctx context.Context, email, id string) error {
	return s.notifRepo.Delete(ctx, email, id)
}

// ClearAll removes the user's entire notification list.
func (s *NotificationService) ClearAll(ctx context.Context, email string) error {
	return s.notifRepo.ClearAll(ctx, email)
}
