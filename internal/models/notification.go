package models

import "time"

// NotificationType identifies what kind of event produced a notification.
type NotificationType string

const (
	// NotificationFollow is emitted when someone starts following a user.
	NotificationFollow NotificationType = "follow"
	// NotificationComment is emitted when someone comments on a user's post.
	NotificationComment NotificationType = "comment"
)

// Notification is a user-facing event record owned by its recipient. It is
// written before the triggering handler returns and delivered at most once.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	From      string           `json:"from"`
	FromEmail string           `json:"fromEmail"`
	Message   string           `json:"message"`
	PostID    string           `json:"postId,omitempty"`
	PostTitle string           `json:"postTitle,omitempty"`
	Date      time.Time        `json:"date"`
	Read      bool             `json:"read"`
}
