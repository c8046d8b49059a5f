// Package store implements durable key -> JSON-document storage with
// whole-document replace semantics and optimistic concurrency. Every
// collection (users, posts, per-user follow lists, per-user notification
// lists) lives in one document; callers read, modify, and write the whole
// document back, passing the version they read so concurrent writers
// cannot silently lose updates.
package store

import (
	"context"
	"errors"
)

// Document keys for the persisted collections. Per-user documents append
// the owner's email to the prefix.
const (
	KeyUsers              = "users"
	KeyPosts              = "blogPosts"
	KeyFollowingPrefix    = "following_"
	KeyNotificationPrefix = "notifications_"
)

// FollowingKey returns the document key holding the follow list of email.
func FollowingKey(email string) string {
	return KeyFollowingPrefix + email
}

// NotificationsKey returns the document key holding the notification list
// of email.
func NotificationsKey(email string) string {
	return KeyNotificationPrefix + email
}

var (
	// ErrVersionConflict is returned by Put when the document changed
	// since the caller read it. Callers re-read and retry.
	ErrVersionConflict = errors.New("store: document version conflict")
)

// Store is the raw record persistence abstraction.
type Store interface {
	// Get unmarshals the document at key into dest and returns its
	// version. A missing document returns version 0 with dest untouched.
	Get(ctx context.Context, key string, dest any) (int64, error)

	// Put replaces the document at key with the JSON encoding of value.
	// expected is the version the caller read (0 to create). It returns
	// the new version, or ErrVersionConflict when the stored version no
	// longer matches. The replace is all-or-nothing.
	Put(ctx context.Context, key string, value any, expected int64) (int64, error)

	// Delete removes the document at key. Deleting a missing key is a
	// no-op.
	Delete(ctx context.Context, key string) error

	// Keys returns all document keys with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
