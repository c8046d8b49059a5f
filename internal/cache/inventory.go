package cache

import (
	"context"
	"time"
)

// Cache keys for the hot read paths. These cache repository snapshots,
// never the authoritative documents; writes always go to the store and
// invalidate here.
const (
	PostsKey = "snapshot:posts"
	UsersKey = "snapshot:users"
)

const (
	PostsTTL = 30 * time.Second
	UsersTTL = 1 * time.Minute
)

// Invalidate drops the given key. Safe to call without a Redis client.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePosts drops the cached post collection snapshot.
func InvalidatePosts(ctx context.Context) {
	Invalidate(ctx, PostsKey)
}

// InvalidateUsers drops the cached user collection snapshot.
func InvalidateUsers(ctx context.Context) {
	Invalidate(ctx, UsersKey)
}
