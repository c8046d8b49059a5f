package service

import (
	"context"
	"testing"
	"time"

	"chronicle/internal/models"
	"chronicle/internal/repository"
	"chronicle/internal/store"

	"github.com/stretchr/testify/require"
)

// fixture wires every service over one in-memory store so tests can
// observe cross-service side effects like comment notifications.
type fixture struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	follows  repository.FollowRepository
	notifs   repository.NotificationRepository
	notifSvc *NotificationService
	postSvc  *PostService
	userSvc  *UserService
	follSvc  *FollowService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMemory()
	f := &fixture{
		users:   repository.NewUserRepository(st),
		posts:   repository.NewPostRepository(st),
		follows: repository.NewFollowRepository(st),
		notifs:  repository.NewNotificationRepository(st),
	}
	f.notifSvc = NewNotificationService(f.notifs, nil)
	f.postSvc = NewPostService(f.posts, f.users, f.notifSvc)
	f.userSvc = NewUserService(f.users, f.posts, f.follows, f.notifs)
	f.follSvc = NewFollowService(f.follows, f.users, f.notifSvc)
	return f
}

func (f *fixture) addUser(t *testing.T, email, name string, admin bool) *models.User {
	t.Helper()
	u := &models.User{
		Email:    email,
		FullName: name,
		Password: "hash",
		IsAdmin:  admin,
		JoinedAt: time.Now().UTC(),
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) addPost(t *testing.T, author *models.User, title string) *models.Post {
	t.Helper()
	post, err := f.postSvc.CreatePost(context.Background(), CreatePostInput{
		AuthorEmail: author.Email,
		Title:       title,
		Content:     "some content worth reading",
		Category:    "Technology",
	})
	require.NoError(t, err)
	return post
}
