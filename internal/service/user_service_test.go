package service

import (
	"context"
	"testing"

	"chronicle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestListUsersRedactsPasswords(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "alice@example.com", "Alice Jones", false)
	f.addUser(t, "bob@example.com", "Bob Smith", false)

	users, err := f.userSvc.ListUsers(context.Background(), "", "all")
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
}

func TestGetUserMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.userSvc.GetUser(context.Background(), "ghost@example.com")
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "alice@example.com", "Alice Jones", false)
	ctx := context.Background()

	updated, err := f.userSvc.UpdateProfile(ctx, "alice@example.com", UpdateProfileInput{
		FullName:     "Alice J.",
		ProfileImage: "https://example.com/a.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice J.", updated.FullName)
	assert.Equal(t, "https://example.com/a.png", updated.ProfileImage)
	assert.Empty(t, updated.Password)
}

func TestUpdateProfilePasswordIsRehashed(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "alice@example.com", "Alice Jones", false)
	ctx := context.Background()

	_, err := f.userSvc.UpdateProfile(ctx, "alice@example.com", UpdateProfileInput{
		NewPassword: "new-password-1",
	})
	require.NoError(t, err)

	stored, err := f.users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("new-password-1")))
}

func TestUpdateProfileRejectsShortPassword(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "alice@example.com", "Alice Jones", false)

	_, err := f.userSvc.UpdateProfile(context.Background(), "alice@example.com", UpdateProfileInput{
		NewPassword: "short",
	})
	assert.True(t, models.HasCode(err, models.CodeValidation))
}

func TestDeleteAccountCascades(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com", "Alice Jones", false)
	bob := f.addUser(t, "bob@example.com", "Bob Smith", false)
	post := f.addPost(t, alice, "Stays Up")
	ctx := context.Background()

	require.NoError(t, f.follSvc.Follow(ctx, alice, "bob@example.com"))
	require.NoError(t, f.follSvc.Follow(ctx, bob, "alice@example.com"))

	require.NoError(t, f.userSvc.DeleteAccount(ctx, "alice@example.com", alice))

	// The account is gone.
	gone, err := f.users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Follow edges in both directions are gone.
	following, err := f.follSvc.Following(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Empty(t, following)

	// The notification inbox is gone.
	notifs, err := f.notifSvc.List(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, notifs)

	// Posts stay up under the recorded author name.
	kept, err := f.posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Jones", kept.Author)
}

func TestDeleteAccountSelfOnly(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com", "Alice Jones", false)
	bob := f.addUser(t, "bob@example.com", "Bob Smith", false)
	admin := f.addUser(t, "admin@example.com", "Admin", true)
	ctx := context.Background()

	err := f.userSvc.DeleteAccount(ctx, "alice@example.com", bob)
	assert.True(t, models.HasCode(err, models.CodeForbidden))

	// Admins disable accounts; they do not delete them.
	err = f.userSvc.DeleteAccount(ctx, "alice@example.com", admin)
	assert.True(t, models.HasCode(err, models.CodeForbidden))

	require.NoError(t, f.userSvc.DeleteAccount(ctx, "alice@example.com", alice))
}

func TestSetDisabledAdminOnly(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com", "Alice Jones", false)
	admin := f.addUser(t, "admin@example.com", "Admin", true)
	ctx := context.Background()

	_, err := f.userSvc.SetDisabled(ctx, "admin@example.com", true, alice)
	assert.True(t, models.HasCode(err, models.CodeForbidden))

	updated, err := f.userSvc.SetDisabled(ctx, "alice@example.com", true, admin)
	require.NoError(t, err)
	assert.True(t, updated.Disabled)
	assert.Empty(t, updated.Password)
}

func TestAdminCannotDisableSelf(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser(t, "admin@example.com", "Admin", true)
	ctx := context.Background()

	_, err := f.userSvc.SetDisabled(ctx, "Admin@Example.com", true, admin)
	assert.True(t, models.HasCode(err, models.CodeValidation))

	// Re-enabling yourself is allowed.
	_, err = f.userSvc.SetDisabled(ctx, "admin@example.com", false, admin)
	assert.NoError(t, err)
}

func TestStatsAdminOnly(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com", "Alice Jones", false)
	admin := f.addUser(t, "admin@example.com", "Admin", true)
	ctx := context.Background()

	f.addPost(t, alice, "One")
	post := f.addPost(t, alice, "Two")
	_, err := f.postSvc.SetDisabled(ctx, post.ID, true, admin)
	require.NoError(t, err)

	_, err = f.userSvc.Stats(ctx, alice)
	assert.True(t, models.HasCode(err, models.CodeForbidden))

	stats, err := f.userSvc.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Users.Total)
	assert.Equal(t, 2, stats.Posts.Total)
	assert.Equal(t, 1, stats.Posts.Matching)
	assert.Equal(t, 1, stats.Posts.Rest)
}
