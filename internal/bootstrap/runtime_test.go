package bootstrap

import (
	"context"
	"testing"

	"chronicle/internal/config"
	"chronicle/internal/models"
	"chronicle/internal/repository"
	"chronicle/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestEnsureAdminAccountDisabledWhenUnset(t *testing.T) {
	users := repository.NewUserRepository(store.NewMemory())
	cfg := &config.Config{AdminEmail: "", AdminPassword: "irrelevant"}

	require.NoError(t, EnsureAdminAccount(context.Background(), cfg, users))

	all, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEnsureAdminAccountRequiresPassword(t *testing.T) {
	users := repository.NewUserRepository(store.NewMemory())
	cfg := &config.Config{AdminEmail: "admin@example.com", AdminPassword: "  "}

	err := EnsureAdminAccount(context.Background(), cfg, users)
	assert.Error(t, err)
}

func TestEnsureAdminAccountCreates(t *testing.T) {
	users := repository.NewUserRepository(store.NewMemory())
	cfg := &config.Config{AdminEmail: "Admin@Example.com", AdminPassword: "super-secret-1"}
	ctx := context.Background()

	require.NoError(t, EnsureAdminAccount(ctx, cfg, users))

	admin, err := users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "Administrator", admin.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("super-secret-1")))

	// Running again changes nothing.
	require.NoError(t, EnsureAdminAccount(ctx, cfg, users))
	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEnsureAdminAccountPromotesExisting(t *testing.T) {
	users := repository.NewUserRepository(store.NewMemory())
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{
		Email:    "admin@example.com",
		FullName: "Existing Person",
		Password: "existing-hash",
	}))

	cfg := &config.Config{AdminEmail: "admin@example.com", AdminPassword: "super-secret-1"}
	require.NoError(t, EnsureAdminAccount(ctx, cfg, users))

	admin, err := users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin)
	// Promotion keeps the existing credentials and profile.
	assert.Equal(t, "Existing Person", admin.FullName)
	assert.Equal(t, "existing-hash", admin.Password)
}
