// Package bootstrap wires up runtime dependencies: database, Redis, the
// record store, the built-in admin account and optional demo data.
package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chronicle/internal/cache"
	"chronicle/internal/config"
	"chronicle/internal/database"
	"chronicle/internal/middleware"
	"chronicle/internal/models"
	"chronicle/internal/repository"
	"chronicle/internal/seed"
	"chronicle/internal/store"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
}

// InitRuntime connects to the database and Redis, migrates the record
// store, ensures the configured admin account exists and optionally
// seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, store.Store, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client if Redis is unreachable; the app runs
	// without caching and real-time delivery then.
	cache.InitRedis(cfg.RedisURL)
	rdb := cache.GetClient()

	st := store.NewGorm(db)

	if err := EnsureAdminAccount(context.Background(), cfg, repository.NewUserRepository(st)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	if opts.SeedDemoData {
		if err := seed.Demo(context.Background(), st, seed.Options{}); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, st, rdb, nil
}

// EnsureAdminAccount creates the admin account named in the configuration
// if it does not exist yet, and promotes it if it does. A blank
// ADMIN_EMAIL disables the bootstrap entirely.
func EnsureAdminAccount(ctx context.Context, cfg *config.Config, users repository.UserRepository) error {
	email := models.NormalizeEmail(cfg.AdminEmail)
	if email == "" {
		return nil
	}
	if strings.TrimSpace(cfg.AdminPassword) == "" {
		return fmt.Errorf("ADMIN_PASSWORD must be set when ADMIN_EMAIL is configured")
	}

	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.IsAdmin {
			return nil
		}
		_, err := users.Update(ctx, email, func(u *models.User) error {
			u.IsAdmin = true
			return nil
		})
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.User{
		Email:    email,
		FullName: "Administrator",
		Password: string(hashed),
		IsAdmin:  true,
		JoinedAt: time.Now().UTC(),
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	middleware.Logger.Info("Bootstrapped admin account", "email", email)
	return nil
}
