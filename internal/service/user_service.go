package service

import (
	"context"

	"chronicle/internal/models"
	"chronicle/internal/repository"
	"chronicle/internal/validation"
	"chronicle/internal/views"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides account and profile business logic plus the
// admin-console aggregates.
type UserService struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	notifRepo  repository.NotificationRepository
}

// UpdateProfileInput carries profile edits. Zero-valued fields keep their
// current value; NewPassword, when set, is re-hashed.
type UpdateProfileInput struct {
	FullName     string
	ProfileImage string
	NewPassword  string
}

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	notifRepo repository.NotificationRepository,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
		notifRepo:  notifRepo,
	}
}

// ListUsers returns all accounts with password hashes stripped, filtered
// by the admin search box.
func (s *UserService) ListUsers(ctx context.Context, search, status string) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := views.FilterUsers(users, search, status)
	out := make([]models.User, 0, len(filtered))
	for _, u := range filtered {
		out = append(out, u.Redacted())
	}
	return out, nil
}

// GetUser returns one account with the password hash stripped.
func (s *UserService) GetUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", email)
	}
	redacted := user.Redacted()
	return &redacted, nil
}

// UpdateProfile edits the caller's own profile. The email is the account
// key and cannot change.
func (s *UserService) UpdateProfile(ctx context.Context, email string, in UpdateProfileInput) (*models.User, error) {
	if in.FullName != "" {
		if err := validation.ValidateFullName(in.FullName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	var hashed string
	if in.NewPassword != "" {
		if err := validation.ValidatePassword(in.NewPassword); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		h, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		hashed = string(h)
	}

	updated, err := s.userRepo.Update(ctx, email, func(u *models.User) error {
		if in.FullName != "" {
			u.FullName = in.FullName
		}
		if in.ProfileImage != "" {
			u.ProfileImage = in.ProfileImage
		}
		if hashed != "" {
			u.Password = hashed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	redacted := updated.Redacted()
	return &redacted, nil
}

// DeleteAccount removes a user and their social footprint: follow edges
// in both directions and the notification inbox. Posts stay up under the
// author's recorded name. Deletion is self-service only; admins moderate
// through disable.
func (s *UserService) DeleteAccount(ctx context.Context, email string, actor *models.User) error {
	if actor == nil {
		return models.NewForbiddenError("Authentication required")
	}
	email = models.NormalizeEmail(email)
	if actor.Email != email {
		return models.NewForbiddenError("You can only delete your own account")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", email)
	}

	if err := s.followRepo.PurgeUser(ctx, email); err != nil {
		return err
	}
	if err := s.notifRepo.ClearAll(ctx, email); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, email)
}

// SetDisabled toggles an account's disabled flag. Admin only, and admins
// cannot lock themselves out.
func (s *UserService) SetDisabled(ctx context.Context, email string, disabled bool, actor *models.User) (*models.User, error) {
	if actor == nil || !actor.IsAdmin {
		return nil, models.NewForbiddenError("Admin access required")
	}
	if models.NormalizeEmail(email) == actor.Email && disabled {
		return nil, models.NewValidationError("You cannot disable your own account")
	}
	updated, err := s.userRepo.SetDisabled(ctx, email, disabled)
	if err != nil {
		return nil, err
	}
	redacted := updated.Redacted()
	return &redacted, nil
}

// DashboardStats is the admin-console summary.
type DashboardStats struct {
	Users views.Stats `json:"users"`
	Posts views.Stats `json:"posts"`
}

// Stats aggregates the disabled counts the admin console renders.
func (s *UserService) Stats(ctx context.Context, actor *models.User) (*DashboardStats, error) {
	if actor == nil || !actor.IsAdmin {
		return nil, models.NewForbiddenError("Admin access required")
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		Users: views.AggregateStats(users, func(u models.User) bool { return u.Disabled }),
		Posts: views.AggregateStats(posts, func(p models.Post) bool { return p.Disabled }),
	}, nil
}
