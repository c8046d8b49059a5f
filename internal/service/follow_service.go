package service

import (
	"context"
	"fmt"

	"chronicle/internal/models"
	"chronicle/internal/repository"
)

// FollowService provides follow-graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	notifSvc   *NotificationService
}

// NewFollowService returns a new FollowService.
func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notifSvc *NotificationService,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		notifSvc:   notifSvc,
	}
}

// Follow adds a follow edge from follower to followee. Following yourself
// or someone you already follow is a silent no-op; only a genuinely new
// edge notifies the followee.
func (s *FollowService) Follow(ctx context.Context, follower *models.User, followee string) error {
	if follower == nil {
		return models.NewForbiddenError("Authentication required")
	}

	target, err := s.userRepo.GetByEmail(ctx, followee)
	if err != nil {
		return err
	}
	if target == nil {
		return models.NewNotFoundError("User", followee)
	}

	added, err := s.followRepo.Add(ctx, follower.Email, target.Email)
	if err != nil {
		return err
	}
	if !added || s.notifSvc == nil {
		return nil
	}

	return s.notifSvc.Emit(ctx, target.Email, models.Notification{
		Type:      models.NotificationFollow,
		From:      follower.FullName,
		FromEmail: follower.Email,
		Message:   fmt.Sprintf("%s started following you", follower.FullName),
	})
}

// Unfollow removes a follow edge. Removing an edge that does not exist is
// a silent no-op and nobody is notified either way.
func (s *FollowService) Unfollow(ctx context.Context, follower *models.User, followee string) error {
	if follower == nil {
		return models.NewForbiddenError("Authentication required")
	}
	_, err := s.followRepo.Remove(ctx, follower.Email, followee)
	return err
}

// Following returns the emails the user follows.
func (s *FollowService) Following(ctx context.Context, email string) ([]string, error) {
	following, err := s.followRepo.Following(ctx, email)
	if err != nil {
		return nil, err
	}
	if following == nil {
		following = []string{}
	}
	return following, nil
}

// Followers returns the emails of users following the given user.
func (s *FollowService) Followers(ctx context.Context, email string) ([]string, error) {
	followers, err := s.followRepo.Followers(ctx, email)
	if err != nil {
		return nil, err
	}
	if followers == nil {
		followers = []string{}
	}
	return followers, nil
}
