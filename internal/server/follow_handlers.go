package server

import (
	"chronicle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFollowing handles GET /api/follows
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	following, err := s.followService.Following(c.UserContext(), user.Email)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"following": following})
}

// GetFollowers handles GET /api/follows/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	followers, err := s.followService.Followers(c.UserContext(), user.Email)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"followers": followers})
}

// FollowUser handles POST /api/follows/:email
func (s *Server) FollowUser(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	if err := s.followService.Follow(c.UserContext(), user, emailParam(c)); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Following"})
}

// UnfollowUser handles DELETE /api/follows/:email
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	if err := s.followService.Unfollow(c.UserContext(), user, emailParam(c)); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Unfollowed"})
}
