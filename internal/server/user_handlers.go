package server

import (
	"chronicle/internal/models"
	"chronicle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user.Redacted())
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	var req struct {
		FullName     string `json:"fullName"`
		ProfileImage string `json:"profileImage"`
		NewPassword  string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.userService.UpdateProfile(c.UserContext(), user.Email, service.UpdateProfileInput{
		FullName:     req.FullName,
		ProfileImage: req.ProfileImage,
		NewPassword:  req.NewPassword,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteMyAccount handles DELETE /api/users/me
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	if err := s.userService.DeleteAccount(c.UserContext(), user.Email, user); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// GetUserProfile handles GET /api/users/:email
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.UserContext(), emailParam(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// GetUserPosts handles GET /api/users/:email/posts, the profile page
// listing.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	page, pageSize := parsePage(c)
	result, err := s.postService.ListByAuthor(
		c.UserContext(), emailParam(c), s.optionalUser(c), page, pageSize)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(result)
}
