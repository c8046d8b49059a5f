package server

import (
	"chronicle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminStats handles GET /api/admin/stats
func (s *Server) AdminStats(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	stats, err := s.userService.Stats(c.UserContext(), user)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(stats)
}

// AdminListUsers handles GET /api/admin/users with search and status
// query parameters.
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext(),
		c.Query("search"), c.Query("status", "all"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// AdminSetUserDisabled handles PUT /api/admin/users/:email/disabled
func (s *Server) AdminSetUserDisabled(c *fiber.Ctx) error {
	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	var req struct {
		Disabled bool `json:"disabled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.userService.SetDisabled(c.UserContext(),
		emailParam(c), req.Disabled, actor)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(updated)
}

// AdminSetPostDisabled handles PUT /api/admin/posts/:id/disabled
func (s *Server) AdminSetPostDisabled(c *fiber.Ctx) error {
	actor, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	var req struct {
		Disabled bool `json:"disabled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.SetDisabled(c.UserContext(),
		c.Params("id"), req.Disabled, actor)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(post)
}
