package server

import (
	"chronicle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.UserContext(), c.Params("id"), s.optionalUser(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"comments": post.Comments})
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.AddComment(c.UserContext(), c.Params("id"), req.Text, user)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdateComment handles PUT /api/posts/:id/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdateComment(c.UserContext(),
		c.Params("id"), c.Params("commentId"), req.Text, user)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(post)
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	post, err := s.postService.DeleteComment(c.UserContext(),
		c.Params("id"), c.Params("commentId"), user)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(post)
}
