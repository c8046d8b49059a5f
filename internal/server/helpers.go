package server

import (
	"net/url"

	"chronicle/internal/models"
	"chronicle/internal/views"

	"github.com/gofiber/fiber/v2"
)

// currentUser resolves the authenticated principal from the userEmail
// local set by the auth middleware. It fails when the token subject no
// longer maps to an account or the account has been disabled since the
// token was issued.
func (s *Server) currentUser(c *fiber.Ctx) (*models.User, error) {
	email, ok := c.Locals("userEmail").(string)
	if !ok || email == "" {
		return nil, models.NewForbiddenError("Authentication required")
	}
	user, err := s.userRepo.GetByEmail(c.UserContext(), email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewForbiddenError("Account no longer exists")
	}
	if user.Disabled {
		return nil, models.NewForbiddenError("Account is disabled")
	}
	return user, nil
}

// optionalUser resolves the principal when present, or nil for anonymous
// requests. Disabled accounts browse as anonymous.
func (s *Server) optionalUser(c *fiber.Ctx) *models.User {
	email, ok := c.Locals("userEmail").(string)
	if !ok || email == "" {
		return nil
	}
	user, err := s.userRepo.GetByEmail(c.UserContext(), email)
	if err != nil || user == nil || user.Disabled {
		return nil
	}
	return user
}

// emailParam reads the :email path parameter. Fiber leaves the path
// escaped, so a client sending alice%40example.com would otherwise miss.
func emailParam(c *fiber.Ctx) string {
	raw := c.Params("email")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// parsePage extracts the page and pageSize query parameters.
func parsePage(c *fiber.Ctx) (page, pageSize int) {
	page = c.QueryInt("page", 1)
	pageSize = c.QueryInt("pageSize", views.DefaultPageSize)
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
