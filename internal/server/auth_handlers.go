package server

import (
	"fmt"
	"time"

	"chronicle/internal/models"
	"chronicle/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return models.RespondError(c,
			models.NewValidationError("Full name, email, and password are required"))
	}
	if err := validation.ValidateFullName(req.FullName); err != nil {
		return models.RespondError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondError(c, models.NewValidationError(err.Error()))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Email:    models.NormalizeEmail(req.Email),
		FullName: req.FullName,
		Password: string(hashedPassword),
		JoinedAt: time.Now().UTC(),
	}

	// Uniqueness is enforced inside the collection write, so two
	// concurrent registrations cannot both slip through a pre-check.
	if createErr := s.userRepo.Create(c.UserContext(), user); createErr != nil {
		return models.RespondError(c, createErr)
	}

	token, err := s.generateToken(user.Email)
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user.Redacted(),
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return models.RespondError(c, err)
	}
	if user == nil {
		return models.RespondError(c, models.NewInvalidCredentialsError())
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondError(c, models.NewInvalidCredentialsError())
	}

	if user.Disabled {
		return models.RespondError(c,
			models.NewForbiddenError("Account is disabled"))
	}

	token, err := s.generateToken(user.Email)
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Redacted(),
	})
}

// generateToken creates a JWT for the given account. The subject is the
// account email; every handler derives the acting identity from it.
func (s *Server) generateToken(email string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"iss": "chronicle-api",
		"exp": now.Add(time.Hour * 24 * 7).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": fmt.Sprintf("%d-%s", now.Unix(), uuid.NewString()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
