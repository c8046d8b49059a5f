package server

import (
	"chronicle/internal/models"
	"chronicle/internal/service"
	"chronicle/internal/views"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": models.Categories})
}

// GetPosts handles GET /api/posts with search, category, sortBy, page and
// pageSize query parameters.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, pageSize := parsePage(c)
	result, err := s.postService.ListPosts(c.UserContext(), service.ListPostsInput{
		Viewer:   s.optionalUser(c),
		Search:   c.Query("search"),
		Category: c.Query("category"),
		SortBy:   c.Query("sortBy", views.SortDateDesc),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(result)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.UserContext(), c.Params("id"), s.optionalUser(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"post":          post,
		"averageRating": post.AverageRating(),
	})
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Image    string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorEmail: user.Email,
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Image    string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		Editor:   user,
		PostID:   c.Params("id"),
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	if err := s.postService.DeletePost(c.UserContext(), c.Params("id"), user); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// RatePost handles POST /api/posts/:id/ratings
func (s *Server) RatePost(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	var req struct {
		Rating int `json:"rating"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.RatePost(c.UserContext(), c.Params("id"), req.Rating, user)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"post":          post,
		"averageRating": post.AverageRating(),
	})
}

// GetFeed handles GET /api/feed: posts by followed authors, newest first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}

	following, err := s.followService.Following(c.UserContext(), user.Email)
	if err != nil {
		return models.RespondError(c, err)
	}

	page, pageSize := parsePage(c)
	result, err := s.postService.Feed(c.UserContext(), user, following, page, pageSize)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(result)
}
