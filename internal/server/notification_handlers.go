package server

import (
	"chronicle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	notifs, err := s.notifService.List(c.UserContext(), user.Email)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"notifications": notifs})
}

// GetUnreadCount handles GET /api/notifications/unread-count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	count, err := s.notifService.UnreadCount(c.UserContext(), user.Email)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"unread": count})
}

// MarkNotificationRead handles POST /api/notifications/:id/read
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	if err := s.notifService.MarkRead(c.UserContext(), user.Email, c.Params("id")); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	if err := s.notifService.MarkAllRead(c.UserContext(), user.Email); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}

// DeleteNotification handles DELETE /api/notifications/:id
func (s *Server) DeleteNotification(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	if err := s.notifService.Delete(c.UserContext(), user.Email, c.Params("id")); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification deleted"})
}

// ClearNotifications handles DELETE /api/notifications
func (s *Server) ClearNotifications(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondError(c, err)
	}
	if err := s.notifService.ClearAll(c.UserContext(), user.Email); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notifications cleared"})
}
