package handlers

import (
	"roomboard/internal/app"
	"roomboard/internal/handlers/middleware"
	. "roomboard/internal/models"

	"github.com/gofiber/fiber/v2"

	notificationsController "roomboard/internal/controllers/notifications"
)

type NotificationsHandler struct {
	Handler
	notifications notificationsController.NotificationsControllerInterface
}

type enqueueRequest struct {
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
	UserID  string           `json:"userId"`
}

func NewNotificationsHandler(app *app.App, router fiber.Router) *NotificationsHandler {
	return &NotificationsHandler{
		Handler:       newHandler(app, router, "notifications_handler"),
		notifications: app.Controllers.Notifications,
	}
}

func (h *NotificationsHandler) Register() {
	notifications := h.router.Group("/notifications", h.middleware.RequireSession())
	notifications.Get("", h.visible)
	notifications.Post("/:id/read", h.markRead)
	notifications.Post("", h.middleware.RequireAdmin(), h.enqueue)
}

func (h *NotificationsHandler) visible(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	return c.JSON(fiber.Map{
		"notifications": h.notifications.Visible(c.UserContext(), session.Username),
	})
}

func (h *NotificationsHandler) markRead(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	err := h.notifications.MarkRead(c.UserContext(), session.Username, pathParam(c, "id"))
	return respond(c, fiber.StatusOK, fiber.Map{"read": true}, err, "Failed to mark notification read")
}

func (h *NotificationsHandler) enqueue(c *fiber.Ctx) error {
	var req enqueueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	notification, err := h.notifications.Enqueue(c.UserContext(), req.Message, req.Type, req.UserID)
	return respond(c, fiber.StatusCreated, fiber.Map{"notification": notification}, err,
		"Failed to queue notification")
}
