package handlers

import (
	"roomboard/internal/app"
	"roomboard/internal/handlers/middleware"
	. "roomboard/internal/models"

	"github.com/gofiber/fiber/v2"

	authController "roomboard/internal/controllers/auth"
	notificationsController "roomboard/internal/controllers/notifications"
)

type SessionHandler struct {
	Handler
	auth          authController.AuthControllerInterface
	notifications notificationsController.NotificationsControllerInterface
}

func NewSessionHandler(app *app.App, router fiber.Router) *SessionHandler {
	return &SessionHandler{
		Handler:       newHandler(app, router, "session_handler"),
		auth:          app.Controllers.Auth,
		notifications: app.Controllers.Notifications,
	}
}

func (h *SessionHandler) Register() {
	session := h.router.Group("/session")
	session.Post("/login", h.login)
	session.Post("/logout", h.middleware.RequireSession(), h.logout)
	session.Get("", h.middleware.RequireSession(), h.current)
}

func (h *SessionHandler) login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx := c.UserContext()
	result, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil && !isPersistOnly(err) {
		return errorResponse(c, err, "Failed to log in")
	}

	visible := h.notifications.Activate(ctx, result.Session.Username)

	return respond(c, fiber.StatusOK, fiber.Map{
		"session":       result.Session,
		"token":         result.Token,
		"notifications": visible,
	}, err, "Failed to log in")
}

func (h *SessionHandler) logout(c *fiber.Ctx) error {
	ctx := c.UserContext()

	err := h.auth.Logout(ctx)
	h.notifications.Deactivate(ctx)

	return respond(c, fiber.StatusOK, fiber.Map{"loggedOut": true}, err, "Failed to log out")
}

func (h *SessionHandler) current(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"session": middleware.GetSession(c)})
}
