package handlers

import (
	"roomboard/internal/app"
	. "roomboard/internal/models"
	"strings"

	"github.com/gofiber/fiber/v2"

	authController "roomboard/internal/controllers/auth"
	notificationsController "roomboard/internal/controllers/notifications"
)

type UsersHandler struct {
	Handler
	auth          authController.AuthControllerInterface
	notifications notificationsController.NotificationsControllerInterface
}

func NewUsersHandler(app *app.App, router fiber.Router) *UsersHandler {
	return &UsersHandler{
		Handler:       newHandler(app, router, "users_handler"),
		auth:          app.Controllers.Auth,
		notifications: app.Controllers.Notifications,
	}
}

func (h *UsersHandler) Register() {
	users := h.router.Group("/users", h.middleware.RequireSession(), h.middleware.RequireAdmin())
	users.Get("", h.list)
	users.Post("", h.add)
	users.Put("/:username", h.update)
	users.Delete("/:username", h.delete)
}

func (h *UsersHandler) list(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"users": h.auth.ListUsers(c.UserContext())})
}

func (h *UsersHandler) add(c *fiber.Ctx) error {
	var req StoredUser
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.auth.AddUser(c.UserContext(), req)
	return respond(c, fiber.StatusCreated, fiber.Map{"user": user}, err, "Failed to add user")
}

func (h *UsersHandler) update(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx := c.UserContext()
	username := pathParam(c, "username")
	previous := h.storedUsername(c, username)

	user, err := h.auth.UpdateUser(ctx, username, req)
	if (err == nil || isPersistOnly(err)) && previous != "" && user.Username != previous {
		// Notifications are addressed by username and follow the rename.
		if _, renameErr := h.notifications.RenameRecipient(ctx, previous, user.Username); renameErr != nil && err == nil {
			err = renameErr
		}
	}

	return respond(c, fiber.StatusOK, fiber.Map{"user": user}, err, "Failed to update user")
}

// storedUsername returns the roster spelling of username, or "" when unknown.
func (h *UsersHandler) storedUsername(c *fiber.Ctx, username string) string {
	username = strings.TrimSpace(username)
	for _, profile := range h.auth.ListUsers(c.UserContext()) {
		if strings.EqualFold(profile.Username, username) {
			return profile.Username
		}
	}
	return ""
}

func (h *UsersHandler) delete(c *fiber.Ctx) error {
	err := h.auth.DeleteUser(c.UserContext(), pathParam(c, "username"))
	return respond(c, fiber.StatusOK, fiber.Map{"deleted": true}, err, "Failed to delete user")
}
