package middleware

import (
	"roomboard/internal/logger"
	"roomboard/internal/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const SessionKeyFiber = "Session"

// RequireSession accepts a bearer token only while it belongs to the active session.
func (m *Middleware) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.NewWithContext(c.UserContext(), "middleware").Function("RequireSession")

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Info("missing authorization header")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") || tokenParts[1] == "" {
			log.Info("invalid authorization header format")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		session, err := m.auth.ValidateToken(c.UserContext(), tokenParts[1])
		if err != nil {
			log.Info("session token rejected")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		c.Locals(SessionKeyFiber, session)
		return c.Next()
	}
}

// RequireAdmin must run after RequireSession.
func (m *Middleware) RequireAdmin() fiber.Handler {
	log := m.log.Function("RequireAdmin")

	return func(c *fiber.Ctx) error {
		session := GetSession(c)
		if session == nil {
			log.Info("session not found in context")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		if !session.IsAdmin() {
			log.Info("user is not admin", "username", session.Username)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		return c.Next()
	}
}

func GetSession(c *fiber.Ctx) *models.Session {
	session, ok := c.Locals(SessionKeyFiber).(*models.Session)
	if !ok {
		return nil
	}
	return session
}
