package handlers

import (
	"roomboard/internal/app"
	"roomboard/internal/handlers/middleware"
	"roomboard/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func newHandler(app *app.App, router fiber.Router, file string) Handler {
	return Handler{
		middleware: app.Middleware,
		log:        logger.New("handlers").File(file),
		router:     router,
	}
}

func Router(router fiber.Router, app *app.App) (err error) {
	router.Use(app.Middleware.TraceID())

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewSessionHandler(app, api).Register()
	NewRoomsHandler(app, api).Register()
	NewHistoryHandler(app, api).Register()
	NewUsersHandler(app, api).Register()
	NewHousekeepersHandler(app, api).Register()
	NewNotificationsHandler(app, api).Register()
	NewLedgerHandler(app, api).Register()

	return nil
}
