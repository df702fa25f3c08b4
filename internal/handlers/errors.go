package handlers

import (
	"errors"
	"roomboard/internal/handlers/middleware"
	"roomboard/internal/services"

	"github.com/gofiber/fiber/v2"

	authController "roomboard/internal/controllers/auth"
	historyController "roomboard/internal/controllers/history"
	housekeepersController "roomboard/internal/controllers/housekeepers"
	ledgerController "roomboard/internal/controllers/ledger"
	notificationsController "roomboard/internal/controllers/notifications"
	roomsController "roomboard/internal/controllers/rooms"
)

var (
	validationErrors = []error{
		roomsController.ErrValidation,
		roomsController.ErrPaymentRegression,
		historyController.ErrValidation,
		authController.ErrValidation,
		housekeepersController.ErrValidation,
		notificationsController.ErrValidation,
		ledgerController.ErrValidation,
	}
	notFoundErrors = []error{
		roomsController.ErrNotFound,
		historyController.ErrNotFound,
		authController.ErrNotFound,
	}
	remoteErrors = []error{
		services.ErrRemote,
		housekeepersController.ErrRemote,
		ledgerController.ErrRemote,
	}
	persistErrors = []error{
		roomsController.ErrPersist,
		historyController.ErrPersist,
		authController.ErrPersist,
		notificationsController.ErrPersist,
	}
)

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// isPersistOnly reports whether the change was committed and only the write-through failed.
func isPersistOnly(err error) bool {
	return err != nil && isAny(err, persistErrors)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, authController.ErrInvalidCredentials), errors.Is(err, authController.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case isAny(err, validationErrors):
		return fiber.StatusBadRequest
	case isAny(err, notFoundErrors):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrLedgerDisabled):
		return fiber.StatusServiceUnavailable
	case isAny(err, remoteErrors):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error, fallback string) error {
	status := statusFor(err)

	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{
			"error":   fallback,
			"traceId": middleware.GetTraceID(c),
		})
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// respond writes body with status. A persist-only error keeps the status and
// adds a warning; any other error is mapped to an error response.
func respond(c *fiber.Ctx, status int, body fiber.Map, err error, fallback string) error {
	if err != nil && !isPersistOnly(err) {
		return errorResponse(c, err, fallback)
	}

	if err != nil {
		body["warning"] = "change applied but could not be saved"
	}

	return c.Status(status).JSON(body)
}
