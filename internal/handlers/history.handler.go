package handlers

import (
	"roomboard/internal/app"

	"github.com/gofiber/fiber/v2"

	historyController "roomboard/internal/controllers/history"
)

type HistoryHandler struct {
	Handler
	history historyController.HistoryControllerInterface
}

func NewHistoryHandler(app *app.App, router fiber.Router) *HistoryHandler {
	return &HistoryHandler{
		Handler: newHandler(app, router, "history_handler"),
		history: app.Controllers.History,
	}
}

func (h *HistoryHandler) Register() {
	history := h.router.Group("/history", h.middleware.RequireSession(), h.middleware.RequireAdmin())
	history.Get("", h.list)
	history.Post("", h.save)
	history.Get("/:date", h.get)
	history.Post("/:date/restore", h.restore)
	history.Delete("/:date", h.delete)
}

func (h *HistoryHandler) list(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"history": h.history.List(c.UserContext())})
}

func (h *HistoryHandler) save(c *fiber.Ctx) error {
	entry, err := h.history.SaveSnapshot(c.UserContext())
	return respond(c, fiber.StatusCreated, fiber.Map{"entry": entry}, err, "Failed to save snapshot")
}

func (h *HistoryHandler) get(c *fiber.Ctx) error {
	entry, err := h.history.Get(c.UserContext(), pathParam(c, "date"))
	if err != nil {
		return errorResponse(c, err, "Failed to get snapshot")
	}
	return c.JSON(fiber.Map{"entry": entry})
}

func (h *HistoryHandler) restore(c *fiber.Ctx) error {
	restored, err := h.history.Restore(c.UserContext(), pathParam(c, "date"), c.QueryBool("confirm"))
	return respond(c, fiber.StatusOK, fiber.Map{"restored": restored}, err, "Failed to restore snapshot")
}

func (h *HistoryHandler) delete(c *fiber.Ctx) error {
	err := h.history.DeleteSnapshot(c.UserContext(), pathParam(c, "date"))
	return respond(c, fiber.StatusOK, fiber.Map{"deleted": true}, err, "Failed to delete snapshot")
}
