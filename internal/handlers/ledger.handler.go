package handlers

import (
	"roomboard/internal/app"

	"github.com/gofiber/fiber/v2"

	ledgerController "roomboard/internal/controllers/ledger"
)

type LedgerHandler struct {
	Handler
	ledger ledgerController.LedgerControllerInterface
}

func NewLedgerHandler(app *app.App, router fiber.Router) *LedgerHandler {
	return &LedgerHandler{
		Handler: newHandler(app, router, "ledger_handler"),
		ledger:  app.Controllers.Ledger,
	}
}

func (h *LedgerHandler) Register() {
	ledger := h.router.Group("/ledger", h.middleware.RequireSession(), h.middleware.RequireAdmin())
	ledger.Get("", h.list)
	ledger.Get("/summary", h.summary)
	ledger.Post("/:id/paid", h.markPaid)
}

func (h *LedgerHandler) list(c *fiber.Ctx) error {
	records, err := h.ledger.List(c.UserContext())
	if err != nil {
		return errorResponse(c, err, "Failed to list ledger records")
	}
	return c.JSON(fiber.Map{"records": records})
}

func (h *LedgerHandler) summary(c *fiber.Ctx) error {
	payouts, err := h.ledger.Summary(c.UserContext())
	if err != nil {
		return errorResponse(c, err, "Failed to summarize ledger")
	}
	return c.JSON(fiber.Map{"payouts": payouts})
}

func (h *LedgerHandler) markPaid(c *fiber.Ctx) error {
	if err := h.ledger.MarkPaid(c.UserContext(), pathParam(c, "id")); err != nil {
		return errorResponse(c, err, "Failed to mark ledger record paid")
	}
	return c.JSON(fiber.Map{"paid": true})
}
