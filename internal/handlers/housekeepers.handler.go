package handlers

import (
	"roomboard/internal/app"

	"github.com/gofiber/fiber/v2"

	housekeepersController "roomboard/internal/controllers/housekeepers"
)

type HousekeepersHandler struct {
	Handler
	housekeepers housekeepersController.HousekeepersControllerInterface
}

type addHousekeeperRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewHousekeepersHandler(app *app.App, router fiber.Router) *HousekeepersHandler {
	return &HousekeepersHandler{
		Handler:      newHandler(app, router, "housekeepers_handler"),
		housekeepers: app.Controllers.Housekeepers,
	}
}

func (h *HousekeepersHandler) Register() {
	housekeepers := h.router.Group("/housekeepers", h.middleware.RequireSession(), h.middleware.RequireAdmin())
	housekeepers.Get("", h.list)
	housekeepers.Post("", h.add)
	housekeepers.Delete("/:name", h.delete)
}

// list reloads from the roster service unless cached=true is passed.
func (h *HousekeepersHandler) list(c *fiber.Ctx) error {
	if c.QueryBool("cached") {
		return c.JSON(h.housekeepers.State())
	}

	state, err := h.housekeepers.Load(c.UserContext())
	if err != nil {
		return c.Status(statusFor(err)).JSON(state)
	}
	return c.JSON(state)
}

func (h *HousekeepersHandler) add(c *fiber.Ctx) error {
	var req addHousekeeperRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	state, err := h.housekeepers.Add(c.UserContext(), req.Name, req.Email)
	if err != nil {
		return errorResponse(c, err, "Failed to add housekeeper")
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

func (h *HousekeepersHandler) delete(c *fiber.Ctx) error {
	deleted, err := h.housekeepers.Delete(c.UserContext(), pathParam(c, "name"), c.QueryBool("confirm"))
	return respond(c, fiber.StatusOK, fiber.Map{"deleted": deleted}, err, "Failed to delete housekeeper")
}
