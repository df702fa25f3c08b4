package handlers

import (
	"roomboard/internal/app"
	. "roomboard/internal/models"

	"github.com/gofiber/fiber/v2"

	roomsController "roomboard/internal/controllers/rooms"
)

type RoomsHandler struct {
	Handler
	rooms roomsController.RoomsControllerInterface
}

type updateStatusRequest struct {
	Status RoomStatus `json:"status"`
}

type assignRequest struct {
	Housekeeper string `json:"housekeeper"`
}

type updateFieldRequest struct {
	Field RoomField `json:"field"`
	Value string    `json:"value"`
}

func NewRoomsHandler(app *app.App, router fiber.Router) *RoomsHandler {
	return &RoomsHandler{
		Handler: newHandler(app, router, "rooms_handler"),
		rooms:   app.Controllers.Rooms,
	}
}

func (h *RoomsHandler) Register() {
	rooms := h.router.Group("/rooms", h.middleware.RequireSession())
	rooms.Get("", h.list)
	rooms.Get("/:id", h.get)
	rooms.Put("/:id/status", h.updateStatus)

	admin := h.middleware.RequireAdmin()
	rooms.Post("", admin, h.create)
	rooms.Put("/:id/assign", admin, h.assign)
	rooms.Patch("/:id", admin, h.updateField)
	rooms.Post("/:id/paid", admin, h.markPaid)
	rooms.Delete("/:id", admin, h.delete)
}

func (h *RoomsHandler) list(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"rooms": h.rooms.List(c.UserContext())})
}

func (h *RoomsHandler) get(c *fiber.Ctx) error {
	room, err := h.rooms.Get(c.UserContext(), pathParam(c, "id"))
	if err != nil {
		return errorResponse(c, err, "Failed to get room")
	}
	return c.JSON(fiber.Map{"room": room})
}

func (h *RoomsHandler) create(c *fiber.Ctx) error {
	var req CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	room, err := h.rooms.Create(c.UserContext(), req)
	return respond(c, fiber.StatusCreated, fiber.Map{"room": room}, err, "Failed to create room")
}

func (h *RoomsHandler) updateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	room, err := h.rooms.UpdateStatus(c.UserContext(), pathParam(c, "id"), req.Status)
	return respond(c, fiber.StatusOK, fiber.Map{"room": room}, err, "Failed to update room status")
}

func (h *RoomsHandler) assign(c *fiber.Ctx) error {
	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	room, err := h.rooms.Assign(c.UserContext(), pathParam(c, "id"), req.Housekeeper)
	return respond(c, fiber.StatusOK, fiber.Map{"room": room}, err, "Failed to assign room")
}

func (h *RoomsHandler) updateField(c *fiber.Ctx) error {
	var req updateFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	room, err := h.rooms.UpdateField(c.UserContext(), pathParam(c, "id"), req.Field, req.Value)
	return respond(c, fiber.StatusOK, fiber.Map{"room": room}, err, "Failed to update room")
}

func (h *RoomsHandler) markPaid(c *fiber.Ctx) error {
	room, err := h.rooms.MarkPaid(c.UserContext(), pathParam(c, "id"))
	return respond(c, fiber.StatusOK, fiber.Map{"room": room}, err, "Failed to mark room paid")
}

func (h *RoomsHandler) delete(c *fiber.Ctx) error {
	deleted, err := h.rooms.Delete(c.UserContext(), pathParam(c, "id"), c.QueryBool("confirm"))
	return respond(c, fiber.StatusOK, fiber.Map{"deleted": deleted}, err, "Failed to delete room")
}
