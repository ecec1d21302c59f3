package handlers

import (
	"petsupplies/internal/services"
	"petsupplies/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Notes *services.NotificationService
}

// List handles GET /api/notifications for the authenticated user.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	out, err := h.Notes.ListForUser(principal(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// MarkRead handles POST /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid notification id")
	}
	if err := h.Notes.MarkRead(principal(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked read"})
}
