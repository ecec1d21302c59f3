package handlers

import (
	"petsupplies/internal/domain"
	applog "petsupplies/internal/log"

	"github.com/gofiber/fiber/v2"
)

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindStorage, domain.KindPersistence:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// fail maps a service error to the JSON error envelope. Storage and
// persistence failures are logged with their cause but reported with a
// generic message so internals do not leak.
func fail(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	if kind == "" {
		kind = domain.KindPersistence
	}
	msg := err.Error()
	if kind == domain.KindStorage || kind == domain.KindPersistence {
		applog.Error(c, "request.fail", err, map[string]any{"kind": string(kind)})
		msg = "internal error"
	}
	return c.Status(statusFor(kind)).JSON(fiber.Map{
		"error": fiber.Map{"kind": string(kind), "message": msg},
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fiber.Map{"kind": string(domain.KindValidation), "message": msg},
	})
}
