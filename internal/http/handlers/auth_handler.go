package handlers

import (
	applog "petsupplies/internal/log"
	"petsupplies/internal/services"
	"petsupplies/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// Login handles POST /api/auth/login and issues a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "expected JSON body with email and password")
	}
	email, ok := validate.Email(body.Email)
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": fiber.Map{"kind": "unauthorized", "message": "invalid email or password"},
		})
	}

	token, user, err := h.Auth.Login(email, body.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": fiber.Map{"kind": "unauthorized", "message": "invalid email or password"},
		})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"user_id": user.ID})
	return c.JSON(fiber.Map{"token": token, "role": user.Role})
}
