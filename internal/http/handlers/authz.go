package handlers

import (
	"strings"

	"petsupplies/internal/domain"
	applog "petsupplies/internal/log"
	"petsupplies/internal/services"

	"github.com/gofiber/fiber/v2"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// RequirePrincipal resolves the bearer token into a Principal and
// stores it in Locals. No token or a bad token ends the request with
// 401.
func RequirePrincipal(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{"kind": "unauthorized", "message": "missing bearer token"},
			})
		}
		p, err := auth.ParseToken(raw)
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{"kind": "unauthorized", "message": "invalid or expired token"},
			})
		}
		c.Locals("principal", p)
		return c.Next()
	}
}

// RequireRole guards a route group for the given roles. It assumes
// RequirePrincipal ran earlier in the chain.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := principal(c)
		for _, r := range roles {
			if p.Role == r {
				return c.Next()
			}
		}
		applog.Security(c, "access.denied", map[string]any{"role": p.Role, "need": roles})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": fiber.Map{"kind": string(domain.KindForbidden), "message": "insufficient role"},
		})
	}
}

func principal(c *fiber.Ctx) domain.Principal {
	p, _ := c.Locals("principal").(domain.Principal)
	return p
}
