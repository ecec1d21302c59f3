package main

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"petsupplies/internal/config"
	"petsupplies/internal/domain"
	"petsupplies/internal/http/handlers"
	applog "petsupplies/internal/log"
	"petsupplies/internal/media"
	"petsupplies/internal/repos"
	"petsupplies/internal/services"
)

func main() {
	cfg := config.Load()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	images, err := media.NewDiskStore(cfg.MediaDir)
	if err != nil {
		log.Fatal(err)
	}

	authSvc := &services.AuthService{
		Users:   repos.NewUserRepo(db),
		Sellers: repos.NewSellerRepo(db),
		Secret:  []byte(cfg.JWTSecret),
		TTL:     cfg.JWTTTL,
	}

	app := fiber.New(fiber.Config{
		AppName: "Pet Supplies API",
		// Bounds slow clients and slow storage alike; a request that
		// exceeds these surfaces as a server error rather than hanging.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "internal error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			} else {
				applog.Error(c, "server.error", err, nil)
			}
			return c.Status(code).JSON(fiber.Map{
				"error": fiber.Map{"kind": "internal", "message": msg},
			})
		},
	})
	// Multipart uploads are bounded here rather than per-handler.
	app.Server().MaxRequestBodySize = 8 << 20 // 8 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/media/")
		},
	}))

	// ---------- Uploaded media ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /media -> %s", mediaDir)
	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	})

	// ---------- Routes ----------
	deps := handlers.NewDeps(db, authSvc, images)
	api := app.Group("/api")

	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{"kind": "rate_limited", "message": "too many attempts, retry later"},
			})
		},
	}), deps.AuthHandler.Login)

	products := api.Group("/products")
	products.Get("/", deps.ProductHandler.List)
	products.Get("/categories", deps.ProductHandler.Categories)
	products.Get("/:id", deps.ProductHandler.Detail)

	withPrincipal := handlers.RequirePrincipal(authSvc)
	products.Post("/", withPrincipal, handlers.RequireRole(domain.RoleSeller), deps.ProductHandler.Create)
	products.Put("/:id", withPrincipal, handlers.RequireRole(domain.RoleSeller), deps.ProductHandler.Update)
	products.Delete("/:id", withPrincipal, handlers.RequireRole(domain.RoleSeller, domain.RoleAdmin), deps.ProductHandler.Delete)
	products.Post("/:id/approve", withPrincipal, handlers.RequireRole(domain.RoleAdmin), deps.ProductHandler.Approve)
	products.Post("/:id/reject", withPrincipal, handlers.RequireRole(domain.RoleAdmin), deps.ProductHandler.Reject)

	api.Get("/notifications", withPrincipal, deps.NotificationHandler.List)
	api.Post("/notifications/:id/read", withPrincipal, deps.NotificationHandler.MarkRead)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fiber.Map{"kind": "not_found", "message": "route not found"},
		})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
