// Package log emits structured JSON log lines through zap. Call sites
// pass the fiber context when one exists so every line carries the
// request id, peer address and route.
package log

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var logger = zap.Must(zap.NewProduction())

// SetLogger swaps the backing logger; tests use zap.NewNop().
func SetLogger(l *zap.Logger) { logger = l }

func fieldsFor(c *fiber.Ctx, action string, err error, extra map[string]any) []zap.Field {
	fs := []zap.Field{zap.String("action", action)}
	if c != nil {
		fs = append(fs,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			fs = append(fs, zap.String("req_id", rid))
		}
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	for k, v := range extra {
		fs = append(fs, zap.Any(k, v))
	}
	return fs
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	logger.Info(action, fieldsFor(c, action, nil, fields)...)
}

// Audit marks lines recording a state-changing action by a principal.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	logger.Info(action, append(fieldsFor(c, action, nil, fields), zap.String("channel", "audit"))...)
}

// Security marks denied access and validation rejections.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	logger.Warn(action, fieldsFor(c, action, nil, fields)...)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	logger.Error(action, fieldsFor(c, action, err, fields)...)
}
