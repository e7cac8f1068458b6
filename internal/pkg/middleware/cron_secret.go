package middleware

import (
	"crypto/subtle"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/PiyawatK/SubTrack/internal/pkg/env"
)

// CronSecretMiddleware guards scheduler-only endpoints with the shared
// secret from CRON_SECRET. The header is compared in constant time. With no
// secret configured the request passes with a warning, which keeps local
// development working without a .env entry.
func CronSecretMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := env.GetEnv("CRON_SECRET", "")
		if secret == "" {
			log.Print("cron middleware: CRON_SECRET not set, allowing request")
			return c.Next()
		}

		got := c.Get("X-Cron-Secret")
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid cron secret"})
		}
		return c.Next()
	}
}
