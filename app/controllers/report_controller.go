package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PiyawatK/SubTrack/internal/pkg/billing"
	"github.com/PiyawatK/SubTrack/internal/pkg/database"
)

// HandleExpiryReport builds the expiring/expired digest and pushes it to
// Telegram. Meant to be hit by an external scheduler; the route is guarded by
// the cron-secret middleware.
func HandleExpiryReport(c *fiber.Ctx) error {
	svc := billing.NewServiceFromDB(database.GetDB())
	report, err := svc.ExpiryDigest(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to build expiry report"})
	}
	return c.JSON(report)
}
