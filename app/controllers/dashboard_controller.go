package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/PiyawatK/SubTrack/internal/pkg/billing"
	"github.com/PiyawatK/SubTrack/internal/pkg/database"
)

// HandleDashboardOwners returns per-owner revenue totals for one calendar
// month (?month=YYYY-MM, required). ?ownerId narrows the report to one owner.
func HandleDashboardOwners(c *fiber.Ctx) error {
	month, err := billing.ParseMonth(strings.TrimSpace(c.Query("month")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "month must be YYYY-MM"})
	}

	ownerID, err := parseOwnerIDQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "ownerId must be a positive integer"})
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	rows, err := svc.OwnerReport(c.Context(), month, ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to aggregate owner report"})
	}
	return c.JSON(rows)
}

// HandleDashboardTrend returns a gap-filled month-by-month revenue trend for
// the trailing ?months months (default 12, clamped to 1..24).
func HandleDashboardTrend(c *fiber.Ctx) error {
	months, err := strconv.Atoi(c.Query("months", "12"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "months must be an integer"})
	}

	ownerID, err := parseOwnerIDQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "ownerId must be a positive integer"})
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	points, err := svc.Trend(c.Context(), months, ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to build trend"})
	}
	return c.JSON(points)
}

// HandleStats returns customer counts per derived lifecycle status.
func HandleStats(c *fiber.Ctx) error {
	svc := billing.NewServiceFromDB(database.GetDB())
	overview, err := svc.StatusOverview(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load stats"})
	}
	return c.JSON(overview)
}

func parseOwnerIDQuery(c *fiber.Ctx) (*uint, error) {
	raw := strings.TrimSpace(c.Query("ownerId"))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, errors.New("ownerId must be positive")
	}
	ownerID := uint(id)
	return &ownerID, nil
}
