package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PiyawatK/SubTrack/app/repository"
)

// HandleListOwners returns active customer owners for selection lists,
// ordered by sort_order then name.
func HandleListOwners(c *fiber.Ctx) error {
	owners, err := repository.GetGlobalFactory().GetOwnerRepository().GetActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load owners"})
	}
	return c.JSON(fiber.Map{"data": owners})
}
