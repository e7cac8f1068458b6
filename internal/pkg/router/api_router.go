package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/PiyawatK/SubTrack/app/controllers"
	"github.com/PiyawatK/SubTrack/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	api.Get("/customers", controllers.HandleListCustomers)
	api.Post("/customers", controllers.HandleCreateCustomer)
	api.Get("/customers/:id", controllers.HandleGetCustomer)
	api.Patch("/customers/:id", controllers.HandleUpdateCustomer)
	api.Delete("/customers/:id", controllers.HandleDeleteCustomer)
	api.Post("/customers/:id/extend", controllers.HandleExtendCustomer)
	api.Get("/customers/:id/renewals", controllers.HandleGetRenewalHistory)

	api.Get("/customer-owners", controllers.HandleListOwners)

	api.Get("/dashboard/owners", controllers.HandleDashboardOwners)
	api.Get("/dashboard/trend", controllers.HandleDashboardTrend)
	api.Get("/stats", controllers.HandleStats)

	api.Post("/reports/expiry", middleware.CronSecretMiddleware(), controllers.HandleExpiryReport)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
