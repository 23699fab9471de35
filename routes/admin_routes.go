package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omondi3768/turf_booking/handlers"
	"github.com/omondi3768/turf_booking/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/dashboard", handlers.Dashboard)

	revenue := admin.Group("/revenue")
	revenue.Post("/calculate", handlers.CalculateRevenue)
	revenue.Get("/report", handlers.RevenueReport)
}
