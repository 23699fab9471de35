package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omondi3768/turf_booking/handlers"
	"github.com/omondi3768/turf_booking/middleware"
)

func TurfRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	turfs := api.Group("/turfs")
	turfs.Get("", handlers.ListTurfs)
	turfs.Get("/:id", handlers.GetTurf)
	turfs.Get("/:id/availability", handlers.GetAvailability)

	adminTurfs := api.Group("/admin/turfs", middleware.Protected(), middleware.AdminRequired())
	adminTurfs.Post("", handlers.CreateTurf)
	adminTurfs.Put("/:id", handlers.UpdateTurf)
	adminTurfs.Delete("/:id", handlers.DeleteTurf)
	adminTurfs.Get("/:id/bookings", handlers.GetTurfBookings)
}
