package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omondi3768/turf_booking/handlers"
	"github.com/omondi3768/turf_booking/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Get("/me", handlers.GetMyBookings)
	bookings.Post("", handlers.CreateBooking)
	bookings.Get("/:code", handlers.GetBooking)
	bookings.Post("/:code/cancel", handlers.CancelBooking)
	bookings.Post("/:code/review", handlers.SubmitReview)
}
