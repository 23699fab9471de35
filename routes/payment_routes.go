package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omondi3768/turf_booking/handlers"
	"github.com/omondi3768/turf_booking/middleware"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments", middleware.Protected())
	payments.Post("/verify", handlers.VerifyPayment)
	payments.Get("/:orderId/status", handlers.PaymentStatus)
}
