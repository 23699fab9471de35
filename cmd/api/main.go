package main

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	config "github.com/omondi3768/turf_booking/configs"
	"github.com/omondi3768/turf_booking/database"
	"github.com/omondi3768/turf_booking/handlers"
	"github.com/omondi3768/turf_booking/jobs"
	"github.com/omondi3768/turf_booking/payments"
	"github.com/omondi3768/turf_booking/routes"
	"github.com/omondi3768/turf_booking/services"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	appLog := zerolog.New(os.Stdout).With().Timestamp().Logger()

	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	cache := database.ConnectRedis()

	gateway := payments.NewRazorpayClient()

	slotSvc := services.NewSlotService(database.DB, appLog)
	turfSvc := services.NewTurfService(database.DB, cache, appLog)
	bookingSvc := services.NewBookingService(database.DB, slotSvc, turfSvc, gateway, appLog)
	revenueSvc := services.NewRevenueService(database.DB, appLog)

	handlers.Init(slotSvc, bookingSvc, turfSvc, revenueSvc, gateway)

	c := cron.New()
	c.AddFunc("15 0 * * *", jobs.DailyRevenue(revenueSvc))
	go c.Start()
	log.Info().Msg("daily revenue aggregation scheduled")

	app := fiber.New(fiber.Config{
		AppName:       "Turf Booking",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			appLog.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("request failed")
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.AuthRoutes(app)
	routes.TurfRoutes(app)
	routes.BookingRoutes(app)
	routes.PaymentRoutes(app)
	routes.AdminRoutes(app)

	port := config.Config("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("server starting")
	if err := app.Listen(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
