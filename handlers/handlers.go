package handlers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/omondi3768/turf_booking/services"
)

var validate = validator.New()

var (
	slotSvc    *services.SlotService
	bookingSvc *services.BookingService
	turfSvc    *services.TurfService
	revenueSvc *services.RevenueService
	gateway    services.PaymentGateway
)

// Init wires the handler package to the service layer. Called once from main.
func Init(slots *services.SlotService, bookings *services.BookingService, turfs *services.TurfService, revenue *services.RevenueService, pg services.PaymentGateway) {
	slotSvc = slots
	bookingSvc = bookings
	turfSvc = turfs
	revenueSvc = revenue
	gateway = pg
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	raw, _ := claims["user_id"].(string)
	return uuid.Parse(raw)
}

// businessStatus maps the service error taxonomy to HTTP statuses.
// Anything unmapped is an internal failure.
func businessStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrTurfNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrSlotUnavailable):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrAlreadyCancelled),
		errors.Is(err, services.ErrPastBooking),
		errors.Is(err, services.ErrPaymentVerificationFailed),
		errors.Is(err, services.ErrReviewAlreadySubmitted),
		errors.Is(err, services.ErrCancelledBookingReview),
		errors.Is(err, services.ErrBookingNotYetOccurred):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUpstreamPayment):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func businessError(c *fiber.Ctx, err error) error {
	status := businessStatus(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "Something went wrong"
	}
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": message})
}

func parseDateParam(value string) (string, error) {
	if _, err := time.Parse(services.DateLayout, value); err != nil {
		return "", errors.New("date must be in YYYY-MM-DD format")
	}
	return value, nil
}
