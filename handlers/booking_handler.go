package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/omondi3768/turf_booking/services"
)

type CreateBookingRequest struct {
	TurfID        string               `json:"turf_id" validate:"required,uuid"`
	BookingDate   string               `json:"booking_date" validate:"required"`
	TimeSlots     []services.SlotRange `json:"time_slots" validate:"required,min=1,dive"`
	PaymentMethod string               `json:"payment_method" validate:"required,oneof=online cash"`
	PlayerCount   *int                 `json:"player_count,omitempty" validate:"omitempty,min=1"`
}

func CreateBooking(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user token"})
	}

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	turfID, _ := uuid.Parse(req.TurfID)
	date, err := parseDateParam(req.BookingDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, order, err := bookingSvc.CreateBooking(c.UserContext(), services.CreateBookingInput{
		UserID:        userID,
		TurfID:        turfID,
		BookingDate:   date,
		Slots:         req.TimeSlots,
		PaymentMethod: req.PaymentMethod,
		PlayerCount:   req.PlayerCount,
	})
	if err != nil {
		return businessError(c, err)
	}

	data := fiber.Map{"booking": booking}
	if order != nil {
		data["order"] = order
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": data})
}

func GetBooking(c *fiber.Ctx) error {
	booking, err := bookingSvc.GetBookingByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"booking": booking}})
}

type CancelBookingRequest struct {
	CancellationReason string `json:"cancellation_reason" validate:"required"`
}

func CancelBooking(c *fiber.Ctx) error {
	var req CancelBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := bookingSvc.CancelBooking(c.UserContext(), c.Params("code"), req.CancellationReason)
	if err != nil {
		return businessError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Booking has been cancelled.",
		"data":    fiber.Map{"booking": booking},
	})
}

type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review"`
}

func SubmitReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := bookingSvc.SubmitReview(c.UserContext(), c.Params("code"), req.Rating, req.Review)
	if err != nil {
		return businessError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Thank you for your review!",
		"data":    fiber.Map{"booking": booking},
	})
}

func GetMyBookings(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user token"})
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	filter := c.Query("filter")

	result, err := bookingSvc.GetBookingsForUser(c.UserContext(), userID, filter, page, limit)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": result})
}
