package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/omondi3768/turf_booking/models"
)

func ListTurfs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := turfSvc.ListTurfs(c.UserContext(), page, limit)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": result})
}

func GetTurf(c *fiber.Ctx) error {
	turfID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid turf id"})
	}

	turf, err := turfSvc.GetTurfByID(c.UserContext(), turfID)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"turf": turf}})
}

func GetAvailability(c *fiber.Ctx) error {
	turfID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid turf id"})
	}
	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slots, err := slotSvc.GetAvailability(c.UserContext(), turfID, date)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"date": date, "slots": slots}})
}

type TurfRequest struct {
	TurfName       string   `json:"turf_name" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Address        string   `json:"address" validate:"required"`
	PricePerHour   float64  `json:"price_per_hour" validate:"required,gt=0"`
	Amenities      []string `json:"amenities"`
	OpenTime       string   `json:"open_time" validate:"required,len=5"`
	CloseTime      string   `json:"close_time" validate:"required,len=5"`
	ContactDetails string   `json:"contact_details" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
}

func CreateTurf(c *fiber.Ctx) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user token"})
	}

	var req TurfRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	turf := models.Turf{
		AdminID:        adminID,
		TurfName:       req.TurfName,
		Description:    req.Description,
		Address:        req.Address,
		PricePerHour:   req.PricePerHour,
		Amenities:      req.Amenities,
		OpenTime:       req.OpenTime,
		CloseTime:      req.CloseTime,
		ContactDetails: req.ContactDetails,
		Email:          req.Email,
		IsActive:       true,
	}
	if err := turfSvc.CreateTurf(c.UserContext(), &turf); err != nil {
		return businessError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": fiber.Map{"turf": turf}})
}

func UpdateTurf(c *fiber.Ctx) error {
	turfID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid turf id"})
	}

	var req TurfRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	turf, err := turfSvc.UpdateTurf(c.UserContext(), turfID, map[string]interface{}{
		"turf_name":       req.TurfName,
		"description":     req.Description,
		"address":         req.Address,
		"price_per_hour":  req.PricePerHour,
		"open_time":       req.OpenTime,
		"close_time":      req.CloseTime,
		"contact_details": req.ContactDetails,
		"email":           req.Email,
	})
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"turf": turf}})
}

func DeleteTurf(c *fiber.Ctx) error {
	turfID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid turf id"})
	}

	if err := turfSvc.DeactivateTurf(c.UserContext(), turfID); err != nil {
		return businessError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Turf has been deactivated."})
}

func GetTurfBookings(c *fiber.Ctx) error {
	turfID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid turf id"})
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := bookingSvc.GetBookingsForTurf(c.UserContext(), turfID, page, limit)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": result})
}
