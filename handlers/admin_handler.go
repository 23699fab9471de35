package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Dashboard(c *fiber.Ctx) error {
	overview, err := revenueSvc.DashboardOverview(c.UserContext())
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": overview})
}

type CalculateRevenueRequest struct {
	TurfID string `json:"turf_id" validate:"required,uuid"`
	Date   string `json:"date" validate:"required"`
}

// CalculateRevenue forces a recompute of one turf-day. The nightly job
// covers the previous day; this is for on-demand corrections.
func CalculateRevenue(c *fiber.Ctx) error {
	var req CalculateRevenueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	turfID, _ := uuid.Parse(req.TurfID)
	date, err := parseDateParam(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	revenue, err := revenueSvc.CalculateRevenueForDate(c.UserContext(), turfID, date)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"revenue": revenue}})
}

func RevenueReport(c *fiber.Ctx) error {
	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from " + err.Error()})
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to " + err.Error()})
	}

	var turfID *uuid.UUID
	if raw := c.Query("turf_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid turf id"})
		}
		turfID = &id
	}

	rows, err := revenueSvc.GetRevenueReport(c.UserContext(), turfID, from, to)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"report": rows, "from": from, "to": to}})
}
