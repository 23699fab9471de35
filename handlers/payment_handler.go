package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/omondi3768/turf_booking/services"
)

// VerifyPaymentRequest carries the fields the checkout widget posts back
// after a successful payment.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

func VerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := bookingSvc.ConfirmPayment(c.UserContext(), req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		return businessError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Payment verified.",
		"data":    fiber.Map{"booking": booking},
	})
}

// PaymentStatus reports the gateway's view of an order. Amounts come back
// from the gateway in the smallest unit.
func PaymentStatus(c *fiber.Ctx) error {
	order, err := gateway.FetchOrder(c.UserContext(), c.Params("orderId"))
	if err != nil {
		return businessError(c, fmt.Errorf("%w: %v", services.ErrUpstreamPayment, err))
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"order_id":    order.ID,
			"amount":      float64(order.Amount) / 100,
			"currency":    order.Currency,
			"receipt":     order.Receipt,
			"order_state": order.Status,
		},
	})
}
