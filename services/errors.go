// Package services holds the booking core: slot inventory, the booking
// orchestrator, revenue aggregation and the turf directory. The sentinel
// errors below are the business-rule taxonomy; handlers translate them into
// HTTP statuses with errors.Is, so services always wrap them with %w when
// adding detail.
package services

import "errors"

var (
	// ErrTurfNotFound is returned when a turf id does not resolve to an
	// active turf.
	ErrTurfNotFound = errors.New("turf not found")

	// ErrSlotUnavailable is returned when a requested slot does not exist
	// in the grid or is already claimed. Losing a claim race surfaces as
	// this error too.
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrBookingNotFound is returned when no booking matches the given code.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyCancelled rejects a second cancellation of the same booking.
	ErrAlreadyCancelled = errors.New("booking has already been cancelled")

	// ErrPastBooking rejects cancellation once the booking has started.
	ErrPastBooking = errors.New("cannot cancel a booking that has already passed")

	// ErrPaymentVerificationFailed means the gateway signature did not match.
	ErrPaymentVerificationFailed = errors.New("payment verification failed: invalid signature")

	// ErrReviewAlreadySubmitted rejects a second review for the same booking.
	ErrReviewAlreadySubmitted = errors.New("a review has already been submitted for this booking")

	// ErrCancelledBookingReview rejects reviews on cancelled bookings.
	ErrCancelledBookingReview = errors.New("cannot submit a review for a cancelled booking")

	// ErrBookingNotYetOccurred rejects reviews before the last slot has ended.
	ErrBookingNotYetOccurred = errors.New("cannot submit a review for a booking that has not yet occurred")

	// ErrRefundFailed marks a refund problem during cancellation. It is
	// logged and never blocks the cancellation itself.
	ErrRefundFailed = errors.New("refund failed")

	// ErrUpstreamPayment covers gateway calls that were rejected or
	// unreachable.
	ErrUpstreamPayment = errors.New("payment provider error")
)
