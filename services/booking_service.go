package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/omondi3768/turf_booking/models"
	"github.com/omondi3768/turf_booking/payments"
	"github.com/omondi3768/turf_booking/utils"
)

// PaymentGateway is the slice of the payment provider the orchestrator
// needs. Amounts cross this boundary in the smallest currency unit; the
// orchestrator owns the conversion.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*payments.Order, error)
	FetchOrder(ctx context.Context, orderID string) (*payments.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	Refund(ctx context.Context, paymentID string, amount int64) (*payments.Refund, error)
}

// BookingService sequences booking creation, payment confirmation,
// cancellation and reviews across the slot inventory, the ledger and the
// payment gateway.
type BookingService struct {
	db      *gorm.DB
	slots   *SlotService
	turfs   *TurfService
	gateway PaymentGateway
	log     zerolog.Logger

	// now is swapped out in tests to pin timing-rule boundaries.
	now func() time.Time
}

func NewBookingService(db *gorm.DB, slots *SlotService, turfs *TurfService, gateway PaymentGateway, log zerolog.Logger) *BookingService {
	return &BookingService{
		db:      db,
		slots:   slots,
		turfs:   turfs,
		gateway: gateway,
		log:     log.With().Str("component", "bookings").Logger(),
		now:     time.Now,
	}
}

// SlotRange is one requested time window.
type SlotRange struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CreateBookingInput carries everything needed to open a booking.
type CreateBookingInput struct {
	UserID        uuid.UUID
	TurfID        uuid.UUID
	BookingDate   string // "2006-01-02"
	Slots         []SlotRange
	PaymentMethod string
	PlayerCount   *int
}

func toSmallestUnit(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateBooking checks availability, prices the booking from the turf's
// hourly rate and records the ledger entry. Cash bookings claim their slots
// immediately; online bookings get a gateway order and claim only after
// payment verification. The availability pre-check is best effort; the
// atomic claim is the real double-booking guarantee.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, *payments.Order, error) {
	if len(input.Slots) == 0 {
		return nil, nil, fmt.Errorf("at least one time slot is required")
	}

	turf, err := s.turfs.GetTurfByID(ctx, input.TurfID)
	if err != nil {
		return nil, nil, err
	}

	for _, sl := range input.Slots {
		timeRange := sl.StartTime + "-" + sl.EndTime
		free, err := s.slots.IsSlotFree(ctx, input.TurfID, input.BookingDate, timeRange)
		if err != nil {
			return nil, nil, err
		}
		if !free {
			return nil, nil, fmt.Errorf("slot %s on %s: %w", timeRange, input.BookingDate, ErrSlotUnavailable)
		}
	}

	booking := &models.Booking{
		UserID:        input.UserID,
		TurfID:        input.TurfID,
		BookingDate:   input.BookingDate,
		TotalAmount:   turf.PricePerHour * float64(len(input.Slots)),
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		BookingStatus: models.BookingStatusConfirmed,
		PlayerCount:   input.PlayerCount,
	}
	for i, sl := range input.Slots {
		booking.Slots = append(booking.Slots, models.BookingSlot{
			Position:  i,
			StartTime: sl.StartTime,
			EndTime:   sl.EndTime,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code, err := utils.GenerateUniqueBookingCode(tx)
		if err != nil {
			return err
		}
		booking.BookingCode = code
		return tx.Create(booking).Error
	})
	if err != nil {
		return nil, nil, err
	}

	if input.PaymentMethod == models.PaymentMethodCash {
		// Claims are attempted for every slot; losing a race here leaves
		// the booking recorded but unclaimed, which must reach the caller.
		for _, sl := range booking.Slots {
			if err := s.slots.ClaimSlot(ctx, booking.TurfID, booking.BookingDate, sl.TimeRange(), booking.ID); err != nil {
				s.log.Warn().Err(err).Str("booking_code", booking.BookingCode).
					Msg("cash booking lost a slot claim race")
				return booking, nil, err
			}
		}
		return booking, nil, nil
	}

	order, err := s.gateway.CreateOrder(ctx, toSmallestUnit(booking.TotalAmount), "INR", booking.BookingCode)
	if err != nil {
		return booking, nil, fmt.Errorf("%w: %v", ErrUpstreamPayment, err)
	}
	return booking, order, nil
}

// ConfirmPayment finishes the online flow once the gateway reports a
// completed payment: verify the signature, resolve the order receipt back
// to a booking, mark it paid and claim its slots. Re-running with the same
// order is safe because claiming treats slots already held by this booking
// as success.
func (s *BookingService) ConfirmPayment(ctx context.Context, orderID, paymentID, signature string) (*models.Booking, error) {
	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		return nil, ErrPaymentVerificationFailed
	}

	order, err := s.gateway.FetchOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamPayment, err)
	}

	booking, err := s.GetBookingByCode(ctx, order.Receipt)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			// Money moved but nothing matches the receipt; an operator has
			// to reconcile this.
			s.log.Error().Str("order_id", orderID).Str("payment_id", paymentID).
				Str("receipt", order.Receipt).
				Msg("payment verified but no booking matches the order receipt")
		}
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusPaid,
			"payment_id":     paymentID,
		}).Error
	if err != nil {
		return nil, err
	}
	booking.PaymentStatus = models.PaymentStatusPaid
	booking.PaymentID = &paymentID

	for _, sl := range booking.Slots {
		if err := s.slots.ClaimSlot(ctx, booking.TurfID, booking.BookingDate, sl.TimeRange(), booking.ID); err != nil {
			// The slot went to someone else between creation and payment.
			// The booking stays paid; reconciliation is a manual queue.
			s.log.Error().Err(err).Str("booking_code", booking.BookingCode).
				Str("payment_id", paymentID).
				Msg("payment captured but slot claim failed")
			return booking, err
		}
	}
	return booking, nil
}

// CancelBooking cancels a not-yet-started booking, refunding online
// payments when possible and releasing every slot. A refund failure is
// logged for manual follow-up and never blocks the cancellation.
func (s *BookingService) CancelBooking(ctx context.Context, bookingCode, reason string) (*models.Booking, error) {
	booking, err := s.GetBookingByCode(ctx, bookingCode)
	if err != nil {
		return nil, err
	}

	if booking.BookingStatus == models.BookingStatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if len(booking.Slots) == 0 {
		return nil, fmt.Errorf("booking %s has no slots", bookingCode)
	}

	startInstant, err := combineDateClock(booking.BookingDate, booking.Slots[0].StartTime)
	if err != nil {
		return nil, err
	}
	if !startInstant.After(s.now()) {
		return nil, ErrPastBooking
	}

	paymentStatus := booking.PaymentStatus
	if booking.PaymentMethod == models.PaymentMethodOnline &&
		booking.PaymentStatus == models.PaymentStatusPaid &&
		booking.PaymentID != nil {
		if _, err := s.gateway.Refund(ctx, *booking.PaymentID, toSmallestUnit(booking.TotalAmount)); err != nil {
			s.log.Error().Err(err).Str("booking_code", bookingCode).
				Str("payment_id", *booking.PaymentID).
				Msgf("%v: cancellation proceeds, refund needs manual follow-up", ErrRefundFailed)
		} else {
			paymentStatus = models.PaymentStatusRefunded
		}
	}

	err = s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Updates(map[string]interface{}{
			"booking_status":      models.BookingStatusCancelled,
			"cancellation_reason": reason,
			"payment_status":      paymentStatus,
		}).Error
	if err != nil {
		return nil, err
	}
	booking.BookingStatus = models.BookingStatusCancelled
	booking.CancellationReason = &reason
	booking.PaymentStatus = paymentStatus

	for _, sl := range booking.Slots {
		if err := s.slots.ReleaseSlot(ctx, booking.TurfID, booking.BookingDate, sl.TimeRange()); err != nil {
			return nil, err
		}
	}
	return booking, nil
}

// SubmitReview records a one-time rating for a finished booking, marks the
// booking completed and re-derives the turf's average rating.
func (s *BookingService) SubmitReview(ctx context.Context, bookingCode string, rating int, review string) (*models.Booking, error) {
	booking, err := s.GetBookingByCode(ctx, bookingCode)
	if err != nil {
		return nil, err
	}

	if booking.Rating != nil {
		return nil, ErrReviewAlreadySubmitted
	}
	if booking.BookingStatus == models.BookingStatusCancelled {
		return nil, ErrCancelledBookingReview
	}
	if len(booking.Slots) == 0 {
		return nil, fmt.Errorf("booking %s has no slots", bookingCode)
	}

	lastSlot := booking.Slots[len(booking.Slots)-1]
	endInstant, err := combineDateClock(booking.BookingDate, lastSlot.EndTime)
	if err != nil {
		return nil, err
	}
	if endInstant.After(s.now()) {
		return nil, ErrBookingNotYetOccurred
	}

	err = s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Updates(map[string]interface{}{
			"rating":         rating,
			"review":         review,
			"booking_status": models.BookingStatusCompleted,
		}).Error
	if err != nil {
		return nil, err
	}
	booking.Rating = &rating
	booking.Review = &review
	booking.BookingStatus = models.BookingStatusCompleted

	if _, err := s.turfs.RecalculateRating(ctx, booking.TurfID); err != nil {
		s.log.Warn().Err(err).Str("turf_id", booking.TurfID.String()).
			Msg("review saved but rating recomputation failed")
	}
	return booking, nil
}

// GetBookingByCode loads a booking and its ordered slots by the shareable
// code.
func (s *BookingService) GetBookingByCode(ctx context.Context, bookingCode string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("booking_code = ?", bookingCode).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// BookingPage is a paginated booking listing.
type BookingPage struct {
	Bookings    []models.Booking `json:"bookings"`
	TotalPages  int              `json:"total_pages"`
	CurrentPage int              `json:"current_page"`
}

// GetBookingsForUser lists a user's bookings. filter "upcoming" returns
// today-or-later active bookings soonest first; anything else is the past
// history, newest first.
func (s *BookingService) GetBookingsForUser(ctx context.Context, userID uuid.UUID, filter string, page, limit int) (*BookingPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	today := s.now().Format(DateLayout)
	query := s.db.WithContext(ctx).Model(&models.Booking{}).Where("user_id = ?", userID)
	order := "booking_date DESC"
	if filter == "upcoming" {
		query = query.Where("booking_date >= ? AND booking_status IN ?", today,
			[]string{models.BookingStatusConfirmed, models.BookingStatusCompleted})
		order = "booking_date ASC"
	} else {
		query = query.Where("booking_date < ?", today)
	}

	return s.paginate(query, order, page, limit)
}

// GetBookingsForTurf lists every booking on a turf, newest first.
func (s *BookingService) GetBookingsForTurf(ctx context.Context, turfID uuid.UUID, page, limit int) (*BookingPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := s.db.WithContext(ctx).Model(&models.Booking{}).Where("turf_id = ?", turfID)
	return s.paginate(query, "booking_date DESC", page, limit)
}

func (s *BookingService) paginate(query *gorm.DB, order string, page, limit int) (*BookingPage, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var bookings []models.Booking
	err := query.
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order(order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	return &BookingPage{
		Bookings:    bookings,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
	}, nil
}
