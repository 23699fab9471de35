package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/omondi3768/turf_booking/models"
)

// SlotDurationMinutes is the fixed length of every bookable slot.
const SlotDurationMinutes = 60

// SlotService owns the slot inventory. It is the only component that
// mutates slot occupancy, and claiming is a single conditional UPDATE so
// that concurrent claims on the same slot resolve to exactly one winner.
type SlotService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewSlotService(db *gorm.DB, log zerolog.Logger) *SlotService {
	return &SlotService{db: db, log: log.With().Str("component", "slots").Logger()}
}

// GenerateSlotTimes walks from open to close in duration steps and emits
// "HH:MM-HH:MM" ranges. A trailing window shorter than the duration is
// dropped, not rounded.
func GenerateSlotTimes(open, close string, durationMinutes int) ([]string, error) {
	start, err := parseClock(open)
	if err != nil {
		return nil, fmt.Errorf("parse open time: %w", err)
	}
	end, err := parseClock(close)
	if err != nil {
		return nil, fmt.Errorf("parse close time: %w", err)
	}

	var ranges []string
	for cur := start; cur+durationMinutes <= end; cur += durationMinutes {
		ranges = append(ranges, formatClock(cur)+"-"+formatClock(cur+durationMinutes))
	}
	return ranges, nil
}

// EnsureGridForDate returns the grid for a turf and day, generating it from
// the turf's operating hours on first access. Generation is idempotent: a
// concurrent creator losing on the unique (turf_id, date) key re-reads the
// winner's grid.
func (s *SlotService) EnsureGridForDate(ctx context.Context, turfID uuid.UUID, date string) (*models.SlotGrid, error) {
	grid, err := s.findGrid(ctx, turfID, date)
	if err == nil {
		return grid, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var turf models.Turf
	if err := s.db.WithContext(ctx).First(&turf, "id = ?", turfID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTurfNotFound
		}
		return nil, err
	}

	ranges, err := GenerateSlotTimes(turf.OpenTime, turf.CloseTime, SlotDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("generate slots for turf %s: %w", turfID, err)
	}

	newGrid := models.SlotGrid{TurfID: turfID, Date: date}
	for _, r := range ranges {
		newGrid.Slots = append(newGrid.Slots, models.TimeSlot{
			TurfID:    turfID,
			Date:      date,
			TimeRange: r,
		})
	}

	if err := s.db.WithContext(ctx).Create(&newGrid).Error; err != nil {
		// Lost the creation race; the winner's grid is authoritative.
		if existing, findErr := s.findGrid(ctx, turfID, date); findErr == nil {
			return existing, nil
		}
		return nil, err
	}

	s.log.Debug().Str("turf_id", turfID.String()).Str("date", date).
		Int("slots", len(newGrid.Slots)).Msg("generated slot grid")
	return &newGrid, nil
}

func (s *SlotService) findGrid(ctx context.Context, turfID uuid.UUID, date string) (*models.SlotGrid, error) {
	var grid models.SlotGrid
	err := s.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("time_range") }).
		Where("turf_id = ? AND date = ?", turfID, date).
		First(&grid).Error
	if err != nil {
		return nil, err
	}
	return &grid, nil
}

// GetAvailability returns the full grid for a day, generating it if needed.
func (s *SlotService) GetAvailability(ctx context.Context, turfID uuid.UUID, date string) ([]models.TimeSlot, error) {
	grid, err := s.EnsureGridForDate(ctx, turfID, date)
	if err != nil {
		return nil, err
	}
	return grid.Slots, nil
}

// IsSlotFree reports whether the named slot exists and is unclaimed. A time
// range the generator never produced is unavailable, not free.
func (s *SlotService) IsSlotFree(ctx context.Context, turfID uuid.UUID, date, timeRange string) (bool, error) {
	if _, err := s.EnsureGridForDate(ctx, turfID, date); err != nil {
		return false, err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.TimeSlot{}).
		Where("turf_id = ? AND date = ? AND time_range = ? AND is_booked = ?", turfID, date, timeRange, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ClaimSlot flips exactly one unclaimed slot to claimed, recording the
// owning booking. The WHERE clause on is_booked = false is the whole race
// defence: of N concurrent claims only one UPDATE matches a row. A slot
// already held by the same booking counts as success so that payment
// confirmation can be re-run safely.
func (s *SlotService) ClaimSlot(ctx context.Context, turfID uuid.UUID, date, timeRange string, bookingID uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.TimeSlot{}).
		Where("turf_id = ? AND date = ? AND time_range = ? AND is_booked = ?", turfID, date, timeRange, false).
		Updates(map[string]interface{}{"is_booked": true, "booking_id": bookingID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var slot models.TimeSlot
	err := s.db.WithContext(ctx).
		Where("turf_id = ? AND date = ? AND time_range = ?", turfID, date, timeRange).
		First(&slot).Error
	if err == nil && slot.IsBooked && slot.BookingID != nil && *slot.BookingID == bookingID {
		return nil
	}
	return fmt.Errorf("slot %s on %s: %w", timeRange, date, ErrSlotUnavailable)
}

// ReleaseSlot returns a claimed slot to the pool and clears its booking
// reference. Releasing an already-free or unknown slot is a no-op so that
// repeated cancellation attempts never cascade into failures.
func (s *SlotService) ReleaseSlot(ctx context.Context, turfID uuid.UUID, date, timeRange string) error {
	res := s.db.WithContext(ctx).Model(&models.TimeSlot{}).
		Where("turf_id = ? AND date = ? AND time_range = ? AND is_booked = ?", turfID, date, timeRange, true).
		Updates(map[string]interface{}{"is_booked": false, "booking_id": nil})
	return res.Error
}
