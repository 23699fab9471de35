package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omondi3768/turf_booking/models"
)

// RevenueService is the read-side projection over the booking ledger. Every
// calculation is a full re-aggregation of the day's bookings; nothing is
// maintained incrementally, so a recompute always heals drift.
type RevenueService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewRevenueService(db *gorm.DB, log zerolog.Logger) *RevenueService {
	return &RevenueService{db: db, log: log.With().Str("component", "revenue").Logger()}
}

// CalculateRevenueForDate re-aggregates one turf-day from the ledger and
// upserts the Revenue row: paid amounts sum into revenue, confirmed and
// completed bookings count, cancellations count separately.
func (s *RevenueService) CalculateRevenueForDate(ctx context.Context, turfID uuid.UUID, date string) (*models.Revenue, error) {
	var agg struct {
		TotalRevenue       float64
		TotalBookings      int
		TotalCancellations int
	}
	err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Select(`COALESCE(SUM(CASE WHEN payment_status = 'paid' THEN total_amount ELSE 0 END), 0) AS total_revenue,
			COALESCE(SUM(CASE WHEN booking_status IN ('confirmed', 'completed') THEN 1 ELSE 0 END), 0) AS total_bookings,
			COALESCE(SUM(CASE WHEN booking_status = 'cancelled' THEN 1 ELSE 0 END), 0) AS total_cancellations`).
		Where("turf_id = ? AND booking_date = ?", turfID, date).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	revenue := models.Revenue{
		TurfID:             turfID,
		Date:               date,
		TotalRevenue:       agg.TotalRevenue,
		TotalBookings:      agg.TotalBookings,
		TotalCancellations: agg.TotalCancellations,
		LastCalculated:     time.Now(),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "turf_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_revenue", "total_bookings", "total_cancellations", "last_calculated", "updated_at",
		}),
	}).Create(&revenue).Error
	if err != nil {
		return nil, err
	}

	var stored models.Revenue
	if err := s.db.WithContext(ctx).Where("turf_id = ? AND date = ?", turfID, date).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// RevenueReportRow is one turf's totals over a report range.
type RevenueReportRow struct {
	TurfID             uuid.UUID `json:"turf_id"`
	TotalRevenue       float64   `json:"total_revenue"`
	TotalBookings      int       `json:"total_bookings"`
	TotalCancellations int       `json:"total_cancellations"`
}

// GetRevenueReport aggregates the precomputed daily Revenue rows over an
// inclusive date range, grouped by turf. turfID narrows the report to one
// turf when set. Ranged reports read only the daily rows, never the
// ledger.
func (s *RevenueService) GetRevenueReport(ctx context.Context, turfID *uuid.UUID, from, to string) ([]RevenueReportRow, error) {
	query := s.db.WithContext(ctx).Model(&models.Revenue{}).
		Select(`turf_id,
			COALESCE(SUM(total_revenue), 0) AS total_revenue,
			COALESCE(SUM(total_bookings), 0) AS total_bookings,
			COALESCE(SUM(total_cancellations), 0) AS total_cancellations`).
		Where("date BETWEEN ? AND ?", from, to).
		Group("turf_id")
	if turfID != nil {
		query = query.Where("turf_id = ?", *turfID)
	}

	rows := make([]RevenueReportRow, 0)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Overview carries the admin dashboard headline numbers.
type Overview struct {
	TotalTurfs    int64   `json:"total_turfs"`
	TotalBookings int64   `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// DashboardOverview sums platform-wide counts for the admin dashboard.
func (s *RevenueService) DashboardOverview(ctx context.Context) (*Overview, error) {
	var overview Overview
	if err := s.db.WithContext(ctx).Model(&models.Turf{}).Count(&overview.TotalTurfs).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Booking{}).Count(&overview.TotalBookings).Error; err != nil {
		return nil, err
	}

	var sum struct {
		Total float64
	}
	err := s.db.WithContext(ctx).Model(&models.Revenue{}).
		Select("COALESCE(SUM(total_revenue), 0) AS total").
		Scan(&sum).Error
	if err != nil {
		return nil, err
	}
	overview.TotalRevenue = sum.Total
	return &overview, nil
}

// AggregateDaily recomputes the given day for every active turf. The cron
// job drives this nightly for the previous day; failures on one turf do not
// stop the rest.
func (s *RevenueService) AggregateDaily(ctx context.Context, date string) {
	var turfIDs []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.Turf{}).
		Where("is_active = ?", true).
		Pluck("id", &turfIDs).Error
	if err != nil {
		s.log.Error().Err(err).Msg("daily revenue aggregation could not list turfs")
		return
	}

	for _, turfID := range turfIDs {
		if _, err := s.CalculateRevenueForDate(ctx, turfID, date); err != nil {
			s.log.Error().Err(err).Str("turf_id", turfID.String()).Str("date", date).
				Msg("daily revenue aggregation failed for turf")
		}
	}
}
