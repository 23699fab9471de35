package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omondi3768/turf_booking/models"
)

func TestCalculateRevenueForDate(t *testing.T) {
	db := testDB(t)
	svc := NewRevenueService(db, zerolog.Nop())
	turf := createTestTurf(t, db, 500, "09:00", "17:00")
	date := "2026-08-20"

	seedBooking(t, db, turf.ID, date, 500, models.PaymentStatusPaid, models.BookingStatusConfirmed)
	seedBooking(t, db, turf.ID, date, 300, models.PaymentStatusPaid, models.BookingStatusCompleted)
	seedBooking(t, db, turf.ID, date, 200, models.PaymentStatusPending, models.BookingStatusConfirmed)

	revenue, err := svc.CalculateRevenueForDate(context.Background(), turf.ID, date)
	require.NoError(t, err)
	assert.Equal(t, 800.0, revenue.TotalRevenue)
	assert.Equal(t, 3, revenue.TotalBookings)
	assert.Equal(t, 0, revenue.TotalCancellations)
}

func TestCalculateRevenueCountsCancellationsSeparately(t *testing.T) {
	db := testDB(t)
	svc := NewRevenueService(db, zerolog.Nop())
	turf := createTestTurf(t, db, 500, "09:00", "17:00")
	date := "2026-08-20"

	seedBooking(t, db, turf.ID, date, 500, models.PaymentStatusPaid, models.BookingStatusConfirmed)
	seedBooking(t, db, turf.ID, date, 400, models.PaymentStatusRefunded, models.BookingStatusCancelled)

	revenue, err := svc.CalculateRevenueForDate(context.Background(), turf.ID, date)
	require.NoError(t, err)
	assert.Equal(t, 500.0, revenue.TotalRevenue)
	assert.Equal(t, 1, revenue.TotalBookings)
	assert.Equal(t, 1, revenue.TotalCancellations)
}

func TestCalculateRevenueUpsertsSingleRow(t *testing.T) {
	db := testDB(t)
	svc := NewRevenueService(db, zerolog.Nop())
	turf := createTestTurf(t, db, 500, "09:00", "17:00")
	date := "2026-08-20"

	seedBooking(t, db, turf.ID, date, 500, models.PaymentStatusPaid, models.BookingStatusConfirmed)
	_, err := svc.CalculateRevenueForDate(context.Background(), turf.ID, date)
	require.NoError(t, err)

	seedBooking(t, db, turf.ID, date, 300, models.PaymentStatusPaid, models.BookingStatusConfirmed)
	revenue, err := svc.CalculateRevenueForDate(context.Background(), turf.ID, date)
	require.NoError(t, err)
	assert.Equal(t, 800.0, revenue.TotalRevenue)
	assert.Equal(t, 2, revenue.TotalBookings)

	var count int64
	require.NoError(t, db.Model(&models.Revenue{}).
		Where("turf_id = ? AND date = ?", turf.ID, date).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCalculateRevenueEmptyDay(t *testing.T) {
	db := testDB(t)
	svc := NewRevenueService(db, zerolog.Nop())
	turf := createTestTurf(t, db, 500, "09:00", "17:00")

	revenue, err := svc.CalculateRevenueForDate(context.Background(), turf.ID, "2026-08-21")
	require.NoError(t, err)
	assert.Equal(t, 0.0, revenue.TotalRevenue)
	assert.Equal(t, 0, revenue.TotalBookings)
	assert.Equal(t, 0, revenue.TotalCancellations)
}

func TestGetRevenueReport(t *testing.T) {
	db := testDB(t)
	svc := NewRevenueService(db, zerolog.Nop())
	turfA := createTestTurf(t, db, 500, "09:00", "17:00")
	turfB := createTestTurf(t, db, 700, "09:00", "17:00")

	rows := []models.Revenue{
		{TurfID: turfA.ID, Date: "2026-08-18", TotalRevenue: 500, TotalBookings: 1, LastCalculated: time.Now()},
		{TurfID: turfA.ID, Date: "2026-08-19", TotalRevenue: 300, TotalBookings: 2, TotalCancellations: 1, LastCalculated: time.Now()},
		{TurfID: turfA.ID, Date: "2026-08-25", TotalRevenue: 900, TotalBookings: 1, LastCalculated: time.Now()},
		{TurfID: turfB.ID, Date: "2026-08-19", TotalRevenue: 700, TotalBookings: 1, LastCalculated: time.Now()},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	report, err := svc.GetRevenueReport(context.Background(), nil, "2026-08-18", "2026-08-20")
	require.NoError(t, err)
	require.Len(t, report, 2)

	byTurf := map[uuid.UUID]RevenueReportRow{}
	for _, row := range report {
		byTurf[row.TurfID] = row
	}
	assert.Equal(t, 800.0, byTurf[turfA.ID].TotalRevenue)
	assert.Equal(t, 3, byTurf[turfA.ID].TotalBookings)
	assert.Equal(t, 1, byTurf[turfA.ID].TotalCancellations)
	assert.Equal(t, 700.0, byTurf[turfB.ID].TotalRevenue)

	scoped, err := svc.GetRevenueReport(context.Background(), &turfB.ID, "2026-08-18", "2026-08-20")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, turfB.ID, scoped[0].TurfID)
}

func TestDashboardOverview(t *testing.T) {
	db := testDB(t)
	svc := NewRevenueService(db, zerolog.Nop())
	turf := createTestTurf(t, db, 500, "09:00", "17:00")

	seedBooking(t, db, turf.ID, "2026-08-20", 500, models.PaymentStatusPaid, models.BookingStatusConfirmed)
	_, err := svc.CalculateRevenueForDate(context.Background(), turf.ID, "2026-08-20")
	require.NoError(t, err)

	overview, err := svc.DashboardOverview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), overview.TotalTurfs)
	assert.Equal(t, int64(1), overview.TotalBookings)
	assert.Equal(t, 500.0, overview.TotalRevenue)
}

func TestAggregateDailySkipsInactiveTurfs(t *testing.T) {
	db := testDB(t)
	svc := NewRevenueService(db, zerolog.Nop())
	active := createTestTurf(t, db, 500, "09:00", "17:00")
	inactive := createTestTurf(t, db, 500, "09:00", "17:00")
	require.NoError(t, db.Model(&models.Turf{}).Where("id = ?", inactive.ID).Update("is_active", false).Error)

	date := "2026-08-20"
	seedBooking(t, db, active.ID, date, 500, models.PaymentStatusPaid, models.BookingStatusConfirmed)
	seedBooking(t, db, inactive.ID, date, 900, models.PaymentStatusPaid, models.BookingStatusConfirmed)

	svc.AggregateDaily(context.Background(), date)

	var count int64
	require.NoError(t, db.Model(&models.Revenue{}).Where("turf_id = ?", active.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, db.Model(&models.Revenue{}).Where("turf_id = ?", inactive.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
