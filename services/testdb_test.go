package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/omondi3768/turf_booking/models"
)

var testCodeSeq int

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Turf{},
		&models.SlotGrid{},
		&models.TimeSlot{},
		&models.Booking{},
		&models.BookingSlot{},
		&models.Revenue{},
	))
	return db
}

func createTestTurf(t *testing.T, db *gorm.DB, price float64, openTime, closeTime string) *models.Turf {
	t.Helper()

	turf := &models.Turf{
		AdminID:        uuid.New(),
		TurfName:       "Greenfield Arena",
		Description:    "Five-a-side pitch",
		Address:        "12 Stadium Road",
		PricePerHour:   price,
		OpenTime:       openTime,
		CloseTime:      closeTime,
		ContactDetails: "+91 9000000000",
		Email:          "greenfield@example.com",
		IsActive:       true,
	}
	require.NoError(t, db.Create(turf).Error)
	return turf
}

func seedBooking(t *testing.T, db *gorm.DB, turfID uuid.UUID, date string, amount float64, paymentStatus, bookingStatus string) *models.Booking {
	t.Helper()

	testCodeSeq++
	booking := &models.Booking{
		BookingCode:   fmt.Sprintf("BK-SEED%04d", testCodeSeq),
		UserID:        uuid.New(),
		TurfID:        turfID,
		BookingDate:   date,
		TotalAmount:   amount,
		PaymentMethod: models.PaymentMethodOnline,
		PaymentStatus: paymentStatus,
		BookingStatus: bookingStatus,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}
