package utils

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/omondi3768/turf_booking/models"
)

func generatorDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Booking{}, &models.BookingSlot{}))
	return db
}

func TestGenerateUniqueBookingCodeFormat(t *testing.T) {
	db := generatorDB(t)
	pattern := regexp.MustCompile(`^BK-[A-Z0-9]{8}$`)

	for i := 0; i < 20; i++ {
		code, err := GenerateUniqueBookingCode(db)
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestGenerateUniqueBookingCodeAvoidsExisting(t *testing.T) {
	db := generatorDB(t)

	code, err := GenerateUniqueBookingCode(db)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Booking{
		BookingCode:   code,
		UserID:        uuid.New(),
		TurfID:        uuid.New(),
		BookingDate:   "2026-08-20",
		TotalAmount:   500,
		PaymentMethod: models.PaymentMethodCash,
		PaymentStatus: models.PaymentStatusPending,
		BookingStatus: models.BookingStatusConfirmed,
	}).Error)

	for i := 0; i < 50; i++ {
		next, err := GenerateUniqueBookingCode(db)
		require.NoError(t, err)
		assert.NotEqual(t, code, next)
	}
}
