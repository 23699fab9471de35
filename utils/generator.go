package utils

import (
	"errors"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/omondi3768/turf_booking/models"
)

const bookingCodeLength = 8
const codeBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueBookingCode produces a shareable "BK-XXXXXXXX" code that no
// existing booking uses. The caller's transaction scopes the uniqueness
// check.
func GenerateUniqueBookingCode(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, bookingCodeLength)
		for i := range b {
			b[i] = codeBytes[seededRand.Intn(len(codeBytes))]
		}
		code := "BK-" + string(b)

		var booking models.Booking
		err := tx.Where("booking_code = ?", code).First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return code, nil
			}
			return "", err
		}
	}
}
