package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Revenue is the derived daily projection over the booking ledger. It is
// recomputed in full on demand, never maintained incrementally.
type Revenue struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	TurfID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_revenue_turf_date" json:"turf_id"`
	Date   string    `gorm:"size:10;not null;uniqueIndex:idx_revenue_turf_date" json:"date"`

	TotalRevenue       float64   `gorm:"not null;default:0" json:"total_revenue"`
	TotalBookings      int       `gorm:"not null;default:0" json:"total_bookings"`
	TotalCancellations int       `gorm:"not null;default:0" json:"total_cancellations"`
	LastCalculated     time.Time `json:"last_calculated"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (r *Revenue) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
