package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentMethodOnline = "online"
	PaymentMethodCash   = "cash"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"

	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking is the ledger entry for a reservation. BookingCode is the
// shareable external identifier; ID stays internal.
type Booking struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	BookingCode string    `gorm:"size:16;not null;uniqueIndex" json:"booking_code"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TurfID      uuid.UUID `gorm:"type:uuid;not null;index" json:"turf_id"`
	BookingDate string    `gorm:"size:10;not null;index" json:"booking_date"` // "2006-01-02"

	Slots []BookingSlot `gorm:"foreignKey:BookingID" json:"time_slots"`

	TotalAmount        float64 `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	PaymentMethod      string  `gorm:"size:10;not null" json:"payment_method"`
	PaymentStatus      string  `gorm:"size:10;not null;default:'pending'" json:"payment_status"`
	PaymentID          *string `gorm:"size:64" json:"payment_id,omitempty"`
	BookingStatus      string  `gorm:"size:10;not null;default:'confirmed'" json:"booking_status"`
	CancellationReason *string `gorm:"type:text" json:"cancellation_reason,omitempty"`
	PlayerCount        *int    `json:"player_count,omitempty"`
	Rating             *int    `json:"rating,omitempty"`
	Review             *string `gorm:"type:text" json:"review,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BookingSlot is one time window of a booking, ordered by Position.
type BookingSlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position  int       `gorm:"not null" json:"-"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"` // "09:00"
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`   // "10:00"
}

func (s *BookingSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TimeRange renders the slot in the grid's "HH:MM-HH:MM" form.
func (s BookingSlot) TimeRange() string {
	return s.StartTime + "-" + s.EndTime
}
