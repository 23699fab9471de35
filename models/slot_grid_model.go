package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlotGrid is the per-turf, per-day slot inventory. It is generated once from
// the turf's operating hours and afterwards only mutated slot by slot.
type SlotGrid struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TurfID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grid_turf_date" json:"turf_id"`
	Date   string    `gorm:"size:10;not null;uniqueIndex:idx_grid_turf_date" json:"date"` // "2006-01-02"

	Slots []TimeSlot `gorm:"foreignKey:SlotGridID" json:"slots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *SlotGrid) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TimeSlot is a single bookable window in a grid. TurfID and Date are
// denormalised onto each row so that claiming is one conditional UPDATE
// against the unique (turf_id, date, time_range) key.
type TimeSlot struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SlotGridID uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	TurfID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_slot_turf_date_range" json:"-"`
	Date       string     `gorm:"size:10;not null;uniqueIndex:idx_slot_turf_date_range" json:"-"`
	TimeRange  string     `gorm:"size:11;not null;uniqueIndex:idx_slot_turf_date_range" json:"time_range"` // "09:00-10:00"
	IsBooked   bool       `gorm:"not null;default:false" json:"is_booked"`
	BookingID  *uuid.UUID `gorm:"type:uuid" json:"booking_id,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (s *TimeSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
