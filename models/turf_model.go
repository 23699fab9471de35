package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Turf struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AdminID        uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	TurfName       string    `gorm:"size:120;not null" json:"turf_name"`
	Description    string    `gorm:"type:text" json:"description"`
	Address        string    `gorm:"size:255;not null" json:"address"`
	PricePerHour   float64   `gorm:"type:numeric(10,2);not null" json:"price_per_hour"`
	Amenities      []string  `gorm:"serializer:json" json:"amenities"`
	OpenTime       string    `gorm:"size:5;not null" json:"open_time"`  // "09:00"
	CloseTime      string    `gorm:"size:5;not null" json:"close_time"` // "22:00"
	ContactDetails string    `gorm:"size:100" json:"contact_details"`
	Email          string    `gorm:"size:255" json:"email"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	AverageRating  float64   `gorm:"not null;default:0" json:"average_rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Turf) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
