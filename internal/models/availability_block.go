package models

import "time"

const (
	BlockAvailable = "available"
	BlockBlocked   = "blocked"
)

// AvailabilityBlock is a stylist-declared open or closed window. It does
// not reserve a slot by itself.
type AvailabilityBlock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StylistID uint `json:"stylist_id"`

	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`

	Status string `gorm:"size:20;default:'available'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
