package models

import "time"

// LegacyBooking keeps the pre-migration schema alive: client contact is
// inlined, the service is a free-text label and the instant is split
// into date + time strings.
type LegacyBooking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StylistID uint `json:"stylist_id"`

	ClientName  string `gorm:"size:100" json:"client_name"`
	ClientEmail string `gorm:"size:100" json:"client_email"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	ServiceName string `gorm:"size:100" json:"service_name"`

	BookingDate string `gorm:"size:10;not null" json:"booking_date"`
	BookingTime string `gorm:"size:5;not null" json:"booking_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Comments string `gorm:"size:1000" json:"comments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
