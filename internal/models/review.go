package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID uint `gorm:"uniqueIndex" json:"reservation_id"`
	StylistID     uint `json:"stylist_id"`
	ClientID      uint `json:"client_id"`

	Rating  int    `json:"rating"`
	Comment string `gorm:"size:1000" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
