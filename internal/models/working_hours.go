package models

import "time"

type WorkingHours struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	StylistID uint `json:"stylist_id"`

	Weekday int `json:"weekday"`

	Open   string `gorm:"size:5" json:"open"`
	Close  string `gorm:"size:5" json:"close"`
	IsOpen bool   `json:"is_open"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
