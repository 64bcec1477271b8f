package models

import "time"

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// ReferenceCode is the opaque identifier handed to clients.
	ReferenceCode string `gorm:"size:36;uniqueIndex;not null" json:"reference_code"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StylistID uint `gorm:"uniqueIndex:idx_stylist_slot" json:"stylist_id"`
	Stylist   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"stylist"`

	// Nullable: legacy "unspecified service" requests carry no service.
	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ScheduledAt time.Time `gorm:"uniqueIndex:idx_stylist_slot" json:"scheduled_at"`

	// Derived from ScheduledAt for legacy-schema compatibility.
	BookingDate string `gorm:"size:10" json:"booking_date"`
	BookingTime string `gorm:"size:5" json:"booking_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes string `gorm:"size:1000" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	DeclinedAt  *time.Time `json:"declined_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
