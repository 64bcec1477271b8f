package reservation

import (
	"time"

	"github.com/salonbelle/salon-scheduler/internal/httperr"
	"github.com/salonbelle/salon-scheduler/internal/models"
)

// DefaultDurationMin applies whenever the service reference of a record
// cannot be resolved.
const DefaultDurationMin = 60

// Record is the canonical reservation shape both row formats normalize
// into at the aggregation boundary.
type Record struct {
	ID      uint
	RefCode string

	ClientRef  uint
	StylistRef uint
	ServiceRef *uint

	// Inline labels carried by legacy rows; empty on new-format rows,
	// which resolve labels through batched lookups instead.
	ClientLabel  string
	ServiceLabel string

	ScheduledAt time.Time
	Status      Status
	Notes       string

	Legacy bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Source is one side of the tagged union of row formats.
type Source interface {
	Normalize(loc *time.Location) (Record, error)
}

// ===============================
// New format
// ===============================

type NewFormat struct {
	Row models.Reservation
}

func (s NewFormat) Normalize(_ *time.Location) (Record, error) {
	return Record{
		ID:          s.Row.ID,
		RefCode:     s.Row.ReferenceCode,
		ClientRef:   s.Row.ClientID,
		StylistRef:  s.Row.StylistID,
		ServiceRef:  s.Row.ServiceID,
		ScheduledAt: s.Row.ScheduledAt,
		Status:      Status(s.Row.Status),
		Notes:       s.Row.Notes,
		CreatedAt:   s.Row.CreatedAt,
		UpdatedAt:   s.Row.UpdatedAt,
	}, nil
}

// ===============================
// Legacy format
// ===============================

type LegacyFormat struct {
	Row models.LegacyBooking
}

func (s LegacyFormat) Normalize(loc *time.Location) (Record, error) {
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		s.Row.BookingDate+" "+s.Row.BookingTime,
		loc,
	)
	if err != nil {
		return Record{}, httperr.ErrBusiness("invalid_legacy_booking")
	}

	return Record{
		ID:           s.Row.ID,
		StylistRef:   s.Row.StylistID,
		ClientLabel:  s.Row.ClientName,
		ServiceLabel: s.Row.ServiceName,
		ScheduledAt:  start,
		Status:       Status(s.Row.Status),
		Notes:        s.Row.Comments,
		Legacy:       true,
		CreatedAt:    s.Row.CreatedAt,
		UpdatedAt:    s.Row.UpdatedAt,
	}, nil
}
