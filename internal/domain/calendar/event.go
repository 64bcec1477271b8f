package calendar

import "time"

type EventType string

const (
	EventReservation  EventType = "reservation"
	EventLegacy       EventType = "legacy_booking"
	EventAvailability EventType = "availability"
)

// Event is the derived projection rendered on the weekly calendar. It is
// rebuilt wholesale on every aggregation pass, never mutated in place.
type Event struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Type   EventType `json:"type"`
	Status string    `json:"status"`
}
