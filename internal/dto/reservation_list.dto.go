package dto

import (
	"time"

	"github.com/salonbelle/salon-scheduler/internal/models"
)

type ReservationListDTO struct {
	ID            uint      `json:"id"`
	ReferenceCode string    `json:"reference_code"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Status        string    `json:"status"`
	ClientName    string    `json:"client_name"`
	ServiceName   string    `json:"service_name"`
	Notes         string    `json:"notes"`
}

func FromReservation(r models.Reservation) ReservationListDTO {
	serviceName := ""
	if r.Service != nil {
		serviceName = r.Service.Name
	}

	return ReservationListDTO{
		ID:            r.ID,
		ReferenceCode: r.ReferenceCode,
		ScheduledAt:   r.ScheduledAt,
		Status:        r.Status,
		ClientName:    r.Client.Name,
		ServiceName:   serviceName,
		Notes:         r.Notes,
	}
}
