package reservation

import (
	"time"

	"github.com/salonbelle/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(r *models.Reservation, now time.Time) error {
	if err := CanConfirm(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusConfirmed)
	r.ConfirmedAt = &now
	return nil
}

func Decline(r *models.Reservation, now time.Time) error {
	if err := CanDecline(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusDeclined)
	r.DeclinedAt = &now
	return nil
}

func Complete(r *models.Reservation, now time.Time) error {
	if err := CanComplete(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusCompleted)
	r.CompletedAt = &now
	return nil
}
