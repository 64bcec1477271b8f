package reservation

import (
	"context"
	"time"

	"github.com/salonbelle/salon-scheduler/internal/audit"
	domain "github.com/salonbelle/salon-scheduler/internal/domain/reservation"
	"github.com/salonbelle/salon-scheduler/internal/httperr"
	"github.com/salonbelle/salon-scheduler/internal/identity"
	"github.com/salonbelle/salon-scheduler/internal/models"
	"github.com/salonbelle/salon-scheduler/internal/notify"
)

type CompleteReservation struct {
	repo  domain.Repository
	audit audit.Sink
	hub   *notify.Hub
	loc   *time.Location
}

func NewCompleteReservation(
	repo domain.Repository,
	auditDisp audit.Sink,
	hub *notify.Hub,
	loc *time.Location,
) *CompleteReservation {
	return &CompleteReservation{
		repo:  repo,
		audit: auditDisp,
		hub:   hub,
		loc:   loc,
	}
}

func (uc *CompleteReservation) Execute(
	ctx context.Context,
	user identity.CurrentUser,
	reservationID uint,
) (*models.Reservation, error) {

	now := time.Now().In(uc.loc)

	ok, err := uc.repo.TransitionStatus(
		ctx,
		reservationID,
		user.ID,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		now,
	)
	if err != nil {
		return nil, err
	}

	if ok {
		id := reservationID
		uc.audit.Dispatch(audit.Event{
			UserID:   &user.ID,
			Action:   "reservation_completed",
			Entity:   "reservation",
			EntityID: &id,
		})
		uc.hub.Publish(notify.StylistTopic(user.ID))

		return uc.repo.GetReservationForStylist(ctx, reservationID, user.ID)
	}

	res, ferr := uc.repo.GetReservationForStylist(ctx, reservationID, user.ID)
	if ferr != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	return res, httperr.ErrBusiness("stale_state")
}
