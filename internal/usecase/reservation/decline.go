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

type DeclineReservation struct {
	repo  domain.Repository
	audit audit.Sink
	hub   *notify.Hub
	loc   *time.Location
}

func NewDeclineReservation(
	repo domain.Repository,
	auditDisp audit.Sink,
	hub *notify.Hub,
	loc *time.Location,
) *DeclineReservation {
	return &DeclineReservation{
		repo:  repo,
		audit: auditDisp,
		hub:   hub,
		loc:   loc,
	}
}

func (uc *DeclineReservation) Execute(
	ctx context.Context,
	user identity.CurrentUser,
	reservationID uint,
) (*models.Reservation, error) {

	now := time.Now().In(uc.loc)

	ok, err := uc.repo.TransitionStatus(
		ctx,
		reservationID,
		user.ID,
		domain.StatusPending,
		domain.StatusDeclined,
		now,
	)
	if err != nil {
		return nil, err
	}

	if ok {
		id := reservationID
		uc.audit.Dispatch(audit.Event{
			UserID:   &user.ID,
			Action:   "reservation_declined",
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
