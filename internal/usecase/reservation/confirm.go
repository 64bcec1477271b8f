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

type ConfirmReservation struct {
	repo  domain.Repository
	audit audit.Sink
	hub   *notify.Hub
	loc   *time.Location
}

func NewConfirmReservation(
	repo domain.Repository,
	auditDisp audit.Sink,
	hub *notify.Hub,
	loc *time.Location,
) *ConfirmReservation {
	return &ConfirmReservation{
		repo:  repo,
		audit: auditDisp,
		hub:   hub,
		loc:   loc,
	}
}

// Execute moves pending -> confirmed with a single conditional update.
// A caller racing another transition gets stale_state together with the
// current row; the record is never left half-changed.
func (uc *ConfirmReservation) Execute(
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
		domain.StatusConfirmed,
		now,
	)
	if err != nil {
		return nil, err
	}

	if ok {
		// the transition committed: audit and notify before the
		// refetch, whose failure must not unrecord the change
		id := reservationID
		uc.audit.Dispatch(audit.Event{
			UserID:   &user.ID,
			Action:   "reservation_confirmed",
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

	// the row exists but already moved past pending
	return res, httperr.ErrBusiness("stale_state")
}
