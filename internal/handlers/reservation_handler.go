package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/salonbelle/salon-scheduler/internal/dto"
	"github.com/salonbelle/salon-scheduler/internal/httperr"
	"github.com/salonbelle/salon-scheduler/internal/httpresp"
	"github.com/salonbelle/salon-scheduler/internal/identity"
	"github.com/salonbelle/salon-scheduler/internal/middleware"
	"github.com/salonbelle/salon-scheduler/internal/models"
	ucReservation "github.com/salonbelle/salon-scheduler/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	confirmUC  *ucReservation.ConfirmReservation
	declineUC  *ucReservation.DeclineReservation
	completeUC *ucReservation.CompleteReservation
	queueUC    *ucReservation.ListQueue
}

func NewReservationHandler(
	confirmUC *ucReservation.ConfirmReservation,
	declineUC *ucReservation.DeclineReservation,
	completeUC *ucReservation.CompleteReservation,
	queueUC *ucReservation.ListQueue,
) *ReservationHandler {
	return &ReservationHandler{
		confirmUC:  confirmUC,
		declineUC:  declineUC,
		completeUC: completeUC,
		queueUC:    queueUC,
	}
}

// ======================================================
// QUEUE
// ======================================================

func (h *ReservationHandler) Queue(c *gin.Context) {
	user := middleware.CurrentUser(c)

	reservations, err := h.queueUC.Execute(c.Request.Context(), user)
	if err != nil {
		httperr.Internal(c, "failed_to_list_queue", "Could not load the queue.")
		return
	}

	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, dto.FromReservation(r))
	}

	httpresp.List(c, out)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *ReservationHandler) Confirm(c *gin.Context) {
	h.transition(c, func(user identity.CurrentUser, id uint) (*models.Reservation, error) {
		return h.confirmUC.Execute(c.Request.Context(), user, id)
	})
}

func (h *ReservationHandler) Decline(c *gin.Context) {
	h.transition(c, func(user identity.CurrentUser, id uint) (*models.Reservation, error) {
		return h.declineUC.Execute(c.Request.Context(), user, id)
	})
}

func (h *ReservationHandler) Complete(c *gin.Context) {
	h.transition(c, func(user identity.CurrentUser, id uint) (*models.Reservation, error) {
		return h.completeUC.Execute(c.Request.Context(), user, id)
	})
}

func (h *ReservationHandler) transition(
	c *gin.Context,
	run func(user identity.CurrentUser, id uint) (*models.Reservation, error),
) {
	user := middleware.CurrentUser(c)

	id, err := paramUint(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_reservation_id", "Invalid reservation id.")
		return
	}

	res, err := run(user, id)
	if err != nil {
		switch code := httperr.BusinessCode(err); code {
		case "reservation_not_found":
			httperr.NotFound(c, code, "Reservation not found.")
		case "stale_state":
			// non-fatal: someone else transitioned first; return the
			// authoritative row so the caller can reconcile
			c.JSON(409, gin.H{
				"error_code":  code,
				"message":     "Reservation already moved on.",
				"reservation": res,
			})
		default:
			httperr.Internal(c, "failed_to_update_reservation", "Could not update reservation.")
		}
		return
	}

	httpresp.OK(c, res)
}
