package reservation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/salonbelle/salon-scheduler/internal/audit"
	domain "github.com/salonbelle/salon-scheduler/internal/domain/reservation"
	"github.com/salonbelle/salon-scheduler/internal/httperr"
	"github.com/salonbelle/salon-scheduler/internal/identity"
	"github.com/salonbelle/salon-scheduler/internal/models"
	"github.com/salonbelle/salon-scheduler/internal/notify"
	"github.com/salonbelle/salon-scheduler/internal/sanitize"
	"github.com/salonbelle/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	StylistID uint

	// Optional: absence means "unspecified service" (60-minute default).
	ServiceID *uint

	Date string // 2006-01-02
	Time string // 15:04

	ClientName  string
	ClientEmail string
	ClientPhone string

	Notes string

	// Set on the in-app flow; nil on the public/anonymous flow.
	Authenticated *identity.CurrentUser
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo  domain.Repository
	audit audit.Sink
	hub   *notify.Hub
	loc   *time.Location
}

func NewCreateReservation(
	repo domain.Repository,
	auditDisp audit.Sink,
	hub *notify.Hub,
	loc *time.Location,
) *CreateReservation {
	return &CreateReservation{
		repo:  repo,
		audit: auditDisp,
		hub:   hub,
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates everything before touching the store: a rejected
// submission makes no store call at all.
func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	if in.StylistID == 0 {
		return nil, httperr.ErrBusiness("missing_stylist")
	}

	name := strings.TrimSpace(in.ClientName)
	email := strings.ToLower(strings.TrimSpace(in.ClientEmail))
	phone := strings.TrimSpace(in.ClientPhone)

	if in.Authenticated != nil && email == "" {
		email = strings.ToLower(in.Authenticated.Email)
	}

	if name == "" || email == "" || phone == "" {
		return nil, httperr.ErrBusiness("missing_contact")
	}

	if !validators.IsEmailFormatValid(email) {
		return nil, httperr.ErrBusiness("invalid_email")
	}

	// --------------------------------------------------
	// 2. Scheduled instant, salon-local
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		uc.loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if !start.After(time.Now().In(uc.loc)) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	notes := sanitize.Note(in.Notes)

	// --------------------------------------------------
	// 3. Stylist + optional service
	// --------------------------------------------------
	stylist, err := uc.repo.GetStylistByID(ctx, in.StylistID)
	if err != nil {
		return nil, httperr.ErrBusiness("stylist_not_found")
	}

	durationMin := domain.DefaultDurationMin
	if in.ServiceID != nil {
		service, err := uc.repo.GetService(ctx, in.StylistID, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		if service.DurationMin > 0 {
			durationMin = service.DurationMin
		}
	}

	end := start.Add(time.Duration(durationMin) * time.Minute)

	// --------------------------------------------------
	// 4. Working hours
	// --------------------------------------------------
	ok, err := uc.repo.IsWithinWorkingHours(ctx, stylist.ID, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 5. Client (get or create by phone)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(ctx, name, phone, email)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Insert as pending; the unique (stylist, slot) index
	//    turns a lost race into slot_already_booked
	// --------------------------------------------------
	res := &models.Reservation{
		ReferenceCode: uuid.NewString(),
		ClientID:      client.ID,
		StylistID:     stylist.ID,
		ServiceID:     in.ServiceID,
		ScheduledAt:   start,
		BookingDate:   start.Format("2006-01-02"),
		BookingTime:   start.Format("15:04"),
		Status:        string(domain.InitialStatus()),
		Notes:         notes,
	}

	if err := uc.repo.CreateReservation(ctx, res); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Audit + stylist queue notification
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Action:   "reservation_created",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	uc.hub.Publish(notify.StylistTopic(stylist.ID))

	return res, nil
}
