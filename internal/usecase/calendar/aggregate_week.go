package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	cal "github.com/salonbelle/salon-scheduler/internal/domain/calendar"
	domain "github.com/salonbelle/salon-scheduler/internal/domain/reservation"
	"github.com/salonbelle/salon-scheduler/internal/httperr"
	"github.com/salonbelle/salon-scheduler/internal/identity"
)

// ======================================================
// USE CASE
// ======================================================

// AggregateWeek merges three sources into one weekly calendar view:
// new-format reservations, legacy bookings and availability blocks.
// Any fetch failure aborts the whole pass (fail-closed, no partials).
type AggregateWeek struct {
	repo domain.Repository
	loc  *time.Location
}

func NewAggregateWeek(repo domain.Repository, loc *time.Location) *AggregateWeek {
	return &AggregateWeek{repo: repo, loc: loc}
}

func (uc *AggregateWeek) Execute(
	ctx context.Context,
	user identity.CurrentUser,
	stylistID uint,
	window cal.Window,
) ([]cal.Event, error) {

	if stylistID == 0 {
		return nil, httperr.ErrBusiness("missing_stylist")
	}

	// --------------------------------------------------
	// 1. Reservations in the window (inclusive both ends)
	// --------------------------------------------------
	reservations, err := uc.repo.ListReservationsInWindow(
		ctx,
		stylistID,
		window.Start,
		window.End,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Legacy bookings on the window's dates
	// --------------------------------------------------
	legacy, err := uc.repo.ListLegacyBookingsForDates(
		ctx,
		stylistID,
		window.Start.Format("2006-01-02"),
		window.End.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Availability blocks overlapping the window
	// --------------------------------------------------
	blocks, err := uc.repo.ListBlocksOverlapping(
		ctx,
		stylistID,
		window.Start,
		window.End,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Normalize both row formats into canonical records
	// --------------------------------------------------
	records := make([]domain.Record, 0, len(reservations)+len(legacy))

	for _, row := range reservations {
		rec, err := domain.NewFormat{Row: row}.Normalize(uc.loc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	for _, row := range legacy {
		rec, err := domain.LegacyFormat{Row: row}.Normalize(uc.loc)
		if err != nil {
			return nil, err
		}
		if !window.Contains(rec.ScheduledAt) {
			continue
		}
		records = append(records, rec)
	}

	// --------------------------------------------------
	// 5. Batched display lookups (distinct ids, two queries)
	// --------------------------------------------------
	clientIDs := distinctClientIDs(records)
	serviceIDs := distinctServiceIDs(records)

	clients, err := uc.repo.MapClientsByIDs(ctx, clientIDs)
	if err != nil {
		return nil, err
	}

	services, err := uc.repo.MapServicesByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Project into events, end = start + duration
	// --------------------------------------------------
	events := make([]cal.Event, 0, len(records)+len(blocks))

	for _, rec := range records {
		durationMin := domain.DefaultDurationMin
		serviceName := rec.ServiceLabel

		if rec.ServiceRef != nil {
			if svc, ok := services[*rec.ServiceRef]; ok && svc.DurationMin > 0 {
				durationMin = svc.DurationMin
				serviceName = svc.Name
			}
		}

		clientName := rec.ClientLabel
		if clientName == "" {
			if cl, ok := clients[rec.ClientRef]; ok {
				clientName = cl.Name
			}
		}

		eventType := cal.EventReservation
		idPrefix := "res"
		if rec.Legacy {
			eventType = cal.EventLegacy
			idPrefix = "legacy"
		}

		events = append(events, cal.Event{
			ID:     fmt.Sprintf("%s-%d", idPrefix, rec.ID),
			Title:  eventTitle(clientName, serviceName),
			Start:  rec.ScheduledAt,
			End:    rec.ScheduledAt.Add(time.Duration(durationMin) * time.Minute),
			Type:   eventType,
			Status: string(rec.Status),
		})
	}

	for _, b := range blocks {
		events = append(events, cal.Event{
			ID:     fmt.Sprintf("block-%d", b.ID),
			Title:  blockTitle(b.Status),
			Start:  b.StartAt,
			End:    b.EndAt,
			Type:   cal.EventAvailability,
			Status: b.Status,
		})
	}

	// --------------------------------------------------
	// 7. Chronological order, stable across sources
	// --------------------------------------------------
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})

	return events, nil
}

// ======================================================
// HELPERS
// ======================================================

func distinctClientIDs(records []domain.Record) []uint {
	seen := make(map[uint]bool)
	var ids []uint
	for _, rec := range records {
		if rec.ClientRef == 0 || seen[rec.ClientRef] {
			continue
		}
		seen[rec.ClientRef] = true
		ids = append(ids, rec.ClientRef)
	}
	return ids
}

func distinctServiceIDs(records []domain.Record) []uint {
	seen := make(map[uint]bool)
	var ids []uint
	for _, rec := range records {
		if rec.ServiceRef == nil || seen[*rec.ServiceRef] {
			continue
		}
		seen[*rec.ServiceRef] = true
		ids = append(ids, *rec.ServiceRef)
	}
	return ids
}

func eventTitle(clientName, serviceName string) string {
	switch {
	case clientName == "" && serviceName == "":
		return "Reservation"
	case serviceName == "":
		return clientName
	case clientName == "":
		return serviceName
	default:
		return clientName + " - " + serviceName
	}
}

func blockTitle(status string) string {
	if status == "blocked" {
		return "Blocked"
	}
	return "Available"
}
