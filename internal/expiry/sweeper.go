package expiry

import (
	"context"
	"log"
	"time"

	"github.com/salonbelle/salon-scheduler/internal/audit"
	domain "github.com/salonbelle/salon-scheduler/internal/domain/reservation"
	"github.com/salonbelle/salon-scheduler/internal/notify"
)

// Sweeper is the "system" actor of the status machine: it declines
// pending requests whose start time passed unconfirmed and completes
// confirmed reservations once their end time has passed.
type Sweeper struct {
	repo   domain.Repository
	audit  audit.Sink
	hub    *notify.Hub
	loc    *time.Location
	period time.Duration
	stop   chan struct{}
}

func NewSweeper(
	repo domain.Repository,
	auditDisp audit.Sink,
	hub *notify.Hub,
	loc *time.Location,
	period time.Duration,
) *Sweeper {
	return &Sweeper{
		repo:   repo,
		audit:  auditDisp,
		hub:    hub,
		loc:    loc,
		period: period,
		stop:   make(chan struct{}),
	}
}

// Start launches the periodic sweep. No-op when the period is zero.
func (s *Sweeper) Start() {
	if s.period <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(s.period)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.Sweep(context.Background()); err != nil {
					log.Println("expiry sweep error:", err)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Sweeper) Stop() {
	close(s.stop)
}

// Sweep runs one pass. Each transition is the same conditional update
// the stylist actions use, so a concurrent stylist action simply wins.
func (s *Sweeper) Sweep(ctx context.Context) error {
	now := time.Now().In(s.loc)
	touched := make(map[uint]bool)

	// pending requests whose slot already started: decline
	pending, err := s.repo.ListPendingScheduledBefore(ctx, now)
	if err != nil {
		return err
	}

	for _, res := range pending {
		ok, err := s.repo.TransitionStatus(
			ctx,
			res.ID,
			res.StylistID,
			domain.StatusPending,
			domain.StatusDeclined,
			now,
		)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		id := res.ID
		s.audit.Dispatch(audit.Event{
			Action:   "reservation_expired",
			Entity:   "reservation",
			EntityID: &id,
		})
		touched[res.StylistID] = true
	}

	// confirmed reservations whose end time passed: complete
	confirmed, err := s.repo.ListConfirmedScheduledBefore(ctx, now)
	if err != nil {
		return err
	}

	for _, res := range confirmed {
		durationMin := domain.DefaultDurationMin
		if res.Service != nil && res.Service.DurationMin > 0 {
			durationMin = res.Service.DurationMin
		}

		end := res.ScheduledAt.Add(time.Duration(durationMin) * time.Minute)
		if end.After(now) {
			continue
		}

		ok, err := s.repo.TransitionStatus(
			ctx,
			res.ID,
			res.StylistID,
			domain.StatusConfirmed,
			domain.StatusCompleted,
			now,
		)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		id := res.ID
		s.audit.Dispatch(audit.Event{
			Action:   "reservation_auto_completed",
			Entity:   "reservation",
			EntityID: &id,
		})
		touched[res.StylistID] = true
	}

	for stylistID := range touched {
		s.hub.Publish(notify.StylistTopic(stylistID))
	}

	return nil
}
