package expiry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salonbelle/salon-scheduler/internal/audit"
	domain "github.com/salonbelle/salon-scheduler/internal/domain/reservation"
	"github.com/salonbelle/salon-scheduler/internal/models"
	"github.com/salonbelle/salon-scheduler/internal/notify"
)

// ======================================================
// FAKES
// ======================================================

type transitionCall struct {
	reservationID uint
	from, to      domain.Status
}

// fakeRepo embeds the interface: only the methods the sweeper touches
// are implemented.
type fakeRepo struct {
	domain.Repository

	pending   []models.Reservation
	confirmed []models.Reservation

	mu          sync.Mutex
	transitions []transitionCall
	denyIDs     map[uint]bool
}

func (f *fakeRepo) ListPendingScheduledBefore(_ context.Context, _ time.Time) ([]models.Reservation, error) {
	return f.pending, nil
}

func (f *fakeRepo) ListConfirmedScheduledBefore(_ context.Context, _ time.Time) ([]models.Reservation, error) {
	return f.confirmed, nil
}

func (f *fakeRepo) TransitionStatus(_ context.Context, reservationID, _ uint, from, to domain.Status, _ time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transitions = append(f.transitions, transitionCall{reservationID, from, to})
	return !f.denyIDs[reservationID], nil
}

type sinkRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *sinkRecorder) Dispatch(ev audit.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *sinkRecorder) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

// ======================================================
// TESTS
// ======================================================

func TestSweepDeclinesExpiredPending(t *testing.T) {
	repo := &fakeRepo{
		pending: []models.Reservation{
			{ID: 1, StylistID: 9, Status: "pending"},
		},
	}
	sink := &sinkRecorder{}
	hub := notify.NewHub()

	s := NewSweeper(repo, sink, hub, time.UTC, 0)

	err := s.Sweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []transitionCall{
		{1, domain.StatusPending, domain.StatusDeclined},
	}, repo.transitions)
	assert.Equal(t, []string{"reservation_expired"}, sink.actions())
	assert.Equal(t, uint64(1), hub.Generation(notify.StylistTopic(9)))
}

func TestSweepCompletesFinishedConfirmed(t *testing.T) {
	repo := &fakeRepo{
		confirmed: []models.Reservation{
			{
				ID:          2,
				StylistID:   9,
				Status:      "confirmed",
				ScheduledAt: time.Now().UTC().Add(-2 * time.Hour),
				Service:     &models.Service{DurationMin: 45},
			},
			{
				// started recently: its end time is still ahead
				ID:          3,
				StylistID:   9,
				Status:      "confirmed",
				ScheduledAt: time.Now().UTC().Add(-10 * time.Minute),
			},
		},
	}
	sink := &sinkRecorder{}
	hub := notify.NewHub()

	s := NewSweeper(repo, sink, hub, time.UTC, 0)

	err := s.Sweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []transitionCall{
		{2, domain.StatusConfirmed, domain.StatusCompleted},
	}, repo.transitions)
	assert.Equal(t, []string{"reservation_auto_completed"}, sink.actions())
}

func TestSweepLostRaceIsSilent(t *testing.T) {
	repo := &fakeRepo{
		pending: []models.Reservation{
			{ID: 1, StylistID: 9, Status: "pending"},
		},
		denyIDs: map[uint]bool{1: true},
	}
	sink := &sinkRecorder{}
	hub := notify.NewHub()

	s := NewSweeper(repo, sink, hub, time.UTC, 0)

	err := s.Sweep(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, sink.actions())
	assert.Equal(t, uint64(0), hub.Generation(notify.StylistTopic(9)))
}

func TestStartIsNoOpWithoutPeriod(t *testing.T) {
	s := NewSweeper(&fakeRepo{}, &sinkRecorder{}, notify.NewHub(), time.UTC, 0)

	// must not spin up a ticker goroutine
	s.Start()
}
