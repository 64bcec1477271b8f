package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/salonbelle/salon-scheduler/internal/audit"
	domain "github.com/salonbelle/salon-scheduler/internal/domain/reservation"
	"github.com/salonbelle/salon-scheduler/internal/httperr"
	"github.com/salonbelle/salon-scheduler/internal/models"
	"github.com/salonbelle/salon-scheduler/internal/notify"
)

// ======================================================
// MOCK REPOSITORY
// ======================================================

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetStylistByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetService(ctx context.Context, stylistID, serviceID uint) (*models.Service, error) {
	args := m.Called(ctx, stylistID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockRepository) GetOrCreateClient(ctx context.Context, name, phone, email string) (*models.Client, error) {
	args := m.Called(ctx, name, phone, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockRepository) GetClientByID(ctx context.Context, id uint) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockRepository) CreateReservation(ctx context.Context, r *models.Reservation) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil {
		r.ID = 101
	}
	return args.Error(0)
}

func (m *MockRepository) GetReservationForStylist(ctx context.Context, reservationID, stylistID uint) (*models.Reservation, error) {
	args := m.Called(ctx, reservationID, stylistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockRepository) TransitionStatus(ctx context.Context, reservationID, stylistID uint, from, to domain.Status, now time.Time) (bool, error) {
	args := m.Called(ctx, reservationID, stylistID, from, to, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListPendingForStylist(ctx context.Context, stylistID uint) ([]models.Reservation, error) {
	args := m.Called(ctx, stylistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockRepository) ListReservationsInWindow(ctx context.Context, stylistID uint, start, end time.Time) ([]models.Reservation, error) {
	args := m.Called(ctx, stylistID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockRepository) ListLegacyBookingsForDates(ctx context.Context, stylistID uint, fromDate, toDate string) ([]models.LegacyBooking, error) {
	args := m.Called(ctx, stylistID, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LegacyBooking), args.Error(1)
}

func (m *MockRepository) ListBlocksOverlapping(ctx context.Context, stylistID uint, start, end time.Time) ([]models.AvailabilityBlock, error) {
	args := m.Called(ctx, stylistID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AvailabilityBlock), args.Error(1)
}

func (m *MockRepository) MapClientsByIDs(ctx context.Context, ids []uint) (map[uint]models.Client, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]models.Client), args.Error(1)
}

func (m *MockRepository) MapServicesByIDs(ctx context.Context, ids []uint) (map[uint]models.Service, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]models.Service), args.Error(1)
}

func (m *MockRepository) GetWorkingHours(ctx context.Context, stylistID uint, weekday int) (*models.WorkingHours, error) {
	args := m.Called(ctx, stylistID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkingHours), args.Error(1)
}

func (m *MockRepository) IsWithinWorkingHours(ctx context.Context, stylistID uint, start, end time.Time) (bool, error) {
	args := m.Called(ctx, stylistID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListPendingScheduledBefore(ctx context.Context, t time.Time) ([]models.Reservation, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockRepository) ListConfirmedScheduledBefore(ctx context.Context, t time.Time) ([]models.Reservation, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

var _ domain.Repository = (*MockRepository)(nil)

// ======================================================
// RECORDING AUDIT SINK
// ======================================================

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

var _ audit.Sink = (*sinkRecorder)(nil)

// ======================================================
// CREATE
// ======================================================

func validInput() CreateReservationInput {
	return CreateReservationInput{
		StylistID:   9,
		Date:        "2027-06-15",
		Time:        "10:00",
		ClientName:  "Marie Dupont",
		ClientEmail: "marie@example.com",
		ClientPhone: "+33612345678",
	}
}

func TestCreateHappyPathWithoutService(t *testing.T) {
	repo := new(MockRepository)
	sink := &sinkRecorder{}
	hub := notify.NewHub()
	uc := NewCreateReservation(repo, sink, hub, time.UTC)

	start := time.Date(2027, 6, 15, 10, 0, 0, 0, time.UTC)

	repo.On("GetStylistByID", mock.Anything, uint(9)).
		Return(&models.User{ID: 9, Name: "Anna"}, nil)
	repo.On("IsWithinWorkingHours", mock.Anything, uint(9), start, start.Add(60*time.Minute)).
		Return(true, nil)
	repo.On("GetOrCreateClient", mock.Anything, "Marie Dupont", "+33612345678", "marie@example.com").
		Return(&models.Client{ID: 3, Name: "Marie Dupont"}, nil)
	repo.On("CreateReservation", mock.Anything, mock.AnythingOfType("*models.Reservation")).
		Return(nil)

	res, err := uc.Execute(context.Background(), validInput())

	assert.NoError(t, err)
	if assert.NotNil(t, res) {
		assert.Equal(t, "pending", res.Status)
		assert.NotEmpty(t, res.ReferenceCode)
		assert.Equal(t, uint(3), res.ClientID)
		assert.Equal(t, uint(9), res.StylistID)
		assert.Nil(t, res.ServiceID)
		assert.True(t, res.ScheduledAt.Equal(start))
		assert.Equal(t, "2027-06-15", res.BookingDate)
		assert.Equal(t, "10:00", res.BookingTime)
	}

	assert.Equal(t, []string{"reservation_created"}, sink.actions())
	assert.Equal(t, uint64(1), hub.Generation(notify.StylistTopic(9)))
	repo.AssertExpectations(t)
}

func TestCreateUsesServiceDuration(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateReservation(repo, &sinkRecorder{}, notify.NewHub(), time.UTC)

	start := time.Date(2027, 6, 15, 10, 0, 0, 0, time.UTC)
	serviceID := uint(7)

	repo.On("GetStylistByID", mock.Anything, uint(9)).
		Return(&models.User{ID: 9}, nil)
	repo.On("GetService", mock.Anything, uint(9), uint(7)).
		Return(&models.Service{ID: 7, DurationMin: 45}, nil)
	// working-hours check spans the service's duration, not the default
	repo.On("IsWithinWorkingHours", mock.Anything, uint(9), start, start.Add(45*time.Minute)).
		Return(true, nil)
	repo.On("GetOrCreateClient", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.Client{ID: 3}, nil)
	repo.On("CreateReservation", mock.Anything, mock.Anything).
		Return(nil)

	in := validInput()
	in.ServiceID = &serviceID

	res, err := uc.Execute(context.Background(), in)

	assert.NoError(t, err)
	assert.Equal(t, &serviceID, res.ServiceID)
	repo.AssertExpectations(t)
}

func TestCreateRejectsPastDateWithoutStoreCalls(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateReservation(repo, &sinkRecorder{}, notify.NewHub(), time.UTC)

	in := validInput()
	in.Date = "2020-01-01"

	res, err := uc.Execute(context.Background(), in)

	assert.Nil(t, res)
	assert.Equal(t, "date_in_past", httperr.BusinessCode(err))

	// a rejected submission never touches the store
	repo.AssertNotCalled(t, "GetStylistByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "GetOrCreateClient", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
}

func TestCreateValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateReservationInput)
		code   string
	}{
		{"missing stylist", func(in *CreateReservationInput) { in.StylistID = 0 }, "missing_stylist"},
		{"missing name", func(in *CreateReservationInput) { in.ClientName = "  " }, "missing_contact"},
		{"missing phone", func(in *CreateReservationInput) { in.ClientPhone = "" }, "missing_contact"},
		{"bad email", func(in *CreateReservationInput) { in.ClientEmail = "not-an-email" }, "invalid_email"},
		{"bad date", func(in *CreateReservationInput) { in.Date = "15/06/2027" }, "invalid_date_or_time"},
		{"bad time", func(in *CreateReservationInput) { in.Time = "10h00" }, "invalid_date_or_time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockRepository)
			uc := NewCreateReservation(repo, &sinkRecorder{}, notify.NewHub(), time.UTC)

			in := validInput()
			tc.mutate(&in)

			res, err := uc.Execute(context.Background(), in)

			assert.Nil(t, res)
			assert.Equal(t, tc.code, httperr.BusinessCode(err))
			repo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateRejectsOutsideWorkingHours(t *testing.T) {
	repo := new(MockRepository)
	sink := &sinkRecorder{}
	uc := NewCreateReservation(repo, sink, notify.NewHub(), time.UTC)

	repo.On("GetStylistByID", mock.Anything, uint(9)).
		Return(&models.User{ID: 9}, nil)
	repo.On("IsWithinWorkingHours", mock.Anything, uint(9), mock.Anything, mock.Anything).
		Return(false, nil)

	res, err := uc.Execute(context.Background(), validInput())

	assert.Nil(t, res)
	assert.Equal(t, "outside_working_hours", httperr.BusinessCode(err))
	assert.Empty(t, sink.actions())
	repo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
}

func TestCreateSurfacesWorkingHoursStoreFailure(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateReservation(repo, &sinkRecorder{}, notify.NewHub(), time.UTC)

	repo.On("GetStylistByID", mock.Anything, uint(9)).
		Return(&models.User{ID: 9}, nil)
	repo.On("IsWithinWorkingHours", mock.Anything, uint(9), mock.Anything, mock.Anything).
		Return(false, assert.AnError)

	res, err := uc.Execute(context.Background(), validInput())

	assert.Nil(t, res)
	assert.Error(t, err)

	// a store failure is transient, never a validation verdict
	assert.Empty(t, httperr.BusinessCode(err))
	repo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
}

func TestCreateRejectsUnknownStylist(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateReservation(repo, &sinkRecorder{}, notify.NewHub(), time.UTC)

	repo.On("GetStylistByID", mock.Anything, uint(9)).
		Return(nil, assert.AnError)

	res, err := uc.Execute(context.Background(), validInput())

	assert.Nil(t, res)
	assert.Equal(t, "stylist_not_found", httperr.BusinessCode(err))
}

func TestCreatePassesThroughSlotConflict(t *testing.T) {
	repo := new(MockRepository)
	sink := &sinkRecorder{}
	hub := notify.NewHub()
	uc := NewCreateReservation(repo, sink, hub, time.UTC)

	repo.On("GetStylistByID", mock.Anything, uint(9)).
		Return(&models.User{ID: 9}, nil)
	repo.On("IsWithinWorkingHours", mock.Anything, uint(9), mock.Anything, mock.Anything).
		Return(true, nil)
	repo.On("GetOrCreateClient", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.Client{ID: 3}, nil)
	repo.On("CreateReservation", mock.Anything, mock.Anything).
		Return(httperr.ErrBusiness("slot_already_booked"))

	res, err := uc.Execute(context.Background(), validInput())

	assert.Nil(t, res)
	assert.Equal(t, "slot_already_booked", httperr.BusinessCode(err))

	// a failed insert neither audits nor notifies
	assert.Empty(t, sink.actions())
	assert.Equal(t, uint64(0), hub.Generation(notify.StylistTopic(9)))
}

func TestCreateFallsBackToAuthenticatedEmail(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateReservation(repo, &sinkRecorder{}, notify.NewHub(), time.UTC)

	repo.On("GetStylistByID", mock.Anything, uint(9)).
		Return(&models.User{ID: 9}, nil)
	repo.On("IsWithinWorkingHours", mock.Anything, uint(9), mock.Anything, mock.Anything).
		Return(true, nil)
	repo.On("GetOrCreateClient", mock.Anything, "Marie Dupont", "+33612345678", "anna@salon.fr").
		Return(&models.Client{ID: 3}, nil)
	repo.On("CreateReservation", mock.Anything, mock.Anything).
		Return(nil)

	in := validInput()
	in.ClientEmail = ""
	in.Authenticated = &testUser

	_, err := uc.Execute(context.Background(), in)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
