package reservation

import (
	"context"
	"time"

	"github.com/salonbelle/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Stylist / Service --------
	GetStylistByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetService(
		ctx context.Context,
		stylistID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	GetClientByID(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	// -------- Reservation (create) --------
	CreateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	// -------- Reservation (state change) --------
	GetReservationForStylist(
		ctx context.Context,
		reservationID uint,
		stylistID uint,
	) (*models.Reservation, error)

	// TransitionStatus applies a single conditional update keyed on the
	// expected prior status. Returns false when the row exists but has
	// already moved past `from` (the caller lost the race).
	TransitionStatus(
		ctx context.Context,
		reservationID uint,
		stylistID uint,
		from Status,
		to Status,
		now time.Time,
	) (bool, error)

	// -------- Queue --------
	ListPendingForStylist(
		ctx context.Context,
		stylistID uint,
	) ([]models.Reservation, error)

	// -------- Calendar window --------
	ListReservationsInWindow(
		ctx context.Context,
		stylistID uint,
		start time.Time,
		end time.Time,
	) ([]models.Reservation, error)

	ListLegacyBookingsForDates(
		ctx context.Context,
		stylistID uint,
		fromDate string,
		toDate string,
	) ([]models.LegacyBooking, error)

	ListBlocksOverlapping(
		ctx context.Context,
		stylistID uint,
		start time.Time,
		end time.Time,
	) ([]models.AvailabilityBlock, error)

	// -------- Batched display lookups --------
	MapClientsByIDs(
		ctx context.Context,
		ids []uint,
	) (map[uint]models.Client, error)

	MapServicesByIDs(
		ctx context.Context,
		ids []uint,
	) (map[uint]models.Service, error)

	// -------- Working hours --------
	GetWorkingHours(
		ctx context.Context,
		stylistID uint,
		weekday int,
	) (*models.WorkingHours, error)

	IsWithinWorkingHours(
		ctx context.Context,
		stylistID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	// -------- Expiry sweeps --------
	ListPendingScheduledBefore(
		ctx context.Context,
		t time.Time,
	) ([]models.Reservation, error)

	ListConfirmedScheduledBefore(
		ctx context.Context,
		t time.Time,
	) ([]models.Reservation, error)
}
