package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/salonbelle/salon-scheduler/internal/domain/reservation"
	"github.com/salonbelle/salon-scheduler/internal/httperr"
	"github.com/salonbelle/salon-scheduler/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Stylist / Service
// --------------------------------------------------

func (r *ReservationGormRepository) GetStylistByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var stylist models.User
	if err := r.db.WithContext(ctx).First(&stylist, id).Error; err != nil {
		return nil, err
	}
	return &stylist, nil
}

func (r *ReservationGormRepository) GetService(
	ctx context.Context,
	stylistID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND stylist_id = ?", serviceID, stylistID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *ReservationGormRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		Name:  name,
		Phone: phone,
		Email: email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *ReservationGormRepository) GetClientByID(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Reservation (create)
// --------------------------------------------------

func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {

	if err := r.db.WithContext(ctx).Create(res).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// unique (stylist_id, scheduled_at): the slot was taken
			// between the caller's check and this insert
			return httperr.ErrBusiness("slot_already_booked")
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// Reservation (state change)
// --------------------------------------------------

func (r *ReservationGormRepository) GetReservationForStylist(
	ctx context.Context,
	reservationID uint,
	stylistID uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND stylist_id = ?", reservationID, stylistID).
		First(&res).Error; err != nil {
		return nil, err
	}

	return &res, nil
}

// TransitionStatus is a single conditional UPDATE; when two callers race
// on the same pending row, exactly one sees RowsAffected == 1.
func (r *ReservationGormRepository) TransitionStatus(
	ctx context.Context,
	reservationID uint,
	stylistID uint,
	from domain.Status,
	to domain.Status,
	now time.Time,
) (bool, error) {

	patch := map[string]any{
		"status":     string(to),
		"updated_at": now,
	}

	switch to {
	case domain.StatusConfirmed:
		patch["confirmed_at"] = now
	case domain.StatusDeclined:
		patch["declined_at"] = now
	case domain.StatusCompleted:
		patch["completed_at"] = now
	}

	tx := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where(
			"id = ? AND stylist_id = ? AND status = ?",
			reservationID, stylistID, string(from),
		).
		Updates(patch)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

// --------------------------------------------------
// Queue
// --------------------------------------------------

func (r *ReservationGormRepository) ListPendingForStylist(
	ctx context.Context,
	stylistID uint,
) ([]models.Reservation, error) {

	var out []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("stylist_id = ? AND status = ?", stylistID, string(domain.StatusPending)).
		Order("scheduled_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// --------------------------------------------------
// Calendar window
// --------------------------------------------------

func (r *ReservationGormRepository) ListReservationsInWindow(
	ctx context.Context,
	stylistID uint,
	start time.Time,
	end time.Time,
) ([]models.Reservation, error) {

	var out []models.Reservation
	if err := r.db.WithContext(ctx).
		Where(
			"stylist_id = ? AND scheduled_at >= ? AND scheduled_at <= ?",
			stylistID, start, end,
		).
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ReservationGormRepository) ListLegacyBookingsForDates(
	ctx context.Context,
	stylistID uint,
	fromDate string,
	toDate string,
) ([]models.LegacyBooking, error) {

	var out []models.LegacyBooking
	if err := r.db.WithContext(ctx).
		Where(
			"stylist_id = ? AND booking_date >= ? AND booking_date <= ?",
			stylistID, fromDate, toDate,
		).
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ReservationGormRepository) ListBlocksOverlapping(
	ctx context.Context,
	stylistID uint,
	start time.Time,
	end time.Time,
) ([]models.AvailabilityBlock, error) {

	var out []models.AvailabilityBlock
	if err := r.db.WithContext(ctx).
		Where(
			"stylist_id = ? AND start_at <= ? AND end_at >= ?",
			stylistID, end, start,
		).
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// --------------------------------------------------
// Batched display lookups
// --------------------------------------------------

func (r *ReservationGormRepository) MapClientsByIDs(
	ctx context.Context,
	ids []uint,
) (map[uint]models.Client, error) {

	out := make(map[uint]models.Client, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&clients).Error; err != nil {
		return nil, err
	}

	for _, c := range clients {
		out[c.ID] = c
	}
	return out, nil
}

func (r *ReservationGormRepository) MapServicesByIDs(
	ctx context.Context,
	ids []uint,
) (map[uint]models.Service, error) {

	out := make(map[uint]models.Service, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}

	for _, s := range services {
		out[s.ID] = s
	}
	return out, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *ReservationGormRepository) GetWorkingHours(
	ctx context.Context,
	stylistID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("stylist_id = ? AND weekday = ?", stylistID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *ReservationGormRepository) IsWithinWorkingHours(
	ctx context.Context,
	stylistID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	weekday := int(start.Weekday())
	loc := start.Location()

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("stylist_id = ? AND weekday = ?", stylistID, weekday).
		First(&wh).Error; err != nil {
		// no row means the stylist never opens that weekday; anything
		// else is a store failure and must not read as "closed"
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if !wh.IsOpen || wh.Open == "" || wh.Close == "" {
		return false, nil
	}

	dayOpen, err := clockOn(start, wh.Open, loc)
	if err != nil {
		return false, err
	}
	dayClose, err := clockOn(start, wh.Close, loc)
	if err != nil {
		return false, err
	}

	if start.Before(dayOpen) || end.After(dayClose) {
		return false, nil
	}

	return true, nil
}

// clockOn places an "HH:MM" working-hours string on the given day.
// Malformed rows are reported, never silently read as midnight.
func clockOn(day time.Time, hm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed working hours %q: %w", hm, err)
	}

	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	), nil
}

// --------------------------------------------------
// Expiry sweeps
// --------------------------------------------------

func (r *ReservationGormRepository) ListPendingScheduledBefore(
	ctx context.Context,
	t time.Time,
) ([]models.Reservation, error) {

	var out []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at < ?", string(domain.StatusPending), t).
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ReservationGormRepository) ListConfirmedScheduledBefore(
	ctx context.Context,
	t time.Time,
) ([]models.Reservation, error) {

	var out []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("status = ? AND scheduled_at < ?", string(domain.StatusConfirmed), t).
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
