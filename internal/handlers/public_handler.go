package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbelle/salon-scheduler/internal/httperr"
	"github.com/salonbelle/salon-scheduler/internal/httpresp"
	"github.com/salonbelle/salon-scheduler/internal/models"
	ucReservation "github.com/salonbelle/salon-scheduler/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the anonymous booking flow: stylist catalog,
// working hours and reservation submission.
type PublicHandler struct {
	db       *gorm.DB
	createUC *ucReservation.CreateReservation
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucReservation.CreateReservation,
) *PublicHandler {
	return &PublicHandler{
		db:       db,
		createUC: createUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	ServiceID *uint  `json:"service_id"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`

	Notes string `json:"notes"`
}

// ======================================================
// STYLISTS
// ======================================================

func (h *PublicHandler) ListStylists(c *gin.Context) {
	var stylists []models.User
	if err := h.db.
		Where("role = ?", "stylist").
		Order("name ASC").
		Find(&stylists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_stylists", "Could not load stylists.")
		return
	}

	httpresp.List(c, stylists)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	stylistID, err := paramUint(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_stylist_id", "Invalid stylist id.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("stylist_id = ? AND active = ?", stylistID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not load services.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) GetWorkingHours(c *gin.Context) {
	stylistID, err := paramUint(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_stylist_id", "Invalid stylist id.")
		return
	}

	var hours []models.WorkingHours
	if err := h.db.
		Where("stylist_id = ?", stylistID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_get_working_hours", "Could not load working hours.")
		return
	}

	httpresp.OK(c, hours)
}

// ======================================================
// CREATE RESERVATION
// ======================================================

func (h *PublicHandler) CreateReservation(c *gin.Context) {
	stylistID, err := paramUint(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_stylist_id", "Invalid stylist id.")
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.createUC.Execute(c.Request.Context(), ucReservation.CreateReservationInput{
		StylistID:   stylistID,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Notes:       req.Notes,
	})

	if err != nil {
		writeCreateError(c, err)
		return
	}

	httpresp.Created(c, res)
}

func writeCreateError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case "slot_already_booked":
		httperr.Conflict(c, code, "This slot is already booked.")
	case "missing_stylist", "missing_contact", "invalid_email",
		"invalid_date_or_time", "date_in_past", "outside_working_hours":
		httperr.BadRequest(c, code, "Invalid reservation request.")
	case "stylist_not_found", "service_not_found":
		httperr.NotFound(c, code, "Not found.")
	default:
		httperr.Internal(c, "failed_to_create_reservation", "Could not create reservation.")
	}
}

// ======================================================
// HELPERS
// ======================================================

func paramUint(c *gin.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || n == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(n), nil
}
