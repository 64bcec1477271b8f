package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/salonbelle/salon-scheduler/internal/domain/reservation"
	"github.com/salonbelle/salon-scheduler/internal/httperr"
	"github.com/salonbelle/salon-scheduler/internal/httpresp"
	"github.com/salonbelle/salon-scheduler/internal/middleware"
	"github.com/salonbelle/salon-scheduler/internal/models"
	"github.com/salonbelle/salon-scheduler/internal/sanitize"
)

// ======================================================
// HANDLER
// ======================================================

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ======================================================
// CREATE (PUBLIC, BY RESERVATION REFERENCE)
// ======================================================

// Create accepts a review keyed by the reservation's opaque reference
// code; only completed reservations can be reviewed, once.
func (h *ReviewHandler) Create(c *gin.Context) {
	ref := c.Param("ref")
	if ref == "" {
		httperr.BadRequest(c, "missing_reference", "Reservation reference required.")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var res models.Reservation
	if err := h.db.Where("reference_code = ?", ref).First(&res).Error; err != nil {
		httperr.NotFound(c, "reservation_not_found", "Reservation not found.")
		return
	}

	if res.Status != string(domain.StatusCompleted) {
		httperr.BadRequest(c, "reservation_not_completed", "Only completed visits can be reviewed.")
		return
	}

	review := models.Review{
		ReservationID: res.ID,
		StylistID:     res.StylistID,
		ClientID:      res.ClientID,
		Rating:        req.Rating,
		Comment:       sanitize.Note(req.Comment),
	}

	if err := h.db.Create(&review).Error; err != nil {
		// unique reservation_id: one review per visit
		if isUniqueViolation(err) {
			httperr.Conflict(c, "already_reviewed", "This visit was already reviewed.")
			return
		}
		httperr.Internal(c, "failed_to_create_review", "Could not save the review.")
		return
	}

	httpresp.Created(c, review)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ======================================================
// LIST (STYLIST)
// ======================================================

func (h *ReviewHandler) ListMine(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var reviews []models.Review
	if err := h.db.
		Where("stylist_id = ?", user.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not load reviews.")
		return
	}

	httpresp.List(c, reviews)
}
