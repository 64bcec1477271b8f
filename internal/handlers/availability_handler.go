package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbelle/salon-scheduler/internal/httperr"
	"github.com/salonbelle/salon-scheduler/internal/httpresp"
	"github.com/salonbelle/salon-scheduler/internal/middleware"
	"github.com/salonbelle/salon-scheduler/internal/models"
	"github.com/salonbelle/salon-scheduler/internal/notify"
)

// ======================================================
// HANDLER
// ======================================================

// AvailabilityHandler manages stylist-owned open/blocked windows.
type AvailabilityHandler struct {
	db  *gorm.DB
	hub *notify.Hub
}

func NewAvailabilityHandler(db *gorm.DB, hub *notify.Hub) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, hub: hub}
}

type CreateBlockRequest struct {
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
	Status  string    `json:"status" binding:"required,oneof=available blocked"`
}

// ======================================================
// LIST
// ======================================================

func (h *AvailabilityHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var blocks []models.AvailabilityBlock
	if err := h.db.
		Where("stylist_id = ?", user.ID).
		Order("start_at ASC").
		Find(&blocks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocks", "Could not load availability.")
		return
	}

	httpresp.List(c, blocks)
}

// ======================================================
// CREATE
// ======================================================

func (h *AvailabilityHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if !req.EndAt.After(req.StartAt) {
		httperr.BadRequest(c, "invalid_window", "End must be after start.")
		return
	}

	block := models.AvailabilityBlock{
		StylistID: user.ID,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Status:    req.Status,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "Could not save the block.")
		return
	}

	h.hub.Publish(notify.StylistTopic(user.ID))

	httpresp.Created(c, block)
}

// ======================================================
// DELETE
// ======================================================

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := paramUint(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_block_id", "Invalid block id.")
		return
	}

	tx := h.db.
		Where("id = ? AND stylist_id = ?", id, user.ID).
		Delete(&models.AvailabilityBlock{})

	if tx.Error != nil {
		httperr.Internal(c, "failed_to_delete_block", "Could not delete the block.")
		return
	}
	if tx.RowsAffected == 0 {
		httperr.NotFound(c, "block_not_found", "Block not found.")
		return
	}

	h.hub.Publish(notify.StylistTopic(user.ID))

	httpresp.OK(c, gin.H{"status": "ok"})
}
