package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbelle/salon-scheduler/internal/middleware"
	"github.com/salonbelle/salon-scheduler/internal/models"
	"github.com/salonbelle/salon-scheduler/internal/notify"
)

type WorkingHoursHandler struct {
	db  *gorm.DB
	hub *notify.Hub
}

func NewWorkingHoursHandler(db *gorm.DB, hub *notify.Hub) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, hub: hub}
}

type WorkingDayConfig struct {
	Weekday int    `json:"weekday" binding:"min=0,max=6"`
	IsOpen  bool   `json:"is_open"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var hours []models.WorkingHours
	if err := h.db.
		Where("stylist_id = ?", user.ID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if err := h.db.Where("stylist_id = ?", user.ID).Delete(&models.WorkingHours{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_hours"})
		return
	}

	var toCreate []models.WorkingHours
	for _, d := range req.Days {
		wh := models.WorkingHours{
			StylistID: user.ID,
			Weekday:   d.Weekday,
			IsOpen:    d.IsOpen,
			Open:      d.Open,
			Close:     d.Close,
		}
		toCreate = append(toCreate, wh)
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
			return
		}
	}

	h.hub.Publish(notify.StylistTopic(user.ID))

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
