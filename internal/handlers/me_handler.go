package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbelle/salon-scheduler/internal/middleware"
	"github.com/salonbelle/salon-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var row models.User
	if err := h.db.First(&row, user.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    row.ID,
			"name":  row.Name,
			"email": row.Email,
			"phone": row.Phone,
			"role":  row.Role,
			"bio":   row.Bio,
		},
	})
}
