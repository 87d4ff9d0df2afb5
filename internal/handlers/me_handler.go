package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/igenda-app/igenda-api/internal/middleware"
	"github.com/igenda-app/igenda-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.Preload("Enterprise").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"phone":         user.Phone,
			"role":          user.Role,
			"enterprise_id": user.EnterpriseID,
		},
		"enterprise": gin.H{
			"id":                  user.Enterprise.ID,
			"name":                user.Enterprise.Name,
			"slug":                user.Enterprise.Slug,
			"phone":               user.Enterprise.Phone,
			"specialty":           user.Enterprise.Specialty,
			"avatar_url":          user.Enterprise.AvatarURL,
			"timezone":            user.Enterprise.Timezone,
			"min_advance_minutes": user.Enterprise.MinAdvanceMinutes,
			"subscription_status": user.Enterprise.SubscriptionStatus,
		},
	})
}
