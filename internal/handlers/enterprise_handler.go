package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/igenda-app/igenda-api/internal/middleware"
	"github.com/igenda-app/igenda-api/internal/models"
	"github.com/igenda-app/igenda-api/internal/storage"
	"github.com/igenda-app/igenda-api/internal/timezone"
)

type EnterpriseHandler struct {
	db      *gorm.DB
	avatars *storage.AvatarStore
}

func NewEnterpriseHandler(db *gorm.DB, avatars *storage.AvatarStore) *EnterpriseHandler {
	return &EnterpriseHandler{db: db, avatars: avatars}
}

// --------- Requests ---------

// O slug é imutável depois do cadastro: é a identidade pública da empresa.
type UpdateEnterpriseRequest struct {
	Name              *string `json:"name,omitempty"`
	Specialty         *string `json:"specialty,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes,omitempty"`
}

// --------- Handlers ---------

func (h *EnterpriseHandler) GetMeEnterprise(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)

	var ent models.Enterprise
	if err := h.db.First(&ent, enterpriseID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "enterprise_not_found"})
		return
	}

	c.JSON(http.StatusOK, ent)
}

func (h *EnterpriseHandler) UpdateMeEnterprise(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)

	var ent models.Enterprise
	if err := h.db.First(&ent, enterpriseID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "enterprise_not_found"})
		return
	}

	var req UpdateEnterpriseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		ent.Name = *req.Name
	}
	if req.Specialty != nil {
		ent.Specialty = *req.Specialty
	}
	if req.Phone != nil {
		ent.Phone = *req.Phone
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_timezone"})
			return
		}
		ent.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_min_advance"})
			return
		}
		ent.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&ent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_enterprise"})
		return
	}

	c.JSON(http.StatusOK, ent)
}

// UploadAvatar recebe multipart ("avatar"), converte para webp e publica
// no bucket. A URL antiga é simplesmente substituída.
func (h *EnterpriseHandler) UploadAvatar(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)

	var ent models.Enterprise
	if err := h.db.First(&ent, enterpriseID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "enterprise_not_found"})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_avatar_file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_avatar_file"})
		return
	}
	defer file.Close()

	url, err := h.avatars.Upload(c.Request.Context(), ent.ID, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_upload_avatar"})
		return
	}

	ent.AvatarURL = url
	if err := h.db.Save(&ent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_enterprise"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
