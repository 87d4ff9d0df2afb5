package handlers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/igenda-app/igenda-api/internal/middleware"
	"github.com/igenda-app/igenda-api/internal/models"
)

type ProfessionalHandler struct {
	db *gorm.DB
}

func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{db: db}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
}

type UpdateProfessionalRequest struct {
	Name      *string `json:"name,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// Janela única por profissional: intervalo de dias + intervalo de horas, UTC.
type PutAvailabilityRequest struct {
	WeekdayFrom int    `json:"weekday_from"`
	WeekdayTo   int    `json:"weekday_to"`
	TimeFrom    string `json:"time_from" binding:"required"`
	TimeTo      string `json:"time_to" binding:"required"`
}

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)

	var pros []models.Professional
	if err := h.db.
		Where("enterprise_id = ?", enterpriseID).
		Order("id ASC").
		Find(&pros).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_professionals"})
		return
	}

	c.JSON(http.StatusOK, pros)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	pro := models.Professional{
		EnterpriseID: enterpriseID,
		Name:         req.Name,
		Specialty:    req.Specialty,
		Phone:        req.Phone,
		Active:       true,
	}

	if err := h.db.Create(&pro).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_professional"})
		return
	}

	c.JSON(http.StatusCreated, pro)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)
	id := c.Param("id")

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND enterprise_id = ?", id, enterpriseID).
		First(&pro).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "professional_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_professional"})
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		pro.Name = *req.Name
	}
	if req.Specialty != nil {
		pro.Specialty = *req.Specialty
	}
	if req.Phone != nil {
		pro.Phone = *req.Phone
	}
	if req.Active != nil {
		pro.Active = *req.Active
	}

	if err := h.db.Save(&pro).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_professional"})
		return
	}

	c.JSON(http.StatusOK, pro)
}

// Delete remove um profissional sem agendamentos. Com histórico na agenda
// a remoção é negada; desativar (active=false) é o caminho nesses casos.
func (h *ProfessionalHandler) Delete(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)
	id := c.Param("id")

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND enterprise_id = ?", id, enterpriseID).
		First(&pro).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "professional_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_professional"})
		return
	}

	var count int64
	if err := h.db.Model(&models.Appointment{}).
		Where("professional_id = ?", pro.ID).
		Count(&count).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_check_appointments"})
		return
	}

	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "professional_has_appointments"})
		return
	}

	h.db.Where("professional_id = ?", pro.ID).Delete(&models.AvailabilityWindow{})

	if err := h.db.Delete(&pro).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_professional"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ProfessionalHandler) GetAvailability(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)
	id := c.Param("id")

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND enterprise_id = ?", id, enterpriseID).
		First(&pro).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "professional_not_found"})
		return
	}

	var window models.AvailabilityWindow
	if err := h.db.
		Where("professional_id = ?", pro.ID).
		First(&window).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusOK, gin.H{"window": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"window": window})
}

// PutAvailability cria ou substitui a janela do profissional (upsert).
func (h *ProfessionalHandler) PutAvailability(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)
	id := c.Param("id")

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND enterprise_id = ?", id, enterpriseID).
		First(&pro).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "professional_not_found"})
		return
	}

	var req PutAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.WeekdayFrom < 0 || req.WeekdayFrom > 6 ||
		req.WeekdayTo < 0 || req.WeekdayTo > 6 ||
		req.WeekdayFrom > req.WeekdayTo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_weekday_range"})
		return
	}

	if !hhmmRe.MatchString(req.TimeFrom) || !hhmmRe.MatchString(req.TimeTo) ||
		req.TimeFrom >= req.TimeTo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_range"})
		return
	}

	var window models.AvailabilityWindow
	err := h.db.Where("professional_id = ?", pro.ID).First(&window).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_availability"})
		return
	}

	window.ProfessionalID = pro.ID
	window.WeekdayFrom = req.WeekdayFrom
	window.WeekdayTo = req.WeekdayTo
	window.TimeFrom = req.TimeFrom
	window.TimeTo = req.TimeTo

	if err := h.db.Save(&window).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"window": window})
}
