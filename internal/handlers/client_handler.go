package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/igenda-app/igenda-api/internal/httpresp"
	"github.com/igenda-app/igenda-api/internal/middleware"
	"github.com/igenda-app/igenda-api/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

func (h *ClientHandler) List(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("enterprise_id = ?", enterpriseID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var clients []models.Client
	if err := q.
		Order("name ASC").
		Find(&clients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_clients"})
		return
	}

	httpresp.List(c, clients)
}

// Delete remove um cliente sem agendamentos. Clientes referenciados por
// agendamentos (em qualquer status) não podem ser removidos: o histórico
// da agenda tem precedência sobre a limpeza do cadastro.
func (h *ClientHandler) Delete(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND enterprise_id = ?", id, enterpriseID).
		First(&client).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_client"})
		return
	}

	var count int64
	if err := h.db.Model(&models.Appointment{}).
		Where("client_id = ?", client.ID).
		Count(&count).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_check_appointments"})
		return
	}

	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "client_has_appointments"})
		return
	}

	if err := h.db.Delete(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_client"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
