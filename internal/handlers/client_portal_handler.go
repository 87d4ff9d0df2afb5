package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/igenda-app/igenda-api/internal/domain/appointment"
	"github.com/igenda-app/igenda-api/internal/middleware"
	"github.com/igenda-app/igenda-api/internal/session"
	ucAppointment "github.com/igenda-app/igenda-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// ClientPortalHandler é a área autenticada do cliente final:
// ver os próprios horários, cancelar e encerrar a sessão.
// O agendamento em si acontece na superfície pública, por slug.
type ClientPortalHandler struct {
	repo     domain.Repository
	sessions *session.Store
	cancelUC *ucAppointment.CancelAppointment
}

func NewClientPortalHandler(
	repo domain.Repository,
	sessions *session.Store,
	cancelUC *ucAppointment.CancelAppointment,
) *ClientPortalHandler {
	return &ClientPortalHandler{
		repo:     repo,
		sessions: sessions,
		cancelUC: cancelUC,
	}
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ClientPortalHandler) MyAppointments(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextClientID).(uint)

	aps, err := h.repo.ListAppointmentsForClient(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_appointments"})
		return
	}

	c.JSON(http.StatusOK, aps)
}

// Cancel cancela um agendamento do próprio cliente. O isolamento
// (tenant + dono do agendamento) é checado no caso de uso.
func (h *ClientPortalHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, keys, err := h.cancelUC.Execute(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": ap,
		"revalidate":  keys,
	})
}

func (h *ClientPortalHandler) SignOut(c *gin.Context) {
	token := c.MustGet(middleware.ContextToken).(string)

	if err := h.sessions.RevokeClient(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_revoke_session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
