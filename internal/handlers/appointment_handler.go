package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/middleware"
	"github.com/igenda-app/igenda-api/internal/session"
	ucAppointment "github.com/igenda-app/igenda-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	bookUC        *ucAppointment.BookAppointment
	confirmUC     *ucAppointment.ConfirmAppointment
	cancelUC      *ucAppointment.CancelAppointment
	noShowUC      *ucAppointment.MarkNoShowAppointment
	listByDateUC  *ucAppointment.ListAppointmentsByDate
	listPendingUC *ucAppointment.ListPendingAppointments
}

func NewAppointmentHandler(
	bookUC *ucAppointment.BookAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	noShowUC *ucAppointment.MarkNoShowAppointment,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listPendingUC *ucAppointment.ListPendingAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:        bookUC,
		confirmUC:     confirmUC,
		cancelUC:      cancelUC,
		noShowUC:      noShowUC,
		listByDateUC:  listByDateUC,
		listPendingUC: listPendingUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	ClientID       uint   `json:"client_id"`
	ClientName     string `json:"client_name"`
	ClientPhone    string `json:"client_phone"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Notes          string `json:"notes"`
}

// ======================================================
// HELPERS
// ======================================================

func principalFrom(c *gin.Context) session.Principal {
	return c.MustGet(middleware.ContextPrincipal).(session.Principal)
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func queryID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro inválido: "+name+".")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	p := principalFrom(c)
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.ClientID == 0 && (req.ClientName == "" || req.ClientPhone == "") {
		httperr.BadRequest(c, "missing_client", "Informe o cliente (id ou nome + telefone).")
		return
	}

	ap, keys, err := h.bookUC.Execute(c.Request.Context(), p, ucAppointment.BookAppointmentInput{
		EnterpriseID:   enterpriseID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		ClientID:       req.ClientID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
	})
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment": ap,
		"revalidate":  keys,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	aps, err := h.listByDateUC.Execute(c.Request.Context(), enterpriseID, dateStr)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, aps)
}

func (h *AppointmentHandler) ListPending(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)

	aps, err := h.listPendingUC.Execute(c.Request.Context(), enterpriseID)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, aps)
}

// ======================================================
// TRANSIÇÕES DE STATUS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, keys, err := h.confirmUC.Execute(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": ap,
		"revalidate":  keys,
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
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

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, keys, err := h.noShowUC.Execute(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": ap,
		"revalidate":  keys,
	})
}
