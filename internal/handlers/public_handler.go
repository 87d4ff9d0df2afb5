package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/igenda-app/igenda-api/internal/domain/appointment"
	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/models"
	"github.com/igenda-app/igenda-api/internal/session"
	ucAppointment "github.com/igenda-app/igenda-api/internal/usecase/appointment"
	"github.com/igenda-app/igenda-api/internal/validators"
	"github.com/igenda-app/igenda-api/internal/verification"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serve a superfície pública por slug: perfil da empresa,
// catálogo, horários livres e o fluxo de verificação por telefone que
// abre a sessão do cliente final.
type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucAppointment.GetAvailability
	bookUC         *ucAppointment.BookAppointment
	codes          *verification.Cache
	notifier       verification.Notifier
	sessions       *session.Store
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucAppointment.GetAvailability,
	bookUC *ucAppointment.BookAppointment,
	codes *verification.Cache,
	notifier verification.Notifier,
	sessions *session.Store,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		bookUC:         bookUC,
		codes:          codes,
		notifier:       notifier,
		sessions:       sessions,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RequestVerificationRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

type ConfirmVerificationRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *PublicHandler) enterpriseBySlug(c *gin.Context) (*models.Enterprise, bool) {
	slug := c.Param("slug")

	var ent models.Enterprise
	if err := h.db.Where("slug = ?", slug).First(&ent).Error; err != nil {
		httperr.NotFound(c, "enterprise_not_found", "Empresa não encontrada.")
		return nil, false
	}
	return &ent, true
}

// ======================================================
// PERFIL + CATÁLOGO
// ======================================================

func (h *PublicHandler) GetProfile(c *gin.Context) {
	ent, ok := h.enterpriseBySlug(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         ent.ID,
		"name":       ent.Name,
		"slug":       ent.Slug,
		"specialty":  ent.Specialty,
		"phone":      ent.Phone,
		"avatar_url": ent.AvatarURL,
		"timezone":   ent.Timezone,
	})
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	ent, ok := h.enterpriseBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("enterprise_id = ? AND active = ?", ent.ID, true).
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	ent, ok := h.enterpriseBySlug(c)
	if !ok {
		return
	}

	var pros []models.Professional
	if err := h.db.
		Where("enterprise_id = ? AND active = ?", ent.ID, true).
		Order("id ASC").
		Find(&pros).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, pros)
}

// ======================================================
// DISPONIBILIDADE
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	ent, ok := h.enterpriseBySlug(c)
	if !ok {
		return
	}

	professionalID, ok1 := queryID(c, "professional_id")
	serviceID, ok2 := queryID(c, "service_id")
	if !ok1 || !ok2 {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		EnterpriseID:   ent.ID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	})
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  c.Query("date"),
		"slots": slots,
	})
}

// ======================================================
// AGENDAMENTO (sessão de cliente)
// ======================================================

type PublicBookRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Notes          string `json:"notes"`
}

// BookAppointment agenda em nome do cliente da sessão. A empresa vem do
// slug; sessão de outra empresa cai no forbidden do caso de uso.
func (h *PublicHandler) BookAppointment(c *gin.Context) {
	ent, ok := h.enterpriseBySlug(c)
	if !ok {
		return
	}

	p := principalFrom(c)

	var req PublicBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, keys, err := h.bookUC.Execute(c.Request.Context(), p, ucAppointment.BookAppointmentInput{
		EnterpriseID:   ent.ID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		ClientID:       p.ClientID,
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
// VERIFICAÇÃO POR TELEFONE
// ======================================================

// RequestVerification emite um código de 6 dígitos para o telefone.
// Solicitar de novo sobrescreve o código anterior; o cadastro só acontece
// depois do ConfirmVerification.
func (h *PublicHandler) RequestVerification(c *gin.Context) {
	ent, ok := h.enterpriseBySlug(c)
	if !ok {
		return
	}

	var req RequestVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validators.IsPhoneValid(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido (use o formato +5511999999999).")
		return
	}

	code, err := h.codes.RequestCode(c.Request.Context(), ent.ID, req.Phone, verification.Pending{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_issue_code", "Erro ao gerar código de verificação.")
		return
	}

	if err := h.notifier.Send(c.Request.Context(), req.Phone, code); err != nil {
		httperr.Internal(c, "failed_to_send_code", "Erro ao enviar código de verificação.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"expires_in": int(verification.CodeTTL.Seconds()),
	})
}

// ConfirmVerification consome o código. No sucesso o cliente é criado
// (ou reaproveitado pelo telefone) e uma sessão de cliente é aberta.
func (h *PublicHandler) ConfirmVerification(c *gin.Context) {
	ent, ok := h.enterpriseBySlug(c)
	if !ok {
		return
	}

	var req ConfirmVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	pending, err := h.codes.ConsumeCode(c.Request.Context(), ent.ID, req.Phone, req.Code)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	var client models.Client
	err = h.db.
		Where("enterprise_id = ? AND phone = ?", ent.ID, pending.Phone).
		First(&client).Error
	if err == gorm.ErrRecordNotFound {
		client = models.Client{
			EnterpriseID: ent.ID,
			Name:         pending.Name,
			Phone:        pending.Phone,
		}
		if err := h.db.Create(&client).Error; err != nil {
			httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
			return
		}
	} else if err != nil {
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	token, err := h.sessions.IssueClient(c.Request.Context(), &client)
	if err != nil {
		httperr.Internal(c, "failed_to_create_session", "Erro ao abrir sessão.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client": gin.H{
			"id":            client.ID,
			"name":          client.Name,
			"phone":         client.Phone,
			"enterprise_id": client.EnterpriseID,
		},
		"token": token,
	})
}
