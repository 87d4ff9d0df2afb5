package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/igenda-app/igenda-api/internal/billing"
	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/middleware"
	"github.com/igenda-app/igenda-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type BillingHandler struct {
	db       *gorm.DB
	gateway  billing.Gateway
	canceler *billing.Canceler
}

func NewBillingHandler(db *gorm.DB, gateway billing.Gateway, canceler *billing.Canceler) *BillingHandler {
	return &BillingHandler{
		db:       db,
		gateway:  gateway,
		canceler: canceler,
	}
}

// ======================================================
// ASSINATURA
// ======================================================

func (h *BillingHandler) GetSubscription(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)

	var ent models.Enterprise
	if err := h.db.First(&ent, enterpriseID).Error; err != nil {
		httperr.Internal(c, "enterprise_not_found", "Empresa não encontrada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscription_status": ent.SubscriptionStatus,
		"has_subscription":    ent.SubscriptionID != "",
	})
}

// CancelSubscription cancela no processador e, dentro da janela de
// reembolso, tenta estornar o último pagamento.
func (h *BillingHandler) CancelSubscription(c *gin.Context) {
	enterpriseID := c.MustGet(middleware.ContextEnterpriseID).(uint)

	result, err := h.canceler.CancelWithPossibleRefund(c.Request.Context(), enterpriseID)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"canceled": true,
		"refunded": result.Refunded,
	})
}

// ======================================================
// WEBHOOK
// ======================================================

type mercadoPagoWebhook struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Webhook recebe notificações do processador. Só nos interessam eventos
// de pagamento: o pagamento é rebuscado na API (nunca confiamos no corpo)
// e o vínculo com a empresa vem do external_reference.
// Respondemos 200 mesmo em eventos irrelevantes para evitar retries.
func (h *BillingHandler) Webhook(c *gin.Context) {
	var payload mercadoPagoWebhook
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusOK, gin.H{"ignored": true})
		return
	}

	if payload.Type != "payment" || payload.Data.ID == "" {
		c.JSON(http.StatusOK, gin.H{"ignored": true})
		return
	}

	paymentID, err := strconv.ParseInt(payload.Data.ID, 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ignored": true})
		return
	}

	payment, err := h.gateway.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		// Falha de consulta: 500 faz o processador reenviar depois.
		httperr.Internal(c, "external_service_error", "Erro ao consultar pagamento.")
		return
	}

	enterpriseID, err := strconv.ParseUint(payment.ExternalReference, 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ignored": true})
		return
	}

	var ent models.Enterprise
	if err := h.db.First(&ent, uint(enterpriseID)).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"ignored": true})
		return
	}

	if payment.Status == "approved" {
		ent.SubscriptionStatus = "active"
		ent.LastPaymentID = payment.ID
	}

	if err := h.db.Save(&ent).Error; err != nil {
		httperr.Internal(c, "failed_to_update_enterprise", "Erro ao atualizar empresa.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
