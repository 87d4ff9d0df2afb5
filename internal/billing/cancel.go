package billing

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/models"
)

// RefundWindowDays: cancelamentos até 7 dias após a criação da assinatura
// tentam reembolsar o último pagamento.
const RefundWindowDays = 7

type CancelResult struct {
	Refunded bool `json:"refunded"`
}

// EnterpriseStore é o recorte de persistência que o Canceler precisa.
type EnterpriseStore interface {
	GetEnterprise(ctx context.Context, id uint) (*models.Enterprise, error)
	SaveEnterprise(ctx context.Context, ent *models.Enterprise) error
}

type gormEnterpriseStore struct {
	db *gorm.DB
}

func NewGormEnterpriseStore(db *gorm.DB) EnterpriseStore {
	return &gormEnterpriseStore{db: db}
}

func (s *gormEnterpriseStore) GetEnterprise(ctx context.Context, id uint) (*models.Enterprise, error) {
	var ent models.Enterprise
	if err := s.db.WithContext(ctx).First(&ent, id).Error; err != nil {
		return nil, err
	}
	return &ent, nil
}

func (s *gormEnterpriseStore) SaveEnterprise(ctx context.Context, ent *models.Enterprise) error {
	return s.db.WithContext(ctx).Save(ent).Error
}

// Canceler aplica a política de cancelamento com possível reembolso.
// RefundBestEffort é explícito: falha de reembolso é logada e engolida,
// nunca bloqueia o cancelamento já efetivado no processador.
type Canceler struct {
	store            EnterpriseStore
	gateway          Gateway
	RefundBestEffort bool

	now func() time.Time
}

func NewCanceler(store EnterpriseStore, gateway Gateway) *Canceler {
	return &Canceler{
		store:            store,
		gateway:          gateway,
		RefundBestEffort: true,
		now:              time.Now,
	}
}

// CancelWithPossibleRefund cancela a assinatura da empresa.
// O cancelamento no processador é incondicional e irreversível; o reembolso
// só é tentado quando floor((now-created)/86400s) <= RefundWindowDays.
func (c *Canceler) CancelWithPossibleRefund(ctx context.Context, enterpriseID uint) (*CancelResult, error) {
	ent, err := c.store.GetEnterprise(ctx, enterpriseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if err != nil {
		// Banco fora do ar não é "empresa inexistente".
		return nil, httperr.ErrBusiness(httperr.CodeExternalService)
	}

	if ent.SubscriptionID == "" {
		return nil, httperr.ErrBusiness(httperr.CodeNoSubscription)
	}

	sub, err := c.gateway.GetSubscription(ctx, ent.SubscriptionID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeExternalService)
	}

	elapsedDays := int(c.now().UTC().Sub(sub.CreatedAt) / (24 * time.Hour))

	if err := c.gateway.CancelSubscription(ctx, ent.SubscriptionID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeExternalService)
	}

	refunded := false
	if elapsedDays <= RefundWindowDays && ent.LastPaymentID != 0 {
		if err := c.gateway.RefundPayment(ctx, ent.LastPaymentID); err != nil {
			if !c.RefundBestEffort {
				return nil, httperr.ErrBusiness(httperr.CodeExternalService)
			}
			log.Printf("refund failed for enterprise %d (payment %d): %v", ent.ID, ent.LastPaymentID, err)
		} else {
			refunded = true
		}
	}

	ent.SubscriptionID = ""
	ent.SubscriptionStatus = "canceled"
	ent.LastPaymentID = 0
	if err := c.store.SaveEnterprise(ctx, ent); err != nil {
		return nil, err
	}

	return &CancelResult{Refunded: refunded}, nil
}
