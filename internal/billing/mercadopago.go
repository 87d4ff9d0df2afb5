package billing

import (
	"context"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preapproval"
	"github.com/mercadopago/sdk-go/pkg/refund"
)

// MercadoPagoGateway implementa Gateway sobre o SDK do Mercado Pago.
// Assinatura = preapproval; reembolso = refund do pagamento aprovado.
type MercadoPagoGateway struct {
	preapproval preapproval.Client
	payment     payment.Client
	refund      refund.Client
}

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPagoGateway{
		preapproval: preapproval.NewClient(cfg),
		payment:     payment.NewClient(cfg),
		refund:      refund.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) GetSubscription(ctx context.Context, id string) (*Subscription, error) {
	resp, err := g.preapproval.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return subscriptionFromResponse(resp), nil
}

// DateCreated ausente chega como zero value e segue como zero value:
// a janela de reembolso trata data zerada como "fora da janela".
func subscriptionFromResponse(resp *preapproval.Response) *Subscription {
	return &Subscription{
		ID:        resp.ID,
		Status:    resp.Status,
		CreatedAt: resp.DateCreated,
	}
}

func (g *MercadoPagoGateway) CancelSubscription(ctx context.Context, id string) error {
	_, err := g.preapproval.Update(ctx, id, preapproval.UpdateRequest{
		Status: "cancelled",
	})
	return err
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, id int64) (*Payment, error) {
	resp, err := g.payment.Get(ctx, int(id))
	if err != nil {
		return nil, err
	}
	return paymentFromResponse(resp), nil
}

func paymentFromResponse(resp *payment.Response) *Payment {
	return &Payment{
		ID:                int64(resp.ID),
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
	}
}

func (g *MercadoPagoGateway) RefundPayment(ctx context.Context, paymentID int64) error {
	_, err := g.refund.Create(ctx, int(paymentID))
	return err
}

var _ Gateway = (*MercadoPagoGateway)(nil)
