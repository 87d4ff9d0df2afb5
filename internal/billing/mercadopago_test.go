package billing

import (
	"testing"
	"time"

	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preapproval"
)

// Mapeamento contra os tipos reais do SDK: se a forma das respostas
// mudar em um upgrade, esses testes param de compilar.

func TestSubscriptionFromResponse(t *testing.T) {
	created := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	sub := subscriptionFromResponse(&preapproval.Response{
		ID:          "sub-123",
		Status:      "authorized",
		DateCreated: created,
	})

	if sub.ID != "sub-123" || sub.Status != "authorized" {
		t.Fatalf("unexpected subscription: %+v", sub)
	}
	if !sub.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at %v, got %v", created, sub.CreatedAt)
	}
}

func TestSubscriptionFromResponse_MissingDateCreated(t *testing.T) {
	sub := subscriptionFromResponse(&preapproval.Response{ID: "sub-123"})

	if !sub.CreatedAt.IsZero() {
		t.Fatalf("absent date_created must stay zero, got %v", sub.CreatedAt)
	}
}

func TestPaymentFromResponse(t *testing.T) {
	p := paymentFromResponse(&payment.Response{
		ID:                42,
		Status:            "approved",
		ExternalReference: "7",
	})

	if p.ID != 42 || p.Status != "approved" || p.ExternalReference != "7" {
		t.Fatalf("unexpected payment: %+v", p)
	}
}
