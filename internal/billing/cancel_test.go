package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/models"
)

type fakeStore struct {
	ent    *models.Enterprise
	saved  *models.Enterprise
	getErr error
}

func (f *fakeStore) GetEnterprise(_ context.Context, id uint) (*models.Enterprise, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.ent == nil || f.ent.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f.ent
	return &cp, nil
}

func (f *fakeStore) SaveEnterprise(_ context.Context, ent *models.Enterprise) error {
	f.saved = ent
	return nil
}

type fakeGateway struct {
	sub *Subscription

	cancelErr error
	refundErr error

	canceled  []string
	refunded  []int64
	getSubErr error
}

func (f *fakeGateway) GetSubscription(_ context.Context, id string) (*Subscription, error) {
	if f.getSubErr != nil {
		return nil, f.getSubErr
	}
	return f.sub, nil
}

func (f *fakeGateway) CancelSubscription(_ context.Context, id string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.canceled = append(f.canceled, id)
	return nil
}

func (f *fakeGateway) GetPayment(_ context.Context, id int64) (*Payment, error) {
	return &Payment{ID: id, Status: "approved"}, nil
}

func (f *fakeGateway) RefundPayment(_ context.Context, paymentID int64) error {
	if f.refundErr != nil {
		return f.refundErr
	}
	f.refunded = append(f.refunded, paymentID)
	return nil
}

func newCancelerAt(store EnterpriseStore, gw Gateway, now time.Time) *Canceler {
	c := NewCanceler(store, gw)
	c.now = func() time.Time { return now }
	return c
}

func TestCancel_WithinRefundWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := &fakeStore{ent: &models.Enterprise{
		ID:             1,
		SubscriptionID: "sub-123",
		LastPaymentID:  555,
	}}
	gw := &fakeGateway{sub: &Subscription{
		ID:        "sub-123",
		Status:    "authorized",
		CreatedAt: now.AddDate(0, 0, -3),
	}}

	res, err := newCancelerAt(store, gw, now).CancelWithPossibleRefund(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Refunded {
		t.Fatalf("expected refund for 3-day-old subscription")
	}
	if len(gw.canceled) != 1 || gw.canceled[0] != "sub-123" {
		t.Fatalf("expected cancel of sub-123, got %v", gw.canceled)
	}
	if len(gw.refunded) != 1 || gw.refunded[0] != 555 {
		t.Fatalf("expected refund of payment 555, got %v", gw.refunded)
	}
	if store.saved == nil || store.saved.SubscriptionID != "" || store.saved.SubscriptionStatus != "canceled" {
		t.Fatalf("expected local subscription cleared, got %+v", store.saved)
	}
}

func TestCancel_OutsideRefundWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := &fakeStore{ent: &models.Enterprise{
		ID:             1,
		SubscriptionID: "sub-123",
		LastPaymentID:  555,
	}}
	gw := &fakeGateway{sub: &Subscription{
		ID:        "sub-123",
		CreatedAt: now.AddDate(0, 0, -10),
	}}

	res, err := newCancelerAt(store, gw, now).CancelWithPossibleRefund(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Refunded {
		t.Fatalf("expected no refund for 10-day-old subscription")
	}
	if len(gw.refunded) != 0 {
		t.Fatalf("refund should not be attempted, got %v", gw.refunded)
	}
	if len(gw.canceled) != 1 {
		t.Fatalf("cancellation must still happen, got %v", gw.canceled)
	}
}

func TestCancel_RefundWindowBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Exatamente 7 dias completos: elegível (elapsed <= 7).
	store := &fakeStore{ent: &models.Enterprise{ID: 1, SubscriptionID: "s", LastPaymentID: 9}}
	gw := &fakeGateway{sub: &Subscription{ID: "s", CreatedAt: now.AddDate(0, 0, -7)}}

	res, err := newCancelerAt(store, gw, now).CancelWithPossibleRefund(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Refunded {
		t.Fatalf("day 7 must still be refundable")
	}

	// 8 dias: fora da janela.
	store = &fakeStore{ent: &models.Enterprise{ID: 1, SubscriptionID: "s", LastPaymentID: 9}}
	gw = &fakeGateway{sub: &Subscription{ID: "s", CreatedAt: now.AddDate(0, 0, -8)}}

	res, err = newCancelerAt(store, gw, now).CancelWithPossibleRefund(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Refunded {
		t.Fatalf("day 8 must not be refundable")
	}
}

func TestCancel_EnterpriseNotFound(t *testing.T) {
	store := &fakeStore{}
	gw := &fakeGateway{}

	_, err := newCancelerAt(store, gw, time.Now()).CancelWithPossibleRefund(context.Background(), 99)
	if !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCancel_StoreFailureIsNotNotFound(t *testing.T) {
	store := &fakeStore{getErr: errors.New("connection refused")}
	gw := &fakeGateway{}

	_, err := newCancelerAt(store, gw, time.Now()).CancelWithPossibleRefund(context.Background(), 1)
	if !httperr.IsBusiness(err, httperr.CodeExternalService) {
		t.Fatalf("expected external_service_error for store outage, got %v", err)
	}
}

func TestCancel_NoSubscription(t *testing.T) {
	store := &fakeStore{ent: &models.Enterprise{ID: 1}}
	gw := &fakeGateway{}

	_, err := newCancelerAt(store, gw, time.Now()).CancelWithPossibleRefund(context.Background(), 1)
	if !httperr.IsBusiness(err, httperr.CodeNoSubscription) {
		t.Fatalf("expected no_subscription, got %v", err)
	}
}

func TestCancel_IdempotentViaNoSubscription(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := &fakeStore{ent: &models.Enterprise{ID: 1, SubscriptionID: "sub-123"}}
	gw := &fakeGateway{sub: &Subscription{ID: "sub-123", CreatedAt: now.AddDate(0, 0, -1)}}
	c := newCancelerAt(store, gw, now)

	if _, err := c.CancelWithPossibleRefund(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// O id local foi limpo; repetir reporta no_subscription.
	store.ent = store.saved
	if _, err := c.CancelWithPossibleRefund(context.Background(), 1); !httperr.IsBusiness(err, httperr.CodeNoSubscription) {
		t.Fatalf("expected no_subscription on retry, got %v", err)
	}
}

func TestCancel_RefundFailureSwallowed(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := &fakeStore{ent: &models.Enterprise{ID: 1, SubscriptionID: "s", LastPaymentID: 9}}
	gw := &fakeGateway{
		sub:       &Subscription{ID: "s", CreatedAt: now.AddDate(0, 0, -2)},
		refundErr: errors.New("processor unavailable"),
	}

	res, err := newCancelerAt(store, gw, now).CancelWithPossibleRefund(context.Background(), 1)
	if err != nil {
		t.Fatalf("refund failure must not fail cancellation: %v", err)
	}
	if res.Refunded {
		t.Fatalf("refunded must be false when refund failed")
	}
	if len(gw.canceled) != 1 {
		t.Fatalf("cancellation must have happened, got %v", gw.canceled)
	}
}

func TestCancel_RefundFailureSurfacedWhenNotBestEffort(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := &fakeStore{ent: &models.Enterprise{ID: 1, SubscriptionID: "s", LastPaymentID: 9}}
	gw := &fakeGateway{
		sub:       &Subscription{ID: "s", CreatedAt: now.AddDate(0, 0, -2)},
		refundErr: errors.New("processor unavailable"),
	}

	c := newCancelerAt(store, gw, now)
	c.RefundBestEffort = false

	_, err := c.CancelWithPossibleRefund(context.Background(), 1)
	if !httperr.IsBusiness(err, httperr.CodeExternalService) {
		t.Fatalf("expected external_service_error, got %v", err)
	}
}

func TestCancel_GatewayCancelFailure(t *testing.T) {
	now := time.Now()

	store := &fakeStore{ent: &models.Enterprise{ID: 1, SubscriptionID: "s"}}
	gw := &fakeGateway{
		sub:       &Subscription{ID: "s", CreatedAt: now},
		cancelErr: errors.New("processor unavailable"),
	}

	_, err := newCancelerAt(store, gw, now).CancelWithPossibleRefund(context.Background(), 1)
	if !httperr.IsBusiness(err, httperr.CodeExternalService) {
		t.Fatalf("expected external_service_error, got %v", err)
	}
	if store.saved != nil {
		t.Fatalf("local state must not change when processor cancel fails")
	}
}
