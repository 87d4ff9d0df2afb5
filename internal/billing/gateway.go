package billing

import (
	"context"
	"time"
)

// Subscription é a visão local da assinatura no processador de pagamento.
type Subscription struct {
	ID        string
	Status    string
	CreatedAt time.Time
}

// Payment é o recorte mínimo de um pagamento que o core consome.
type Payment struct {
	ID                int64
	Status            string
	ExternalReference string
}

// Gateway abstrai o processador de pagamento externo.
// Toda chamada é uma requisição síncrona que pode falhar; o core degrada
// conforme a política de cada operação.
type Gateway interface {
	GetSubscription(ctx context.Context, id string) (*Subscription, error)
	CancelSubscription(ctx context.Context, id string) error
	GetPayment(ctx context.Context, id int64) (*Payment, error)
	RefundPayment(ctx context.Context, paymentID int64) error
}
