package verification

import (
	"context"
	"log"
)

// Notifier entrega o código gerado ao canal externo (WhatsApp/SMS).
// O transporte em si fica fora do core; aqui ele é um colaborador opaco.
type Notifier interface {
	Send(ctx context.Context, phone string, code string) error
}

// LogNotifier escreve o código no log do processo. Serve para
// desenvolvimento e para ambientes sem canal de mensagem configurado.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, phone string, code string) error {
	log.Printf("verification code for %s: %s", phone, code)
	return nil
}
