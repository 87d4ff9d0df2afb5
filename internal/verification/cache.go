package verification

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/igenda-app/igenda-api/internal/httperr"
)

// CodeTTL: o código vence 5 minutos após a emissão.
const CodeTTL = 5 * time.Minute

const keyPrefix = "verify:"

// Pending é o payload de cadastro que fica pendente até o código ser consumido.
type Pending struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type entry struct {
	Code    string  `json:"code"`
	Pending Pending `json:"pending"`
}

// Cache emite e consome códigos de verificação de telefone.
// Um código por telefone: emitir de novo sobrescreve o anterior.
type Cache struct {
	store Store
}

func NewCache(store Store) *Cache {
	return &Cache{store: store}
}

func key(enterpriseID uint, phone string) string {
	return fmt.Sprintf("%s%d:%s", keyPrefix, enterpriseID, phone)
}

// RequestCode gera um código de 6 dígitos uniforme em [100000, 999999]
// e o guarda junto com o payload pendente, por CodeTTL.
func (c *Cache) RequestCode(ctx context.Context, enterpriseID uint, phone string, pending Pending) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)

	raw, err := json.Marshal(entry{Code: code, Pending: pending})
	if err != nil {
		return "", err
	}

	if err := c.store.Set(ctx, key(enterpriseID, phone), raw, CodeTTL); err != nil {
		return "", err
	}

	return code, nil
}

// ConsumeCode valida o código informado contra o mais recente emitido.
// Entrada ausente ou vencida: code_expired. Código diferente: code_mismatch
// (a entrada continua válida até o TTL nesse caso).
func (c *Cache) ConsumeCode(ctx context.Context, enterpriseID uint, phone string, suppliedCode string) (Pending, error) {
	k := key(enterpriseID, phone)

	raw, err := c.store.Get(ctx, k)
	if errors.Is(err, ErrNotFound) {
		return Pending{}, httperr.ErrBusiness(httperr.CodeCodeExpired)
	}
	if err != nil {
		return Pending{}, err
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Pending{}, httperr.ErrBusiness(httperr.CodeCodeExpired)
	}

	if e.Code != suppliedCode {
		return Pending{}, httperr.ErrBusiness(httperr.CodeCodeMismatch)
	}

	if err := c.store.Del(ctx, k); err != nil {
		return Pending{}, err
	}

	return e.Pending, nil
}
