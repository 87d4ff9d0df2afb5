package guard

import (
	"context"

	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/session"
)

// SessionResolver é satisfeito por *session.Store.
type SessionResolver interface {
	Resolve(ctx context.Context, kind session.Kind, token string) (session.Principal, error)
}

// Guard é o ponto único de autenticação + checagem de isolamento de tenant.
// Não tem efeitos colaterais: quem muta é o chamador, depois do allow.
type Guard struct {
	sessions SessionResolver
}

func New(sessions SessionResolver) *Guard {
	return &Guard{sessions: sessions}
}

// Authenticate resolve o token para um Principal.
// Token ausente, desconhecido ou expirado: sempre o mesmo unauthorized.
func (g *Guard) Authenticate(ctx context.Context, kind session.Kind, token string) (session.Principal, error) {
	p, err := g.sessions.Resolve(ctx, kind, token)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeUnauthorized) {
			return session.Principal{}, err
		}
		// Falha de infraestrutura (ex.: redis fora) não vira unauthorized.
		return session.Principal{}, httperr.ErrBusiness(httperr.CodeExternalService)
	}
	return p, nil
}

// Authorize verifica se o principal pode agir sobre uma entidade do tenant dado.
func (g *Guard) Authorize(p session.Principal, enterpriseID uint) error {
	if p.EnterpriseID == 0 || p.EnterpriseID != enterpriseID {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}
	return nil
}

// AuthorizeClient restringe um principal de cliente à sua própria entidade,
// além do isolamento de tenant.
func (g *Guard) AuthorizeClient(p session.Principal, enterpriseID uint, clientID uint) error {
	if err := g.Authorize(p, enterpriseID); err != nil {
		return err
	}
	if p.Kind != session.KindClient || p.ClientID != clientID {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}
	return nil
}
