package guard

import (
	"context"
	"testing"

	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/session"
)

type fakeResolver struct {
	sessions map[string]session.Principal
}

func (f *fakeResolver) Resolve(_ context.Context, kind session.Kind, token string) (session.Principal, error) {
	p, ok := f.sessions[token]
	if !ok || p.Kind != kind {
		return session.Principal{}, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}
	return p, nil
}

func newTestGuard() *Guard {
	return New(&fakeResolver{
		sessions: map[string]session.Principal{
			"admin-a": {Kind: session.KindAdmin, UserID: 1, EnterpriseID: 10, Role: "owner"},
			"client-b": {
				Kind: session.KindClient, ClientID: 7, EnterpriseID: 20,
			},
		},
	})
}

func TestAuthenticate_UnknownToken(t *testing.T) {
	g := newTestGuard()

	_, err := g.Authenticate(context.Background(), session.KindAdmin, "nope")
	if !httperr.IsBusiness(err, httperr.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAuthenticate_EmptyToken(t *testing.T) {
	g := newTestGuard()

	_, err := g.Authenticate(context.Background(), session.KindAdmin, "")
	if !httperr.IsBusiness(err, httperr.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAuthenticate_WrongNamespace(t *testing.T) {
	g := newTestGuard()

	// Token de cliente não resolve no namespace de admin.
	_, err := g.Authenticate(context.Background(), session.KindAdmin, "client-b")
	if !httperr.IsBusiness(err, httperr.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAuthorize_TenantIsolation(t *testing.T) {
	g := newTestGuard()

	p, err := g.Authenticate(context.Background(), session.KindAdmin, "admin-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := g.Authorize(p, 10); err != nil {
		t.Fatalf("same-tenant access denied: %v", err)
	}

	if err := g.Authorize(p, 99); !httperr.IsBusiness(err, httperr.CodeForbidden) {
		t.Fatalf("expected forbidden for cross-tenant access, got %v", err)
	}
}

func TestAuthorizeClient_OwnEntityOnly(t *testing.T) {
	g := newTestGuard()

	p, err := g.Authenticate(context.Background(), session.KindClient, "client-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := g.AuthorizeClient(p, 20, 7); err != nil {
		t.Fatalf("own entity denied: %v", err)
	}

	if err := g.AuthorizeClient(p, 20, 8); !httperr.IsBusiness(err, httperr.CodeForbidden) {
		t.Fatalf("expected forbidden for another client's entity, got %v", err)
	}

	if err := g.AuthorizeClient(p, 21, 7); !httperr.IsBusiness(err, httperr.CodeForbidden) {
		t.Fatalf("expected forbidden for cross-tenant client, got %v", err)
	}
}
