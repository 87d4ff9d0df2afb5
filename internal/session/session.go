package session

// Kind distingue o namespace da sessão: administradores (dashboard)
// e clientes finais (site público) nunca compartilham tokens.
type Kind string

const (
	KindAdmin  Kind = "admin"
	KindClient Kind = "client"
)

// Principal é o resultado de uma resolução de sessão bem-sucedida.
// UserID é preenchido para admins, ClientID para clientes.
type Principal struct {
	Kind         Kind
	UserID       uint
	ClientID     uint
	EnterpriseID uint
	Role         string
}
