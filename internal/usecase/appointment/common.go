package appointment

import "github.com/igenda-app/igenda-api/internal/session"

// auditUserID: eventos de auditoria só carregam user_id para admins.
func auditUserID(p session.Principal) *uint {
	if p.Kind == session.KindAdmin && p.UserID != 0 {
		id := p.UserID
		return &id
	}
	return nil
}
