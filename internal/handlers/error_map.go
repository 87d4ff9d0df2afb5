package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/igenda-app/igenda-api/internal/httperr"
)

// mapBusinessError traduz códigos de negócio para status HTTP + mensagem
// localizada. Erros desconhecidos viram 500 genérico (nunca vazamos detalhe).
func mapBusinessError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch code {
	case httperr.CodeUnauthorized:
		httperr.Unauthorized(c, code, "Sessão inválida ou expirada.")
	case httperr.CodeForbidden:
		httperr.Forbidden(c, code, "Você não tem acesso a este recurso.")
	case httperr.CodeNotFound, "appointment_not_found", "service_not_found",
		"professional_not_found", "client_not_found":
		httperr.NotFound(c, code, "Registro não encontrado.")
	case httperr.CodeInvalidTransition:
		httperr.BadRequest(c, code, "Transição de status inválida.")
	case httperr.CodeCodeMismatch:
		httperr.BadRequest(c, code, "Código de verificação incorreto.")
	case httperr.CodeCodeExpired:
		httperr.BadRequest(c, code, "Código de verificação expirado. Solicite um novo.")
	case httperr.CodeNoSubscription:
		httperr.BadRequest(c, code, "Nenhuma assinatura ativa.")
	case httperr.CodeTimeConflict:
		httperr.BadRequest(c, code, "Conflito de horário.")
	case httperr.CodeOutsideAvailability:
		httperr.BadRequest(c, code, "Fora do horário de atendimento.")
	case httperr.CodeTooSoon:
		httperr.BadRequest(c, code, "Horário inválido.")
	case httperr.CodeValidation:
		httperr.BadRequest(c, code, "Dados inválidos.")
	case httperr.CodeClientHasAppointment:
		httperr.Conflict(c, code, "Cliente possui agendamentos e não pode ser removido.")
	case httperr.CodeExternalService:
		httperr.Internal(c, code, "Serviço externo indisponível. Tente novamente.")
	default:
		httperr.BadRequest(c, code, "Não foi possível concluir a operação.")
	}
}
