package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// Códigos compartilhados entre as camadas (taxonomia de erros do core).
const (
	CodeUnauthorized         = "unauthorized"
	CodeForbidden            = "forbidden"
	CodeNotFound             = "not_found"
	CodeInvalidTransition    = "invalid_transition"
	CodeCodeMismatch         = "code_mismatch"
	CodeCodeExpired          = "code_expired"
	CodeNoSubscription       = "no_subscription"
	CodeExternalService      = "external_service_error"
	CodeValidation           = "validation_error"
	CodeTimeConflict         = "time_conflict"
	CodeOutsideAvailability  = "outside_availability"
	CodeTooSoon              = "too_soon"
	CodeClientHasAppointment = "client_has_appointments"
)
