package appointment

import "github.com/igenda-app/igenda-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
	StatusNoShow    Status = "no_show"
)

// ===============================
// Validations
// ===============================

// CanConfirm: apenas agendamentos em "scheduled" podem ser confirmados.
// Reconfirmar um agendamento já confirmado é erro, não no-op.
func CanConfirm(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

// CanCancel: cancelamento permitido a partir de "scheduled" ou "confirmed".
func CanCancel(current Status) error {
	if current != StatusScheduled && current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

// CanMarkNoShow: mesmas origens do cancelamento; "canceled" e "no_show" são terminais.
func CanMarkNoShow(current Status) error {
	if current != StatusScheduled && current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
