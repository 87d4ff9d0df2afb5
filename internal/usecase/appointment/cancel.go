package appointment

import (
	"context"

	"github.com/igenda-app/igenda-api/internal/audit"
	domain "github.com/igenda-app/igenda-api/internal/domain/appointment"
	"github.com/igenda-app/igenda-api/internal/guard"
	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/models"
	"github.com/igenda-app/igenda-api/internal/revalidate"
	"github.com/igenda-app/igenda-api/internal/session"
	"github.com/igenda-app/igenda-api/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	guard *guard.Guard
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	g *guard.Guard,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		guard: g,
		audit: audit,
	}
}

// Execute aceita tanto admin quanto o próprio cliente do agendamento.
// Cancelamento exige autorização como qualquer outra transição.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	p session.Principal,
	appointmentID uint,
) (*models.Appointment, []string, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness("appointment_not_found")
	}

	switch p.Kind {
	case session.KindClient:
		if err := uc.guard.AuthorizeClient(p, ap.EnterpriseID, ap.ClientID); err != nil {
			return nil, nil, err
		}
	default:
		if err := uc.guard.Authorize(p, ap.EnterpriseID); err != nil {
			return nil, nil, err
		}
	}

	ent, err := uc.repo.GetEnterpriseByID(ctx, ap.EnterpriseID)
	if err != nil {
		return nil, nil, err
	}

	now := timezone.NowIn(ent.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, nil, err
	}

	uc.audit.Dispatch(audit.Event{
		EnterpriseID: ap.EnterpriseID,
		UserID:       auditUserID(p),
		Action:       "appointment_canceled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, revalidate.OnAppointmentChange(), nil
}
