package appointment

import (
	"context"
	"time"

	"github.com/igenda-app/igenda-api/internal/audit"
	domain "github.com/igenda-app/igenda-api/internal/domain/appointment"
	"github.com/igenda-app/igenda-api/internal/guard"
	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/models"
	"github.com/igenda-app/igenda-api/internal/revalidate"
	"github.com/igenda-app/igenda-api/internal/session"
	"github.com/igenda-app/igenda-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	EnterpriseID   uint
	ProfessionalID uint
	ServiceID      uint

	// ClientID vem do principal quando o próprio cliente agenda;
	// agendamentos feitos pelo admin identificam o cliente por telefone.
	ClientID    uint
	ClientName  string
	ClientPhone string

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	guard *guard.Guard
	audit *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	g *guard.Guard,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		guard: g,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	p session.Principal,
	in BookAppointmentInput,
) (*models.Appointment, []string, error) {

	ent, err := uc.repo.GetEnterpriseByID(ctx, in.EnterpriseID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if err := uc.guard.Authorize(p, ent.ID); err != nil {
		return nil, nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(ent.Timezone),
	)
	if err != nil {
		return nil, nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	minAdvance := ent.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(ent.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}

	svc, err := uc.repo.GetService(ctx, in.EnterpriseID, in.ServiceID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	pro, err := uc.repo.GetProfessional(ctx, in.EnterpriseID, in.ProfessionalID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness("professional_not_found")
	}
	if !pro.Active {
		return nil, nil, httperr.ErrBusiness("professional_not_found")
	}

	window, err := uc.repo.GetAvailabilityWindow(ctx, pro.ID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness(httperr.CodeOutsideAvailability)
	}

	startUTC := start.UTC()
	endUTC := end.UTC()

	ws, we, ok := domain.WindowOnDate(window, startUTC)
	if !ok || startUTC.Before(ws) || endUTC.After(we) {
		return nil, nil, httperr.ErrBusiness(httperr.CodeOutsideAvailability)
	}

	var client *models.Client
	if in.ClientID != 0 {
		client, err = uc.repo.GetClient(ctx, in.EnterpriseID, in.ClientID)
		if err != nil {
			return nil, nil, httperr.ErrBusiness("client_not_found")
		}
	} else {
		client, err = uc.repo.GetOrCreateClient(ctx, in.EnterpriseID, in.ClientName, in.ClientPhone)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := uc.repo.AssertNoTimeConflict(ctx, pro.ID, start, end); err != nil {
		return nil, nil, err
	}

	ap := &models.Appointment{
		EnterpriseID:   in.EnterpriseID,
		ProfessionalID: pro.ID,
		ClientID:       client.ID,
		ServiceID:      svc.ID,
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.InitialStatus()),
		Notes:          in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, nil, err
	}

	uc.audit.Dispatch(audit.Event{
		EnterpriseID: in.EnterpriseID,
		UserID:       auditUserID(p),
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, revalidate.OnAppointmentChange(), nil
}
