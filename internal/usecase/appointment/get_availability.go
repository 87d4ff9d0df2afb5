package appointment

import (
	"context"
	"time"

	domain "github.com/igenda-app/igenda-api/internal/domain/appointment"
	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository

	now func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{
		repo: repo,
		now:  time.Now,
	}
}

// Execute calcula os horários livres de um profissional em uma data.
// A janela semanal é mantida em UTC e toda a conta acontece em UTC;
// os rótulos dos slots saem no fuso da empresa, que é a mesma base em
// que o agendamento interpreta data e hora.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	ent, err := uc.repo.GetEnterpriseByID(ctx, in.EnterpriseID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	svc, err := uc.repo.GetService(ctx, in.EnterpriseID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	pro, err := uc.repo.GetProfessional(ctx, in.EnterpriseID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}
	if !pro.Active {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	window, err := uc.repo.GetAvailabilityWindow(ctx, pro.ID)
	if err != nil {
		// Profissional sem janela configurada: nenhum horário.
		return []domain.TimeSlot{}, nil
	}

	date := in.Date.UTC()

	ws, we, ok := domain.WindowOnDate(window, date)
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := uc.repo.ListAppointmentsForDay(ctx, pro.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(booked))
	for _, ap := range booked {
		busy = append(busy, domain.Interval{
			Start: ap.StartTime.UTC(),
			End:   ap.EndTime.UTC(),
		})
	}

	duration := time.Duration(svc.DurationMin) * time.Minute

	loc := timezone.Location(ent.Timezone)

	return domain.FreeSlots(ws, we, duration, busy, uc.now().UTC(), loc), nil
}
