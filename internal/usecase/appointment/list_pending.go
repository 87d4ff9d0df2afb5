package appointment

import (
	"context"

	domain "github.com/igenda-app/igenda-api/internal/domain/appointment"
	"github.com/igenda-app/igenda-api/internal/models"
)

// Agendamentos pendentes: ainda em "scheduled", aguardando confirmação.
type ListPendingAppointments struct {
	repo domain.Repository
}

func NewListPendingAppointments(repo domain.Repository) *ListPendingAppointments {
	return &ListPendingAppointments{repo: repo}
}

func (uc *ListPendingAppointments) Execute(
	ctx context.Context,
	enterpriseID uint,
) ([]models.Appointment, error) {
	return uc.repo.ListPendingAppointments(ctx, enterpriseID)
}
