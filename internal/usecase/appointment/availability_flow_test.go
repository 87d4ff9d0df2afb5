package appointment

import (
	"context"
	"testing"
	"time"

	domain "github.com/igenda-app/igenda-api/internal/domain/appointment"
	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/models"
)

func newBookingFixture(tz string) *fakeRepo {
	repo := newFakeRepo()
	repo.enterprises[10] = &models.Enterprise{ID: 10, Slug: "studio-a", Timezone: tz}
	repo.services[3] = &models.Service{ID: 3, EnterpriseID: 10, DurationMin: 60, Active: true}
	repo.professionals[4] = &models.Professional{ID: 4, EnterpriseID: 10, Active: true}
	repo.windows[4] = &models.AvailabilityWindow{
		ProfessionalID: 4,
		WeekdayFrom:    0,
		WeekdayTo:      6,
		TimeFrom:       "09:00",
		TimeTo:         "12:00",
	}
	repo.clients[7] = &models.Client{ID: 7, EnterpriseID: 10}
	return repo
}

// Um slot devolvido como livre tem que ser agendável ecoando data e hora
// de volta, mesmo com a empresa fora de UTC.
func TestAvailability_SlotsAreBookable(t *testing.T) {
	repo := newBookingFixture("America/Sao_Paulo")
	_, g, d := newFixture()

	day := time.Now().UTC().AddDate(0, 0, 14)
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	slots, err := NewGetAvailability(repo).Execute(context.Background(), domain.AvailabilityInput{
		EnterpriseID:   10,
		ProfessionalID: 4,
		ServiceID:      3,
		Date:           date,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) == 0 {
		t.Fatalf("expected free slots in an empty agenda")
	}

	// Janela 09:00-12:00 UTC = 06:00-09:00 em São Paulo (UTC-3).
	if slots[0].Start != "06:00" {
		t.Fatalf("expected first slot 06:00 local, got %s", slots[0].Start)
	}

	book := NewBookAppointment(repo, g, d)
	ap, _, err := book.Execute(context.Background(), adminOf(10), BookAppointmentInput{
		EnterpriseID:   10,
		ProfessionalID: 4,
		ServiceID:      3,
		ClientID:       7,
		Date:           date.Format("2006-01-02"),
		Time:           slots[0].Start,
	})
	if err != nil {
		t.Fatalf("slot %q listed free was rejected by booking: %v", slots[0].Start, err)
	}
	if ap.StartTime.UTC().Format("15:04") != "09:00" {
		t.Fatalf("expected 06:00 local to persist as 09:00 UTC, got %s", ap.StartTime.UTC().Format("15:04"))
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created appointment, got %d", len(repo.created))
	}
}

func TestAvailability_InactiveProfessionalHidden(t *testing.T) {
	repo := newBookingFixture("UTC")
	repo.professionals[4].Active = false

	day := time.Now().UTC().AddDate(0, 0, 14)
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	_, err := NewGetAvailability(repo).Execute(context.Background(), domain.AvailabilityInput{
		EnterpriseID:   10,
		ProfessionalID: 4,
		ServiceID:      3,
		Date:           date,
	})
	if !httperr.IsBusiness(err, "professional_not_found") {
		t.Fatalf("expected professional_not_found for inactive professional, got %v", err)
	}
}
