package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/igenda-app/igenda-api/internal/audit"
	domain "github.com/igenda-app/igenda-api/internal/domain/appointment"
	"github.com/igenda-app/igenda-api/internal/guard"
	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/models"
	"github.com/igenda-app/igenda-api/internal/session"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type fakeRepo struct {
	enterprises   map[uint]*models.Enterprise
	services      map[uint]*models.Service
	professionals map[uint]*models.Professional
	windows       map[uint]*models.AvailabilityWindow
	clients       map[uint]*models.Client
	appointments  map[uint]*models.Appointment
	updated       []*models.Appointment
	created       []*models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		enterprises:   make(map[uint]*models.Enterprise),
		services:      make(map[uint]*models.Service),
		professionals: make(map[uint]*models.Professional),
		windows:       make(map[uint]*models.AvailabilityWindow),
		clients:       make(map[uint]*models.Client),
		appointments:  make(map[uint]*models.Appointment),
	}
}

var errNotFound = errors.New("record not found")

func (f *fakeRepo) GetEnterpriseByID(_ context.Context, id uint) (*models.Enterprise, error) {
	if e, ok := f.enterprises[id]; ok {
		return e, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetEnterpriseBySlug(_ context.Context, slug string) (*models.Enterprise, error) {
	for _, e := range f.enterprises {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetService(_ context.Context, enterpriseID, serviceID uint) (*models.Service, error) {
	if svc, ok := f.services[serviceID]; ok && svc.EnterpriseID == enterpriseID {
		return svc, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetProfessional(_ context.Context, enterpriseID, professionalID uint) (*models.Professional, error) {
	if pro, ok := f.professionals[professionalID]; ok && pro.EnterpriseID == enterpriseID {
		return pro, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetAvailabilityWindow(_ context.Context, professionalID uint) (*models.AvailabilityWindow, error) {
	if w, ok := f.windows[professionalID]; ok {
		return w, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetClient(_ context.Context, enterpriseID, clientID uint) (*models.Client, error) {
	if c, ok := f.clients[clientID]; ok && c.EnterpriseID == enterpriseID {
		return c, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, _ uint, _, _ string) (*models.Client, error) {
	return nil, errNotFound
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = uint(len(f.appointments) + len(f.created) + 1)
	f.created = append(f.created, ap)
	return nil
}

func (f *fakeRepo) AssertNoTimeConflict(_ context.Context, _ uint, _, _ time.Time) error {
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	if ap, ok := f.appointments[id]; ok {
		cp := *ap
		return &cp, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.appointments[ap.ID] = ap
	f.updated = append(f.updated, ap)
	return nil
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, _ uint, _, _ time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, _ uint, _, _ time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeRepo) ListPendingAppointments(_ context.Context, _ uint) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeRepo) ListAppointmentsForClient(_ context.Context, _ uint) ([]models.Appointment, error) {
	return nil, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

type staticResolver struct{}

func (staticResolver) Resolve(_ context.Context, _ session.Kind, _ string) (session.Principal, error) {
	return session.Principal{}, httperr.ErrBusiness(httperr.CodeUnauthorized)
}

type nopSink struct{}

func (nopSink) Log(uint, *uint, string, string, *uint, any) error { return nil }

func newFixture() (*fakeRepo, *guard.Guard, *audit.Dispatcher) {
	repo := newFakeRepo()
	repo.enterprises[10] = &models.Enterprise{ID: 10, Slug: "studio-a", Timezone: "UTC"}
	repo.appointments[1] = &models.Appointment{
		ID:           1,
		EnterpriseID: 10,
		ClientID:     7,
		Status:       string(domain.StatusScheduled),
	}

	return repo, guard.New(staticResolver{}), audit.NewDispatcher(nopSink{})
}

func adminOf(enterpriseID uint) session.Principal {
	return session.Principal{Kind: session.KindAdmin, UserID: 1, EnterpriseID: enterpriseID, Role: "owner"}
}

// --------------------------------------------------
// Confirm
// --------------------------------------------------

func TestConfirm_Succeeds(t *testing.T) {
	repo, g, d := newFixture()
	uc := NewConfirmAppointment(repo, g, d)

	ap, keys, err := uc.Execute(context.Background(), adminOf(10), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(domain.StatusConfirmed) {
		t.Fatalf("expected confirmed, got %s", ap.Status)
	}
	if len(keys) == 0 {
		t.Fatalf("expected revalidation keys on mutation")
	}
	if len(repo.updated) != 1 {
		t.Fatalf("expected one persisted update, got %d", len(repo.updated))
	}
}

func TestConfirm_CrossTenantForbidden(t *testing.T) {
	repo, g, d := newFixture()
	uc := NewConfirmAppointment(repo, g, d)

	_, _, err := uc.Execute(context.Background(), adminOf(99), 1)
	if !httperr.IsBusiness(err, httperr.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(repo.updated) != 0 {
		t.Fatalf("forbidden request must not persist anything")
	}
}

func TestConfirm_AlreadyConfirmed(t *testing.T) {
	repo, g, d := newFixture()
	repo.appointments[1].Status = string(domain.StatusConfirmed)
	uc := NewConfirmAppointment(repo, g, d)

	_, _, err := uc.Execute(context.Background(), adminOf(10), 1)
	if !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
}

func TestConfirm_NotFound(t *testing.T) {
	repo, g, d := newFixture()
	uc := NewConfirmAppointment(repo, g, d)

	_, _, err := uc.Execute(context.Background(), adminOf(10), 999)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

// --------------------------------------------------
// Cancel
// --------------------------------------------------

func TestCancel_FromConfirmed(t *testing.T) {
	repo, g, d := newFixture()
	repo.appointments[1].Status = string(domain.StatusConfirmed)
	uc := NewCancelAppointment(repo, g, d)

	ap, _, err := uc.Execute(context.Background(), adminOf(10), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(domain.StatusCanceled) {
		t.Fatalf("expected canceled, got %s", ap.Status)
	}
}

func TestCancel_ByOwnClient(t *testing.T) {
	repo, g, d := newFixture()
	uc := NewCancelAppointment(repo, g, d)

	p := session.Principal{Kind: session.KindClient, ClientID: 7, EnterpriseID: 10}
	ap, _, err := uc.Execute(context.Background(), p, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(domain.StatusCanceled) {
		t.Fatalf("expected canceled, got %s", ap.Status)
	}
}

func TestCancel_ByOtherClientForbidden(t *testing.T) {
	repo, g, d := newFixture()
	uc := NewCancelAppointment(repo, g, d)

	p := session.Principal{Kind: session.KindClient, ClientID: 8, EnterpriseID: 10}
	_, _, err := uc.Execute(context.Background(), p, 1)
	if !httperr.IsBusiness(err, httperr.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCancel_TerminalRejected(t *testing.T) {
	repo, g, d := newFixture()
	repo.appointments[1].Status = string(domain.StatusNoShow)
	uc := NewCancelAppointment(repo, g, d)

	_, _, err := uc.Execute(context.Background(), adminOf(10), 1)
	if !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
}

// --------------------------------------------------
// No-show
// --------------------------------------------------

func TestMarkNoShow_Succeeds(t *testing.T) {
	repo, g, d := newFixture()
	uc := NewMarkNoShowAppointment(repo, g, d)

	ap, _, err := uc.Execute(context.Background(), adminOf(10), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(domain.StatusNoShow) {
		t.Fatalf("expected no_show, got %s", ap.Status)
	}
	if ap.NoShowAt == nil {
		t.Fatalf("expected no_show_at set")
	}
}

func TestMarkNoShow_CrossTenantForbidden(t *testing.T) {
	repo, g, d := newFixture()
	uc := NewMarkNoShowAppointment(repo, g, d)

	_, _, err := uc.Execute(context.Background(), adminOf(11), 1)
	if !httperr.IsBusiness(err, httperr.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
