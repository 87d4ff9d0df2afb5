package appointment

import (
	"context"
	"time"

	"github.com/igenda-app/igenda-api/internal/models"
)

type Repository interface {
	// -------- Enterprise --------
	GetEnterpriseByID(
		ctx context.Context,
		id uint,
	) (*models.Enterprise, error)

	GetEnterpriseBySlug(
		ctx context.Context,
		slug string,
	) (*models.Enterprise, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		enterpriseID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Professional --------
	GetProfessional(
		ctx context.Context,
		enterpriseID uint,
		professionalID uint,
	) (*models.Professional, error)

	GetAvailabilityWindow(
		ctx context.Context,
		professionalID uint,
	) (*models.AvailabilityWindow, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		enterpriseID uint,
		clientID uint,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		enterpriseID uint,
		name string,
		phone string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listings --------
	ListAppointmentsForDay(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		enterpriseID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListPendingAppointments(
		ctx context.Context,
		enterpriseID uint,
	) ([]models.Appointment, error)

	ListAppointmentsForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)
}
