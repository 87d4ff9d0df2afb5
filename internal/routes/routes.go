package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/igenda-app/igenda-api/internal/audit"
	"github.com/igenda-app/igenda-api/internal/billing"
	"github.com/igenda-app/igenda-api/internal/config"
	"github.com/igenda-app/igenda-api/internal/guard"
	"github.com/igenda-app/igenda-api/internal/handlers"
	infraRepo "github.com/igenda-app/igenda-api/internal/infra/repository"
	"github.com/igenda-app/igenda-api/internal/middleware"
	"github.com/igenda-app/igenda-api/internal/session"
	"github.com/igenda-app/igenda-api/internal/storage"
	ucAppointment "github.com/igenda-app/igenda-api/internal/usecase/appointment"
	"github.com/igenda-app/igenda-api/internal/verification"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	sessions := session.NewStore(rdb, cfg.JWTSecret)
	g := guard.New(sessions)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	codes := verification.NewCache(verification.NewRedisStore(rdb))
	var notifier verification.Notifier = verification.LogNotifier{}

	avatars := storage.NewAvatarStore(cfg)

	gateway, err := billing.NewMercadoPagoGateway(cfg.MPAccessToken)
	if err != nil {
		log.Fatalf("mercadopago: %v", err)
	}
	canceler := billing.NewCanceler(billing.NewGormEnterpriseStore(db), gateway)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	bookAppointmentUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		g,
		auditDispatcher,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		g,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		g,
		auditDispatcher,
	)

	noShowAppointmentUC := ucAppointment.NewMarkNoShowAppointment(
		appointmentRepo,
		g,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listPendingAppointmentsUC := ucAppointment.NewListPendingAppointments(
		appointmentRepo,
	)

	getAvailabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, sessions)
	meHandler := handlers.NewMeHandler(db)
	enterpriseHandler := handlers.NewEnterpriseHandler(db, avatars)

	professionalHandler := handlers.NewProfessionalHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		noShowAppointmentUC,
		listAppointmentsByDateUC,
		listPendingAppointmentsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	billingHandler := handlers.NewBillingHandler(db, gateway, canceler)

	publicHandler := handlers.NewPublicHandler(db, getAvailabilityUC, bookAppointmentUC, codes, notifier, sessions)
	clientPortalHandler := handlers.NewClientPortalHandler(appointmentRepo, sessions, cancelAppointmentUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (por slug)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug", publicHandler.GetProfile)
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/professionals", publicHandler.ListProfessionals)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)

			publicAPI.POST("/:slug/verification", publicHandler.RequestVerification)
			publicAPI.POST("/:slug/verification/confirm", publicHandler.ConfirmVerification)

			// Agendar exige sessão de cliente aberta via verificação.
			publicAPI.POST("/:slug/appointments",
				middleware.ClientAuthMiddleware(g),
				publicHandler.BookAppointment,
			)
		}

		// ------------------------------
		// AUTH (dashboard)
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// WEBHOOKS
		// ------------------------------
		api.POST("/webhooks/mercadopago", billingHandler.Webhook)

		// ------------------------------
		// API PRIVADA (admin)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(g))
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/enterprise", enterpriseHandler.GetMeEnterprise)
			secured.PATCH("/me/enterprise", enterpriseHandler.UpdateMeEnterprise)
			secured.POST("/me/enterprise/avatar", enterpriseHandler.UploadAvatar)

			secured.GET("/me/professionals", professionalHandler.List)
			secured.POST("/me/professionals", professionalHandler.Create)
			secured.PATCH("/me/professionals/:id", professionalHandler.Update)
			secured.DELETE("/me/professionals/:id", professionalHandler.Delete)
			secured.GET("/me/professionals/:id/availability", professionalHandler.GetAvailability)
			secured.PUT("/me/professionals/:id/availability", professionalHandler.PutAvailability)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/clients", clientHandler.List)
			secured.DELETE("/me/clients/:id", clientHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/pending", appointmentHandler.ListPending)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)

			secured.GET("/me/subscription", billingHandler.GetSubscription)
			secured.POST("/me/subscription/cancel", billingHandler.CancelSubscription)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// ÁREA DO CLIENTE FINAL
		// ------------------------------
		clientArea := api.Group("/client")
		clientArea.Use(middleware.ClientAuthMiddleware(g))
		{
			clientArea.GET("/me/appointments", clientPortalHandler.MyAppointments)
			clientArea.PATCH("/appointments/:id/cancel", clientPortalHandler.Cancel)
			clientArea.POST("/signout", clientPortalHandler.SignOut)
		}
	}
}
