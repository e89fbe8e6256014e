package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/config"
	dbpkg "github.com/sehatsetu/sehatsetu-api/internal/db"
	"github.com/sehatsetu/sehatsetu-api/internal/handlers"
	infraRepo "github.com/sehatsetu/sehatsetu-api/internal/infra/repository"
	"github.com/sehatsetu/sehatsetu-api/internal/middleware"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
	"github.com/sehatsetu/sehatsetu-api/internal/storage"
	"github.com/sehatsetu/sehatsetu-api/internal/timezone"
	ucAccount "github.com/sehatsetu/sehatsetu-api/internal/usecase/account"
	ucAppointment "github.com/sehatsetu/sehatsetu-api/internal/usecase/appointment"
	ucPrescription "github.com/sehatsetu/sehatsetu-api/internal/usecase/prescription"
	ucProfile "github.com/sehatsetu/sehatsetu-api/internal/usecase/profile"
	ucStats "github.com/sehatsetu/sehatsetu-api/internal/usecase/stats"
	ucStock "github.com/sehatsetu/sehatsetu-api/internal/usecase/stock"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	Config    *config.Config
	Log       zerolog.Logger
	DB        *gorm.DB
	Cache     cache.Cache
	Store     storage.ObjectStore
	Assistant handlers.Assistant
	Verifier  middleware.TokenVerifier
	Audit     *audit.Dispatcher
	AuditLogs *audit.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	tz := cfg.ClinicTimezone

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID, "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	// ======================================================
	// REPOSITORIES
	// ======================================================
	accountRepo := infraRepo.NewAccountGormRepository(d.DB)
	profileRepo := infraRepo.NewProfileGormRepository(d.DB)
	directoryRepo := infraRepo.NewDirectoryGormRepository(d.DB)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	prescriptionRepo := infraRepo.NewPrescriptionGormRepository(d.DB)
	stockRepo := infraRepo.NewStockGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	getPrescriptionUC := ucPrescription.NewGetPrescription(prescriptionRepo)
	listStockUC := ucStock.NewListStock(stockRepo, d.Cache, cfg.CacheTTL)

	doctorUC := handlers.DoctorUseCases{
		Stats:        ucStats.NewGetDoctorStats(appointmentRepo, d.Cache, cfg.CacheTTL, tz),
		Appointments: ucAppointment.NewListAppointments(appointmentRepo),
		UpdateStatus: ucAppointment.NewUpdateAppointmentStatus(appointmentRepo, d.Cache, d.Audit, tz),
		History:      ucAppointment.NewListHistory(appointmentRepo),
		Prescribe: ucPrescription.NewCreatePrescription(
			prescriptionRepo,
			appointmentRepo,
			directoryRepo,
			d.Cache,
			d.Audit,
		),
		Prescription: getPrescriptionUC,
		Download:     ucPrescription.NewDownloadPrescription(getPrescriptionUC, tz),
		Profiles:     ucProfile.NewDoctorProfiles(profileRepo, accountRepo, d.Audit),
		LinkedStock:  ucStock.NewListLinkedStock(listStockUC, directoryRepo),
	}

	pharmacyUC := handlers.PharmacyUseCases{
		Stats:         ucStats.NewGetPharmacyStats(stockRepo, prescriptionRepo, d.Cache, cfg.CacheTTL),
		Stock:         listStockUC,
		Inventory:     ucStock.NewInventory(stockRepo, d.Cache, d.Audit),
		OfflineOrder:  ucStock.NewProcessOfflineOrder(stockRepo, d.Cache, d.Audit),
		Orders:        ucStock.NewListOrders(stockRepo),
		Prescriptions: ucPrescription.NewListForPharmacy(prescriptionRepo),
		UpdateStatus:  ucPrescription.NewUpdateStatus(prescriptionRepo, d.Cache, d.Audit, tz),
		Profiles:      ucProfile.NewPharmacyProfiles(profileRepo, d.Audit),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(ucAccount.NewSyncUser(accountRepo, d.Audit), d.Log)
	doctorHandler := handlers.NewDoctorHandler(doctorUC, timezone.Location(tz), d.Log)
	pharmacyHandler := handlers.NewPharmacyHandler(pharmacyUC, d.Log)
	aiHandler := handlers.NewAIHandler(d.Assistant, d.Audit, cfg.MaxUploadBytes, d.Log)
	uploadHandler := handlers.NewUploadHandler(d.Store, cfg.MaxUploadBytes, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, d.Log)
	healthHandler := handlers.NewHealthHandler(dbpkg.NewPinger(d.DB), d.Cache)

	r.GET("/health", healthHandler.Check)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.Verifier))

	// The first sync creates the local user, so it cannot require one.
	api.POST("/auth/sync", authHandler.Sync)

	authed := api.Group("")
	authed.Use(middleware.LoadUser(accountRepo))

	authed.GET("/me/audit-logs", auditLogsHandler.List)
	authed.POST("/uploads/profile-picture", uploadHandler.ProfilePicture)
	authed.GET("/pharmacy/all", pharmacyHandler.All)

	// ======================================================
	// DOCTOR
	// ======================================================
	doctor := authed.Group("/doctor")
	doctor.Use(middleware.RequireRole(models.RoleDoctor))
	{
		doctor.GET("/stats", doctorHandler.Stats)

		doctor.GET("/appointments", doctorHandler.ListAppointments)
		doctor.PUT("/appointments/:id", doctorHandler.UpdateAppointmentStatus)
		doctor.GET("/history", doctorHandler.History)

		doctor.POST("/prescriptions", doctorHandler.CreatePrescription)
		doctor.GET("/prescriptions/:id", doctorHandler.GetPrescription)
		doctor.GET("/prescriptions/:id/download", doctorHandler.DownloadPrescription)

		doctor.GET("/profile", doctorHandler.GetProfile)
		doctor.PUT("/profile", doctorHandler.UpdateProfile)

		doctor.GET("/pharmacy/:id/stock", doctorHandler.PharmacyStock)
	}

	// ======================================================
	// PHARMACY
	// ======================================================
	pharmacyOwner := authed.Group("/pharmacy")
	pharmacyOwner.Use(middleware.RequireRole(models.RolePharmacy))
	{
		pharmacyOwner.GET("/profile/status", pharmacyHandler.ProfileStatus)
		pharmacyOwner.POST("/profile", pharmacyHandler.CreateProfile)
	}

	pharmacy := pharmacyOwner.Group("")
	pharmacy.Use(middleware.RequirePharmacy(profileRepo))
	{
		pharmacy.GET("/stats", pharmacyHandler.Stats)

		pharmacy.GET("/profile", pharmacyHandler.GetProfile)
		pharmacy.PUT("/profile", pharmacyHandler.UpdateProfile)

		pharmacy.GET("/stock", pharmacyHandler.ListStock)
		pharmacy.POST("/stock", pharmacyHandler.AddStock)
		pharmacy.PUT("/stock/:id", pharmacyHandler.UpdateStock)
		pharmacy.PATCH("/stock/:id/adjust", pharmacyHandler.AdjustStock)
		pharmacy.DELETE("/stock/:id", pharmacyHandler.DeleteStock)

		pharmacy.GET("/prescriptions", pharmacyHandler.ListPrescriptions)
		pharmacy.PUT("/prescriptions/:id", pharmacyHandler.UpdatePrescriptionStatus)

		pharmacy.POST("/process-offline-order", pharmacyHandler.ProcessOfflineOrder)
		pharmacy.GET("/orders", pharmacyHandler.ListOrders)
	}

	// ======================================================
	// AI
	// ======================================================
	authed.POST("/ai/chat", middleware.RequireRole(models.RoleDoctor), aiHandler.Chat)
	authed.POST("/ai/digitize",
		middleware.RequireRole(models.RolePharmacy),
		middleware.RequirePharmacy(profileRepo),
		aiHandler.Digitize,
	)
}
