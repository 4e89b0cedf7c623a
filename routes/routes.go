package routes

import (
	"net/http"

	"MedicApp/cache"
	"MedicApp/config"
	"MedicApp/controllers"
	"MedicApp/database"
	"MedicApp/handlers"
	"MedicApp/logger"
	"MedicApp/middlewares"
	"MedicApp/models"
	"MedicApp/repositories"
	"MedicApp/services"
	"MedicApp/session"
	"MedicApp/utils"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cfg *config.AppConfig, log *logger.Logger, backend database.Backend, store cache.Store, tokens *utils.TokenMaker) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.SecurityHeaders())
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Create and apply CORS middleware configuration
	router.Use(middlewares.CorsMiddleware(middlewares.DefaultCorsConfig(cfg.AllowedOrigins)))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimitPerSec,
		Burst:             cfg.RateLimitBurst,
	}, log))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware(log))

	// Initialize repositories, services, and handlers
	userRepo := repositories.NewUserRepository(backend)
	doctorRepo := repositories.NewDoctorRepository(backend, store, cfg.CacheTTL, log)
	patientRepo := repositories.NewPatientRepository(backend)
	appointmentRepo := repositories.NewAppointmentRepository(backend)
	blogRepo := repositories.NewBlogRepository(backend)
	notificationRepo := repositories.NewNotificationRepository(backend)

	roleService := services.NewRoleService(userRepo, doctorRepo, patientRepo)
	authService := services.NewAuthService(userRepo, doctorRepo, patientRepo, store, log)
	appointmentService := services.NewAppointmentService(appointmentRepo, doctorRepo)
	dashboardService := services.NewDashboardService(appointmentRepo)

	guards := controllers.Guards{
		Device:  middlewares.DeviceAuthMiddleware(tokens, session.NewManager(store), log),
		Session: middlewares.SessionRequired(roleService, log),
		Doctor:  middlewares.RoleAuthMiddleware(models.RoleDoctor, log),
		Patient: middlewares.RoleAuthMiddleware(models.RolePatient, log),
	}

	// Register routes
	controllers.SetupRootRoute(router)

	authController := controllers.NewAuthController(handlers.NewAuthHandler(authService, tokens, log))
	authController.RegisterRoutes(router, middlewares.ValidateBearerToken(cfg.GetBearerToken(), log), guards)

	controllers.SetupClinicRoutes(router, guards, controllers.ClinicHandlers{
		Profile:      handlers.NewProfileHandler(services.NewProfileService(roleService, doctorRepo, patientRepo), log),
		Doctor:       handlers.NewDoctorHandler(appointmentService, dashboardService, log),
		Patient:      handlers.NewPatientHandler(dashboardService, log),
		Appointment:  handlers.NewAppointmentHandler(appointmentService, log),
		Blog:         handlers.NewBlogHandler(services.NewBlogService(blogRepo), log),
		Notification: handlers.NewNotificationHandler(services.NewNotificationService(notificationRepo), log),
	})

	return router
}
