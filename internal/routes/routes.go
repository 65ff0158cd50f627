package routes

import (
	"psychcare-server/internal/cache"
	"psychcare-server/internal/config"
	"psychcare-server/internal/handlers"
	"psychcare-server/internal/mailer"
	"psychcare-server/internal/middleware"
	"psychcare-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, slotCache *cache.SlotCache, m *mailer.Mailer, logger zerolog.Logger) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, logger)
	doctorHandler := handlers.NewDoctorHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db, slotCache)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg, slotCache, m, logger)
	callHandler := handlers.NewCallHandler(db, cfg, logger)
	reportHandler := handlers.NewReportHandler(db, cfg, m, logger)
	complaintHandler := handlers.NewComplaintHandler(db)
	chatHandler := handlers.NewChatHandler(db)
	adminHandler := handlers.NewAdminHandler(db, m, logger)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register/patient", authHandler.RegisterPatient)
			authRoutes.POST("/register/doctor", authHandler.RegisterDoctor)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// Public doctor directory
		public.GET("/doctors", doctorHandler.ListDoctors)
		public.GET("/doctors/specializations", doctorHandler.ListSpecializations)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// Records visible to any involved party; authorization in handler
		private.GET("/appointments/:id", appointmentHandler.GetAppointmentByID)
		private.GET("/reports/:id", reportHandler.GetReportByID)

		// Chat (patients and doctors; participant checks in handler)
		chatRoutes := private.Group("/chat")
		{
			chatRoutes.POST("/conversations", middleware.RoleAuthMiddleware(models.RolePatient), chatHandler.StartConversation)
			chatRoutes.GET("/conversations", chatHandler.ListConversations)
			chatRoutes.GET("/conversations/:id/messages", chatHandler.GetMessages)
			chatRoutes.POST("/conversations/:id/messages", chatHandler.SendMessage)
		}

		// Patient routes
		patientRoutes := private.Group("/patient")
		patientRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			patientRoutes.POST("/available-slots", appointmentHandler.GetAvailableSlots)
			patientRoutes.POST("/doctors/:doctorId/book", appointmentHandler.BookAppointment)
			patientRoutes.GET("/appointments", appointmentHandler.GetPatientAppointments)
			patientRoutes.PATCH("/appointments/:id/cancel", appointmentHandler.CancelAppointment)
			patientRoutes.POST("/appointments/:id/join-call", callHandler.JoinCall)
			patientRoutes.POST("/appointments/:id/end-call", callHandler.EndCall)
			patientRoutes.GET("/reports", reportHandler.GetPatientReports)
			patientRoutes.POST("/complaints", complaintHandler.CreateComplaint)
			patientRoutes.GET("/complaints", complaintHandler.GetPatientComplaints)
		}

		// Doctor routes
		doctorRoutes := private.Group("/doctor")
		doctorRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			doctorRoutes.POST("/availability", availabilityHandler.SetAvailability)
			doctorRoutes.GET("/availability", availabilityHandler.ListAvailability)
			doctorRoutes.DELETE("/availability/:id", availabilityHandler.DeleteAvailability)
			doctorRoutes.GET("/appointments", appointmentHandler.GetDoctorAppointments)
			doctorRoutes.PATCH("/appointments/:id/status", appointmentHandler.UpdateAppointmentStatus)
			doctorRoutes.POST("/appointments/:id/join-call", callHandler.JoinCall)
			doctorRoutes.POST("/appointments/:id/end-call", callHandler.EndCall)
			doctorRoutes.POST("/appointments/:id/report", reportHandler.CreateReport)
			doctorRoutes.GET("/reports", reportHandler.GetDoctorReports)
		}

		// Admin routes
		adminRoutes := private.Group("/admin")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/dashboard", adminHandler.Dashboard)
			adminRoutes.GET("/doctors", adminHandler.ListDoctors)
			adminRoutes.GET("/patients", adminHandler.ListPatients)
			adminRoutes.PATCH("/doctors/:id/approve", adminHandler.ApproveDoctor)
			adminRoutes.DELETE("/doctors/:id/reject", adminHandler.RejectDoctor)
			adminRoutes.PATCH("/users/:id/block", adminHandler.BlockUser)
			adminRoutes.DELETE("/users/:id", adminHandler.DeleteUser)
			adminRoutes.GET("/appointments", adminHandler.ListAppointments)
			adminRoutes.GET("/complaints", complaintHandler.ListComplaints)
			adminRoutes.PATCH("/complaints/:id", complaintHandler.UpdateComplaint)
			adminRoutes.GET("/recordings", adminHandler.ListRecordings)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
