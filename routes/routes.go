package routes

import (
	"time"

	"amedick/config"
	"amedick/handlers"
	"amedick/middleware"
	"amedick/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers patient endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/user")
	{
		api.POST("/signup", hb.SignupHandler)
		api.POST("/send-otp", hb.SendOTPHandler)
		api.POST("/verify-otp", hb.VerifyOTPHandler)
		api.POST("/login", hb.UserLoginHandler)

		profile := api.Group("/profile")
		profile.Use(hb.Authenticate, middleware.Require(models.CapManageProfile), middleware.RequireRole(models.RolePatient))
		profile.GET("", hb.GetUserProfileHandler)
		profile.PUT("", hb.UpdateUserProfileHandler)
	}

	r.POST("/auth/logout", hb.Authenticate, hb.LogoutHandler)
}

// RegisterDoctorRoutes registers the public doctor endpoints and the doctor's own workspace.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	public := r.Group("/doctor")
	{
		public.POST("/register", hb.RegisterDoctorHandler)
		public.POST("/login", hb.DoctorLoginHandler)
		public.GET("/appointments/doctors", hb.ListDoctorsHandler)
	}
	r.GET("/available/appointments/slots", hb.AvailableSlotsHandler)

	api := r.Group("/api/doctor")
	api.Use(hb.Authenticate)
	{
		profile := api.Group("", middleware.Require(models.CapManageProfile), middleware.RequireRole(models.RoleDoctor))
		profile.GET("/profile", hb.GetDoctorProfileHandler)
		profile.PATCH("/profile", hb.UpdateDoctorProfileHandler)

		availability := api.Group("", middleware.Require(models.CapManageAvailability))
		availability.GET("/availability", hb.GetAvailabilityHandler)
		availability.POST("/availability", hb.UpsertAvailabilityHandler)
		availability.GET("/availability/ranges", hb.GetAvailabilityRangesHandler)
		availability.DELETE("/availability/:day", hb.DeleteAvailabilityHandler)
		availability.DELETE("/availability/:day/range", hb.DeleteAvailabilityRangeHandler)
		availability.GET("/available-slots", hb.OwnAvailableSlotsHandler)

		appointments := api.Group("", middleware.Require(models.CapManageAppointments), middleware.RequireRole(models.RoleDoctor))
		appointments.GET("/dashboard", hb.DashboardHandler)
		appointments.GET("/appointments", hb.ListDoctorAppointments)
		appointments.PATCH("/appointment/:id/status", hb.UpdateAppointmentStatus)
		appointments.DELETE("/appointment/:id", hb.DeleteAppointmentHandler)
	}
}

// RegisterAppointmentRoutes registers booking and the per-account appointment lists.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/appointment")
	api.Use(hb.Authenticate)
	{
		api.POST("", middleware.Require(models.CapBookAppointment), hb.BookHandler)
		api.GET("/patient/:patientId", middleware.Require(models.CapViewOwnAppointments), hb.PatientAppointmentsHandler)
		api.GET("/doctor/:doctorId", middleware.Require(models.CapManageAppointments), hb.DoctorAppointmentsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/signup", hb.AdminSignupHandler)
		adminGroup.POST("/login", hb.AdminLoginHandler)

		verify := adminGroup.Group("", hb.Authenticate, middleware.Require(models.CapVerifyDoctors))
		verify.GET("/doctors/pending", hb.PendingDoctorsHandler)
		verify.PATCH("/doctor/approve/:id", hb.ApproveDoctorHandler)
		verify.PATCH("/doctor/reject/:id", hb.RejectDoctorHandler)
	}
}

// RegisterAIRoutes registers AI endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	api.POST("/autocomplete", hb.AutocompleteHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := config.AllowedOrigins()
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if hb.RateLimit != nil {
		r.Use(hb.RateLimit)
	}

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterAIRoutes(r, hb)
}
