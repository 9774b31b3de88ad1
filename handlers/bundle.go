package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers plus the auth middleware the routes need.
type HandlerBundle struct {
	// Authenticate resolves the caller's principal; Require gates are layered on top per route.
	Authenticate gin.HandlerFunc
	// RateLimit throttles every route per client IP.
	RateLimit gin.HandlerFunc

	// Patient endpoints
	SignupHandler            gin.HandlerFunc
	SendOTPHandler           gin.HandlerFunc
	VerifyOTPHandler         gin.HandlerFunc
	UserLoginHandler         gin.HandlerFunc
	GetUserProfileHandler    gin.HandlerFunc
	UpdateUserProfileHandler gin.HandlerFunc
	LogoutHandler            gin.HandlerFunc

	// Doctor endpoints
	RegisterDoctorHandler          gin.HandlerFunc
	DoctorLoginHandler             gin.HandlerFunc
	ListDoctorsHandler             gin.HandlerFunc
	GetDoctorProfileHandler        gin.HandlerFunc
	UpdateDoctorProfileHandler     gin.HandlerFunc
	GetAvailabilityHandler         gin.HandlerFunc
	UpsertAvailabilityHandler      gin.HandlerFunc
	GetAvailabilityRangesHandler   gin.HandlerFunc
	DeleteAvailabilityHandler      gin.HandlerFunc
	DeleteAvailabilityRangeHandler gin.HandlerFunc

	// Appointment endpoints
	AvailableSlotsHandler      gin.HandlerFunc
	OwnAvailableSlotsHandler   gin.HandlerFunc
	BookHandler                gin.HandlerFunc
	PatientAppointmentsHandler gin.HandlerFunc
	DoctorAppointmentsHandler  gin.HandlerFunc
	ListDoctorAppointments     gin.HandlerFunc
	DashboardHandler           gin.HandlerFunc
	UpdateAppointmentStatus    gin.HandlerFunc
	DeleteAppointmentHandler   gin.HandlerFunc

	// Admin endpoints
	AdminSignupHandler    gin.HandlerFunc
	AdminLoginHandler     gin.HandlerFunc
	PendingDoctorsHandler gin.HandlerFunc
	ApproveDoctorHandler  gin.HandlerFunc
	RejectDoctorHandler   gin.HandlerFunc

	// AI endpoints
	AutocompleteHandler gin.HandlerFunc
}

// NewHandlerBundle wires every endpoint of the given handlers into a bundle.
func NewHandlerBundle(authenticate, rateLimit gin.HandlerFunc, users *UserHandler, doctors *DoctorHandler,
	appointments *AppointmentHandler, admins *AdminHandler, ai *AIHandler, auth *AuthHandler) *HandlerBundle {
	return &HandlerBundle{
		Authenticate: authenticate,
		RateLimit:    rateLimit,

		SignupHandler:            users.SignupHandler,
		SendOTPHandler:           users.SendOTPHandler,
		VerifyOTPHandler:         users.VerifyOTPHandler,
		UserLoginHandler:         users.LoginHandler,
		GetUserProfileHandler:    users.GetProfileHandler,
		UpdateUserProfileHandler: users.UpdateProfileHandler,
		LogoutHandler:            auth.LogoutHandler,

		RegisterDoctorHandler:          doctors.RegisterHandler,
		DoctorLoginHandler:             doctors.LoginHandler,
		ListDoctorsHandler:             doctors.ListDoctorsHandler,
		GetDoctorProfileHandler:        doctors.GetProfileHandler,
		UpdateDoctorProfileHandler:     doctors.UpdateProfileHandler,
		GetAvailabilityHandler:         doctors.GetAvailabilityHandler,
		UpsertAvailabilityHandler:      doctors.UpsertAvailabilityHandler,
		GetAvailabilityRangesHandler:   doctors.GetAvailabilityRangesHandler,
		DeleteAvailabilityHandler:      doctors.DeleteAvailabilityHandler,
		DeleteAvailabilityRangeHandler: doctors.DeleteAvailabilityRangeHandler,

		AvailableSlotsHandler:      appointments.AvailableSlotsHandler,
		OwnAvailableSlotsHandler:   appointments.OwnAvailableSlotsHandler,
		BookHandler:                appointments.BookHandler,
		PatientAppointmentsHandler: appointments.PatientAppointmentsHandler,
		DoctorAppointmentsHandler:  appointments.DoctorAppointmentsHandler,
		ListDoctorAppointments:     appointments.ListOwnHandler,
		DashboardHandler:           appointments.DashboardHandler,
		UpdateAppointmentStatus:    appointments.UpdateStatusHandler,
		DeleteAppointmentHandler:   appointments.DeleteHandler,

		AdminSignupHandler:    admins.SignupHandler,
		AdminLoginHandler:     admins.LoginHandler,
		PendingDoctorsHandler: admins.PendingDoctorsHandler,
		ApproveDoctorHandler:  admins.ApproveDoctorHandler,
		RejectDoctorHandler:   admins.RejectDoctorHandler,

		AutocompleteHandler: ai.AutocompleteHandler,
	}
}
