package booking

import (
	"context"
	"time"

	appointmentRepo "amedick/database/repository/appointment"
	doctorRepo "amedick/database/repository/doctor"
	userRepo "amedick/database/repository/user"
	"amedick/models"
	"amedick/services/notification"
)

// BookingService covers slot queries, admission and the appointment lifecycle.
type BookingService interface {
	// AvailableSlots returns the free slots of an approved doctor on date.
	AvailableSlots(ctx context.Context, doctorID, date string) ([]string, error)
	// Book admits a slot request for patientID.
	Book(ctx context.Context, patientID string, req models.BookingRequest) (*models.Appointment, error)

	ListForDoctor(ctx context.Context, doctorID, status string) ([]models.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.PatientAppointment, error)
	UpdateStatus(ctx context.Context, doctorID, appointmentID, status string) (*models.Appointment, error)
	Delete(ctx context.Context, doctorID, appointmentID string) (*models.Appointment, error)
	Dashboard(ctx context.Context, doctorID string) (*models.Dashboard, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	Mailer       notification.Mailer
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
