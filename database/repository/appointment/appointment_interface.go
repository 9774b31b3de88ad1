package appointmentRepo

import (
	"context"

	"amedick/models"
)

// AppointmentRepository defines methods for appointment data access. The store
// holds at most one active appointment per (doctorId, date, time).
type AppointmentRepository interface {
	// Create inserts the appointment; a held slot yields database.ErrDuplicate.
	Create(ctx context.Context, appt *models.Appointment) error
	// BookedTimes lists the times held by active appointments of a doctor on a date.
	BookedTimes(ctx context.Context, doctorID, date string) ([]string, error)
	// ListByDoctor lists a doctor's appointments sorted by date and time; status "" means all.
	ListByDoctor(ctx context.Context, doctorID, status string) ([]models.Appointment, error)
	// ListByPatient lists a patient's appointments sorted by date and time.
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	// ListOnDate lists a doctor's appointments on one date sorted by time.
	ListOnDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	// ListAfter lists up to limit appointments strictly after date.
	ListAfter(ctx context.Context, doctorID, date string, limit int64) ([]models.Appointment, error)
	// GetForDoctor returns the doctor's appointment, or nil when it does not exist.
	GetForDoctor(ctx context.Context, id, doctorID string) (*models.Appointment, error)
	// TransitionStatus moves the appointment to status only if its current
	// status is one of from. It returns nil, nil when no document matched.
	TransitionStatus(ctx context.Context, id, doctorID string, from []string, to string) (*models.Appointment, error)
	// Delete hard-deletes the doctor's appointment, returning what was removed or nil.
	Delete(ctx context.Context, id, doctorID string) (*models.Appointment, error)
	EnsureIndexes(ctx context.Context) error
}
