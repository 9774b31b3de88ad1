package booking

import (
	"context"
	"fmt"

	"amedick/models"
	"amedick/services/notification"
	"amedick/utils"

	"go.uber.org/zap"
)

// allowedFrom lists, for each target status, the statuses it may be reached from.
var allowedFrom = map[string][]string{
	models.StatusAccepted:  {models.StatusBooked},
	models.StatusCancelled: {models.StatusBooked, models.StatusAccepted},
	models.StatusCompleted: {models.StatusBooked, models.StatusAccepted},
}

const upcomingLimit = 10

func (s *DefaultBookingService) ListForDoctor(ctx context.Context, doctorID, status string) ([]models.Appointment, error) {
	if status != "" && status != models.StatusBooked {
		if _, ok := allowedFrom[status]; !ok {
			return nil, ErrInvalidStatus
		}
	}
	return s.Appointments.ListByDoctor(ctx, doctorID, status)
}

// ListForPatient returns the patient's appointments with doctor details attached.
func (s *DefaultBookingService) ListForPatient(ctx context.Context, patientID string) ([]models.PatientAppointment, error) {
	appts, err := s.Appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	doctors := map[string]*models.DoctorSummary{}
	out := make([]models.PatientAppointment, 0, len(appts))
	for _, a := range appts {
		summary, seen := doctors[a.DoctorID]
		if !seen {
			d, err := s.Doctors.GetByID(ctx, a.DoctorID)
			if err != nil {
				return nil, err
			}
			if d != nil {
				summary = &models.DoctorSummary{ID: d.ID, Name: d.Name, Specialization: d.Specialization}
			}
			doctors[a.DoctorID] = summary
		}
		out = append(out, models.PatientAppointment{Appointment: a, Doctor: summary})
	}
	return out, nil
}

// UpdateStatus applies a lifecycle transition as one conditional write.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, doctorID, appointmentID, status string) (*models.Appointment, error) {
	from, ok := allowedFrom[status]
	if !ok {
		return nil, ErrInvalidStatus
	}

	updated, err := s.Appointments.TransitionStatus(ctx, appointmentID, doctorID, from, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	if updated == nil {
		existing, err := s.Appointments.GetForDoctor(ctx, appointmentID, doctorID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrAppointmentMissing
		}
		return nil, ErrInvalidTransition
	}

	s.notifyStatus(ctx, updated)
	return updated, nil
}

func (s *DefaultBookingService) notifyStatus(ctx context.Context, appt *models.Appointment) {
	if s.Mailer == nil || s.Users == nil {
		return
	}
	patient, err := s.Users.GetByID(ctx, appt.PatientID)
	if err != nil || patient == nil {
		return
	}
	if err := s.Mailer.Send(ctx, notification.StatusChangedMail(patient.Email, patient.Name, appt)); err != nil {
		utils.GetLogger().Warn("Failed to queue status mail", zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}

// Delete hard-deletes one of the doctor's appointments.
func (s *DefaultBookingService) Delete(ctx context.Context, doctorID, appointmentID string) (*models.Appointment, error) {
	deleted, err := s.Appointments.Delete(ctx, appointmentID, doctorID)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, ErrAppointmentMissing
	}
	return deleted, nil
}

// Dashboard lists today's appointments and the next upcoming ones.
func (s *DefaultBookingService) Dashboard(ctx context.Context, doctorID string) (*models.Dashboard, error) {
	today := s.now().Format("2006-01-02")

	todays, err := s.Appointments.ListOnDate(ctx, doctorID, today)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.Appointments.ListAfter(ctx, doctorID, today, upcomingLimit)
	if err != nil {
		return nil, err
	}
	return &models.Dashboard{TodayCount: len(todays), Today: todays, Upcoming: upcoming}, nil
}
