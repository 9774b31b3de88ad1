package booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"amedick/database"
	"amedick/models"
	"amedick/services/availability"
	"amedick/services/notification"
	"amedick/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const reminderLead = time.Hour

// bookableDoctor loads an approved doctor with its template, or ErrDoctorNotFound.
func (s *DefaultBookingService) bookableDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := s.Doctors.GetByIDWithProjection(ctx, doctorID, bson.M{"passwordHash": 0, "documents": 0})
	if err != nil {
		return nil, err
	}
	if doctor == nil || doctor.VerificationStatus != models.VerificationApproved {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

// AvailableSlots resolves the doctor's template for date minus active bookings.
func (s *DefaultBookingService) AvailableSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	if _, err := availability.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}
	doctor, err := s.bookableDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	booked, err := s.Appointments.BookedTimes(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	slots, err := availability.ResolveAvailableSlots(availability.FromDays(doctor.Availability), date, booked)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return slots, nil
}

// Book admits the request. The pre-check against current bookings only gives a
// friendlier answer; the unique index on active slots decides races.
func (s *DefaultBookingService) Book(ctx context.Context, patientID string, req models.BookingRequest) (*models.Appointment, error) {
	if req.DoctorID == "" || req.Date == "" || req.Time == "" || patientID == "" {
		return nil, ErrMissingFields
	}
	weekday, err := availability.Weekday(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if !availability.ValidClock(req.Time) {
		return nil, ErrInvalidTime
	}

	doctor, err := s.bookableDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(availability.FromDays(doctor.Availability)[weekday], req.Time) {
		return nil, ErrSlotNotOffered
	}

	booked, err := s.Appointments.BookedTimes(ctx, req.DoctorID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	if slices.Contains(booked, req.Time) {
		return nil, ErrSlotAlreadyBooked
	}

	appt := &models.Appointment{
		ID:        uuid.New().String(),
		DoctorID:  req.DoctorID,
		PatientID: patientID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    models.StatusBooked,
		Active:    true,
	}
	if err := s.Appointments.Create(ctx, appt); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}

	utils.GetLogger().Info("Appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", appt.DoctorID),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time))

	s.notifyBooked(ctx, doctor, appt)
	return appt, nil
}

// notifyBooked queues the confirmation and the reminder. Failures are logged only.
func (s *DefaultBookingService) notifyBooked(ctx context.Context, doctor *models.Doctor, appt *models.Appointment) {
	if s.Mailer == nil || s.Users == nil {
		return
	}
	logger := utils.GetLogger()
	patient, err := s.Users.GetByID(ctx, appt.PatientID)
	if err != nil || patient == nil {
		logger.Warn("Booking mail skipped, patient not found", zap.String("patientId", appt.PatientID), zap.Error(err))
		return
	}

	confirmation := notification.BookingConfirmationMail(patient.Email, patient.Name, doctor.Name, appt)
	if err := s.Mailer.Send(ctx, confirmation); err != nil {
		logger.Warn("Failed to queue booking confirmation", zap.String("appointmentId", appt.ID), zap.Error(err))
	}

	start, err := appointmentStart(appt)
	if err != nil {
		return
	}
	remindAt := start.Add(-reminderLead)
	if !remindAt.After(s.now()) {
		return
	}
	reminder := notification.ReminderMail(patient.Email, patient.Name, doctor.Name, appt)
	if err := s.Mailer.SendAt(ctx, reminder, remindAt); err != nil {
		logger.Warn("Failed to schedule reminder", zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}

// appointmentStart is the local wall-clock start of the appointment.
func appointmentStart(appt *models.Appointment) (time.Time, error) {
	day, err := availability.ParseDate(appt.Date)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := availability.ParseClock(appt.Time)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, day.Location()), nil
}
