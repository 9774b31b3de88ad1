package booking

import (
	"net/http"

	"amedick/utils"
)

var (
	ErrMissingFields      = utils.NewAppError(http.StatusBadRequest, "missing_fields", "doctorId, date and time are required")
	ErrInvalidDate        = utils.NewAppError(http.StatusBadRequest, "invalid_date", "Invalid date, expected YYYY-MM-DD")
	ErrInvalidTime        = utils.NewAppError(http.StatusBadRequest, "invalid_time", "Invalid time, expected HH:MM")
	ErrDoctorNotFound     = utils.NewAppError(http.StatusNotFound, "doctor_not_found", "Doctor not found")
	ErrSlotNotOffered     = utils.NewAppError(http.StatusBadRequest, "slot_not_offered", "Doctor is not available at this time")
	ErrSlotAlreadyBooked  = utils.NewAppError(http.StatusConflict, "slot_already_booked", "Time slot already booked")
	ErrInvalidStatus      = utils.NewAppError(http.StatusBadRequest, "invalid_status", "Invalid status")
	ErrInvalidTransition  = utils.NewAppError(http.StatusConflict, "invalid_transition", "Appointment can no longer change to this status")
	ErrAppointmentMissing = utils.NewAppError(http.StatusNotFound, "appointment_not_found", "Appointment not found")
)
