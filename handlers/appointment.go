package handlers

import (
	"net/http"

	"amedick/models"
	"amedick/services/booking"
	"amedick/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	Service booking.BookingService
}

func NewAppointmentHandler(service booking.BookingService) *AppointmentHandler {
	return &AppointmentHandler{Service: service}
}

// AvailableSlotsHandler handles GET /available/appointments/slots?doctorId&date and
// answers with a bare JSON array of HH:MM slots.
func (h *AppointmentHandler) AvailableSlotsHandler(c *gin.Context) {
	doctorID, date := c.Query("doctorId"), c.Query("date")
	if doctorID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "doctorId and date are required", "missing_fields")
		return
	}
	slots, err := h.Service.AvailableSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// OwnAvailableSlotsHandler handles GET /api/doctor/available-slots?date for the signed-in doctor.
func (h *AppointmentHandler) OwnAvailableSlotsHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "date required", "missing_fields")
		return
	}
	slots, err := h.Service.AvailableSlots(c.Request.Context(), p.ID, date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AvailableSlotsResponse{Date: date, Slots: slots})
}

// BookHandler handles POST /appointment. The patient is always the caller.
func (h *AppointmentHandler) BookHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.Service.Book(c.Request.Context(), p.ID, req)
	if err != nil {
		getLogger(c).Info("Booking rejected",
			zap.String("doctorId", req.DoctorID), zap.String("date", req.Date), zap.String("time", req.Time), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Appointment booked", "appointment": appt})
}

// PatientAppointmentsHandler handles GET /appointment/patient/:patientId.
func (h *AppointmentHandler) PatientAppointmentsHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	patientID := c.Param("patientId")
	if !p.Owns(patientID) {
		utils.JSONError(c, http.StatusForbidden, "Access denied", "forbidden")
		return
	}
	appts, err := h.Service.ListForPatient(c.Request.Context(), patientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// DoctorAppointmentsHandler handles GET /appointment/doctor/:doctorId.
func (h *AppointmentHandler) DoctorAppointmentsHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	doctorID := c.Param("doctorId")
	if !p.Owns(doctorID) {
		utils.JSONError(c, http.StatusForbidden, "Access denied", "forbidden")
		return
	}
	appts, err := h.Service.ListForDoctor(c.Request.Context(), doctorID, "")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// ListOwnHandler handles GET /api/doctor/appointments[?status].
func (h *AppointmentHandler) ListOwnHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	appts, err := h.Service.ListForDoctor(c.Request.Context(), p.ID, c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(appts), "appointments": appts})
}

func (h *AppointmentHandler) DashboardHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	dash, err := h.Service.Dashboard(c.Request.Context(), p.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// UpdateStatusHandler handles PATCH /api/doctor/appointment/:id/status.
func (h *AppointmentHandler) UpdateStatusHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.StatusUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.Service.UpdateStatus(c.Request.Context(), p.ID, c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "appointment": appt})
}

// DeleteHandler handles DELETE /api/doctor/appointment/:id.
func (h *AppointmentHandler) DeleteHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	appt, err := h.Service.Delete(c.Request.Context(), p.ID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted", "appointment": appt})
}
