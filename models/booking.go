package models

import "time"

// Appointment statuses.
const (
	StatusBooked    = "booked"
	StatusAccepted  = "accepted"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Appointment is one booked slot. Active is false exactly when the status is
// cancelled; the store keeps at most one active appointment per doctor, date and time.
type Appointment struct {
	ID        string    `bson:"id" json:"_id"`
	DoctorID  string    `bson:"doctorId" json:"doctorId"`
	PatientID string    `bson:"patientId" json:"patientId"`
	Date      string    `bson:"date" json:"date"`
	Time      string    `bson:"time" json:"time"`
	Status    string    `bson:"status" json:"status"`
	Active    bool      `bson:"active" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingRequest is the patient's admission request.
type BookingRequest struct {
	DoctorID  string `json:"doctorId"`
	PatientID string `json:"patientId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// StatusUpdateRequest moves an appointment along its lifecycle.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// Dashboard summarises a doctor's day.
type Dashboard struct {
	TodayCount int           `json:"todayCount"`
	Today      []Appointment `json:"today"`
	Upcoming   []Appointment `json:"upcoming"`
}

// PatientAppointment is an appointment with its doctor's public details attached.
type PatientAppointment struct {
	Appointment
	Doctor      *DoctorSummary `json:"doctor,omitempty"`
}
