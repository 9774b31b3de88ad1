package notification

import (
	"fmt"
	"time"

	"amedick/models"
)

func SignupOTPMail(email, name, code string, ttl time.Duration) models.MailPayload {
	return models.MailPayload{
		To:      email,
		Subject: "Your AmedicK verification code",
		Body: fmt.Sprintf("Hello %s,\n\nYour verification code is %s. It expires in %d minutes.\n",
			name, code, int(ttl.Minutes())),
	}
}

func BookingConfirmationMail(email, patientName, doctorName string, appt *models.Appointment) models.MailPayload {
	return models.MailPayload{
		To:      email,
		Subject: "Appointment booked",
		Body: fmt.Sprintf("Hello %s,\n\nYour appointment with Dr. %s on %s at %s is booked.\n",
			patientName, doctorName, appt.Date, appt.Time),
	}
}

func ReminderMail(email, patientName, doctorName string, appt *models.Appointment) models.MailPayload {
	return models.MailPayload{
		To:      email,
		Subject: "Appointment reminder",
		Body: fmt.Sprintf("Hello %s,\n\nReminder: you see Dr. %s today at %s.\n",
			patientName, doctorName, appt.Time),
	}
}

func StatusChangedMail(email, patientName string, appt *models.Appointment) models.MailPayload {
	return models.MailPayload{
		To:      email,
		Subject: "Appointment " + appt.Status,
		Body: fmt.Sprintf("Hello %s,\n\nYour appointment on %s at %s is now %s.\n",
			patientName, appt.Date, appt.Time, appt.Status),
	}
}

func DoctorRegisteredMail(d *models.Doctor) models.MailPayload {
	return models.MailPayload{
		To:      d.Email,
		Subject: "Registration received",
		Body: fmt.Sprintf("Dear Dr. %s,\n\nWe received your registration. You can log in once an administrator has verified your documents.\n",
			d.Name),
	}
}

func DoctorApprovedMail(d *models.Doctor) models.MailPayload {
	return models.MailPayload{
		To:      d.Email,
		Subject: "Your AmedicK account is approved",
		Body:    fmt.Sprintf("Dear Dr. %s,\n\nYour account has been verified. You can now log in.\n", d.Name),
	}
}

func DoctorRejectedMail(d *models.Doctor, reason string) models.MailPayload {
	body := fmt.Sprintf("Dear Dr. %s,\n\nWe could not verify your registration.", d.Name)
	if reason != "" {
		body += "\nReason: " + reason
	}
	return models.MailPayload{
		To:      d.Email,
		Subject: "Your AmedicK registration was rejected",
		Body:    body + "\n",
	}
}
