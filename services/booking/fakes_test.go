package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"amedick/database"
	appointmentRepo "amedick/database/repository/appointment"
	doctorRepo "amedick/database/repository/doctor"
	userRepo "amedick/database/repository/user"
	"amedick/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeDoctors struct {
	doctorRepo.DoctorRepository
	byID map[string]*models.Doctor
}

func (f *fakeDoctors) GetByID(_ context.Context, id string) (*models.Doctor, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDoctors) GetByIDWithProjection(ctx context.Context, id string, _ bson.M) (*models.Doctor, error) {
	return f.GetByID(ctx, id)
}

type fakeUsers struct {
	userRepo.UserRepository
	byID map[string]*models.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	return f.byID[id], nil
}

// fakeAppointments mimics the unique partial index on active slots.
type fakeAppointments struct {
	appointmentRepo.AppointmentRepository
	mu    sync.Mutex
	items []*models.Appointment
	// beforeCreate lets tests widen the check-then-insert window.
	beforeCreate func()
}

func (f *fakeAppointments) Create(_ context.Context, appt *models.Appointment) error {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	appt.Active = appt.Status != models.StatusCancelled
	for _, a := range f.items {
		if a.Active && appt.Active && a.DoctorID == appt.DoctorID && a.Date == appt.Date && a.Time == appt.Time {
			return database.ErrDuplicate
		}
	}
	cp := *appt
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeAppointments) BookedTimes(_ context.Context, doctorID, date string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	times := []string{}
	for _, a := range f.items {
		if a.Active && a.DoctorID == doctorID && a.Date == date {
			times = append(times, a.Time)
		}
	}
	return times, nil
}

func (f *fakeAppointments) filter(keep func(*models.Appointment) bool) []models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range f.items {
		if keep(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

func (f *fakeAppointments) ListByDoctor(_ context.Context, doctorID, status string) ([]models.Appointment, error) {
	return f.filter(func(a *models.Appointment) bool {
		return a.DoctorID == doctorID && (status == "" || a.Status == status)
	}), nil
}

func (f *fakeAppointments) ListByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	return f.filter(func(a *models.Appointment) bool { return a.PatientID == patientID }), nil
}

func (f *fakeAppointments) ListOnDate(_ context.Context, doctorID, date string) ([]models.Appointment, error) {
	return f.filter(func(a *models.Appointment) bool { return a.DoctorID == doctorID && a.Date == date }), nil
}

func (f *fakeAppointments) ListAfter(_ context.Context, doctorID, date string, limit int64) ([]models.Appointment, error) {
	out := f.filter(func(a *models.Appointment) bool { return a.DoctorID == doctorID && a.Date > date })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAppointments) find(id, doctorID string) *models.Appointment {
	for _, a := range f.items {
		if a.ID == id && a.DoctorID == doctorID {
			return a
		}
	}
	return nil
}

func (f *fakeAppointments) GetForDoctor(_ context.Context, id, doctorID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a := f.find(id, doctorID); a != nil {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAppointments) TransitionStatus(_ context.Context, id, doctorID string, from []string, to string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.find(id, doctorID)
	if a == nil {
		return nil, nil
	}
	for _, s := range from {
		if a.Status == s {
			a.Status = to
			a.Active = to != models.StatusCancelled
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointments) Delete(_ context.Context, id, doctorID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, a := range f.items {
		if a.ID == id && a.DoctorID == doctorID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return a, nil
		}
	}
	return nil, nil
}

type sentMail struct {
	mail models.MailPayload
	at   time.Time
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(ctx context.Context, mail models.MailPayload) error {
	return m.SendAt(ctx, mail, time.Time{})
}

func (m *fakeMailer) SendAt(_ context.Context, mail models.MailPayload, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{mail: mail, at: at})
	return nil
}
