package admin

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"amedick/config"
	"amedick/database"
	adminRepo "amedick/database/repository/admin"
	doctorRepo "amedick/database/repository/doctor"
	"amedick/models"
	"amedick/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type memAdmins struct {
	adminRepo.AdminRepository
	byEmail map[string]*models.Admin
}

func (m *memAdmins) Create(_ context.Context, a *models.Admin) error {
	if _, ok := m.byEmail[a.Email]; ok {
		return database.ErrDuplicate
	}
	cp := *a
	m.byEmail[a.Email] = &cp
	return nil
}

func (m *memAdmins) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

type memDoctors struct {
	doctorRepo.DoctorRepository
	byID map[string]*models.Doctor
}

func (m *memDoctors) GetByID(_ context.Context, id string) (*models.Doctor, error) {
	d, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (m *memDoctors) ListByStatus(_ context.Context, status string) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range m.byID {
		if d.VerificationStatus == status {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memDoctors) UpdateFields(_ context.Context, id string, fields bson.M) (*models.Doctor, error) {
	d, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["verificationStatus"].(string); ok {
		d.VerificationStatus = v
	}
	cp := *d
	return &cp, nil
}

func (m *memDoctors) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type recordingMailer struct {
	mails []models.MailPayload
}

func (r *recordingMailer) Send(_ context.Context, mail models.MailPayload) error {
	r.mails = append(r.mails, mail)
	return nil
}

func (r *recordingMailer) SendAt(ctx context.Context, mail models.MailPayload, _ time.Time) error {
	return r.Send(ctx, mail)
}

type countingDirectory struct {
	invalidations int
}

func (d *countingDirectory) Get(context.Context) ([]models.DoctorSummary, bool) { return nil, false }
func (d *countingDirectory) Set(context.Context, []models.DoctorSummary) {}
func (d *countingDirectory) Invalidate(context.Context) { d.invalidations++ }

func newService() (*DefaultAdminService, *memDoctors, *recordingMailer) {
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.BcryptCost = 4
	doctors := &memDoctors{byID: map[string]*models.Doctor{
		"d1": {ID: "d1", Name: "Dr. Rao", Email: "rao@example.com", PasswordHash: "h", VerificationStatus: models.VerificationPending},
		"d2": {ID: "d2", Name: "Dr. Sen", Email: "sen@example.com", VerificationStatus: models.VerificationPending},
		"d3": {ID: "d3", Name: "Dr. Iyer", Email: "iyer@example.com", VerificationStatus: models.VerificationApproved},
	}}
	mailer := &recordingMailer{}
	svc := &DefaultAdminService{
		Admins:        &memAdmins{byEmail: map[string]*models.Admin{}},
		Doctors:       doctors,
		Mailer:        mailer,
		TokenTTL:      time.Hour,
		SignupEnabled: true,
	}
	return svc, doctors, mailer
}

func TestSignupAndLogin(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	admin, err := svc.Signup(ctx, models.AdminSignupRequest{Name: "Ops", Email: "Ops@Example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if admin.Email != "ops@example.com" || admin.Role != "admin" {
		t.Errorf("admin = %+v", admin)
	}
	if _, err := svc.Signup(ctx, models.AdminSignupRequest{Name: "Ops", Email: "ops@example.com", Password: "pw"}); !errors.Is(err, ErrAdminExists) {
		t.Errorf("duplicate err = %v", err)
	}

	token, _, err := svc.Login(ctx, "ops@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	p, _, err := utils.ParsePrincipal(token)
	if err != nil || p.Role != models.RoleAdmin || !p.Can(models.CapVerifyDoctors) {
		t.Errorf("principal = %+v, err = %v", p, err)
	}
	if _, _, err := svc.Login(ctx, "ops@example.com", "bad"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password err = %v", err)
	}
	if _, _, err := svc.Login(ctx, "who@example.com", "pw"); !errors.Is(err, ErrAdminNotFound) {
		t.Errorf("unknown admin err = %v", err)
	}

	svc.SignupEnabled = false
	if _, err := svc.Signup(ctx, models.AdminSignupRequest{Name: "X", Email: "x@example.com", Password: "pw"}); !errors.Is(err, ErrSignupDisabled) {
		t.Errorf("disabled signup err = %v", err)
	}
}

func TestVerification(t *testing.T) {
	svc, doctors, mailer := newService()
	dir := &countingDirectory{}
	svc.Directory = dir
	ctx := context.Background()

	pending, err := svc.ListPendingDoctors(ctx)
	if err != nil {
		t.Fatalf("ListPendingDoctors: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}
	for _, d := range pending {
		if d.PasswordHash != "" {
			t.Errorf("password hash leaked for %s", d.ID)
		}
	}

	approved, err := svc.ApproveDoctor(ctx, "d1")
	if err != nil {
		t.Fatalf("ApproveDoctor: %v", err)
	}
	if approved.VerificationStatus != models.VerificationApproved {
		t.Errorf("status = %q", approved.VerificationStatus)
	}
	if _, err := svc.ApproveDoctor(ctx, "ghost"); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("approve unknown err = %v", err)
	}

	if err := svc.RejectDoctor(ctx, "d2", " incomplete documents "); err != nil {
		t.Fatalf("RejectDoctor: %v", err)
	}
	if _, ok := doctors.byID["d2"]; ok {
		t.Errorf("rejected doctor still stored")
	}
	if err := svc.RejectDoctor(ctx, "d2", ""); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("reject twice err = %v", err)
	}

	if dir.invalidations != 1 {
		t.Errorf("directory invalidated %d times, want 1 (approval only)", dir.invalidations)
	}

	if len(mailer.mails) != 2 {
		t.Fatalf("sent %d mails, want 2", len(mailer.mails))
	}
	if mailer.mails[0].To != "rao@example.com" || mailer.mails[1].To != "sen@example.com" {
		t.Errorf("recipients = %q, %q", mailer.mails[0].To, mailer.mails[1].To)
	}
	if !strings.Contains(mailer.mails[1].Body, "incomplete documents") {
		t.Errorf("rejection mail lacks reason: %q", mailer.mails[1].Body)
	}
}
